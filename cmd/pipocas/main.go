package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/text/language"

	"github.com/Blackspirits/pipocas/internal/config"
	"github.com/Blackspirits/pipocas/internal/metrics"
	"github.com/Blackspirits/pipocas/internal/models"
	"github.com/Blackspirits/pipocas/internal/provider"
)

func main() {
	title := flag.String("title", "", "movie title to search for")
	series := flag.String("series", "", "series name to search for (episode mode)")
	season := flag.Int("season", 0, "season number")
	episode := flag.Int("episode", 0, "episode number")
	year := flag.Int("year", 0, "release year")
	langs := flag.String("langs", "pt-PT", "comma-separated language tags (e.g. pt-PT,pt-BR,en)")
	download := flag.Bool("download", false, "download the best candidate")
	outDir := flag.String("out", ".", "directory to write downloaded subtitles to")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.GetLogger()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize sentry, continuing without it")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
				logger.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	video, err := buildVideo(*title, *series, *season, *episode, *year)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid search flags")
	}

	tags, err := parseLanguages(*langs)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid language tags")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, video, tags, *download, *outDir); err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Run failed")
	}
}

func run(ctx context.Context, cfg *config.Config, video *models.Video, tags []language.Tag, download bool, outDir string) error {
	logger := config.GetLogger()

	p, err := provider.New(cfg)
	if err != nil {
		return err
	}

	if err := p.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if err := p.Terminate(); err != nil {
			logger.Error().Err(err).Msg("Failed to terminate provider")
		}
	}()

	subtitles, err := p.ListSubtitles(ctx, video, tags)
	if err != nil {
		return err
	}

	if len(subtitles) == 0 {
		logger.Info().Msg("No subtitles found")
		return nil
	}

	for _, sub := range subtitles {
		logger.Info().
			Str("id", sub.ID()).
			Str("language", sub.Language.String()).
			Str("release", sub.Release).
			Int("stars", sub.Stars).
			Int("hits", sub.Hits).
			Str("uploader", sub.Uploader).
			Msg("Candidate")
	}

	if !download {
		return nil
	}

	best := subtitles[0]
	result, err := p.DownloadSubtitle(ctx, &best)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, result.Filename)
	if err := os.WriteFile(outPath, result.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	logger.Info().Str("path", outPath).Int("size", len(result.Content)).Msg("Subtitle downloaded")
	return nil
}

func buildVideo(title, series string, season, episode, year int) (*models.Video, error) {
	if series != "" {
		return &models.Video{
			Kind:    models.KindEpisode,
			Series:  series,
			Season:  season,
			Episode: episode,
			Year:    year,
		}, nil
	}
	if title != "" {
		return &models.Video{
			Kind:  models.KindMovie,
			Title: title,
			Year:  year,
		}, nil
	}
	return nil, fmt.Errorf("either -title or -series is required")
}

func parseLanguages(csv string) ([]language.Tag, error) {
	var tags []language.Tag
	for _, raw := range strings.Split(csv, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid language tag %q: %w", raw, err)
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no language tags given")
	}
	return tags, nil
}
