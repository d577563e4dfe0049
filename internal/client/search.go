package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/Blackspirits/pipocas/internal/apperrors"
	"github.com/Blackspirits/pipocas/internal/config"
	sitelang "github.com/Blackspirits/pipocas/internal/language"
	"github.com/Blackspirits/pipocas/internal/metrics"
	"github.com/Blackspirits/pipocas/internal/models"
)

// Search queries the site for one language and resolves every result's detail
// page into a subtitle candidate. Languages the site does not carry, and
// videos without a usable query, yield an empty result.
func (c *client) Search(ctx context.Context, video *models.Video, lang language.Tag) ([]models.Subtitle, error) {
	logger := config.GetLogger()

	siteLang, ok := sitelang.SiteName(lang)
	if !ok {
		logger.Debug().Str("language", lang.String()).Msg("Language not carried by site, skipping")
		return nil, nil
	}

	query := video.SearchQuery()
	if query == "" {
		logger.Debug().Msg("Video yields no search query, skipping")
		return nil, nil
	}

	subtitles, err := c.search(ctx, video, lang, siteLang, query)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(siteLang, metrics.StatusError).Inc()
		return nil, err
	}
	metrics.SearchesTotal.WithLabelValues(siteLang, metrics.StatusSuccess).Inc()
	return subtitles, nil
}

func (c *client) search(ctx context.Context, video *models.Video, lang language.Tag, siteLang, query string) ([]models.Subtitle, error) {
	logger := config.GetLogger()
	logger.Debug().Str("query", query).Str("language", siteLang).Msg("Searching subtitles")

	// Etiquette pause; the site rate-limits eager clients.
	if err := c.pause(ctx); err != nil {
		return nil, err
	}

	searchURL := c.searchURL() + "?" + url.Values{
		"t":    {"rel"},
		"l":    {siteLang},
		"page": {"1"},
		"s":    {query},
	}.Encode()

	page, err := c.fetchPage(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search page: %w", err)
	}

	if c.loginParser.IsLoggedOut(page) {
		return nil, apperrors.NewAuthenticationError("not authenticated during search")
	}

	detailLinks, err := c.searchParser.ParseHtml(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var subtitles []models.Subtitle
	for _, detailURL := range detailLinks {
		subtitle, err := c.fetchDetail(ctx, video, lang, detailURL)
		if err != nil {
			return nil, err
		}
		if subtitle != nil {
			subtitles = append(subtitles, *subtitle)
		}
	}

	logger.Debug().Int("candidates", len(subtitles)).Str("query", query).Msg("Search completed")
	return subtitles, nil
}

// fetchDetail resolves one detail page into a subtitle candidate.
// Pages without a download link are skipped (nil, nil).
func (c *client) fetchDetail(ctx context.Context, video *models.Video, lang language.Tag, detailURL string) (*models.Subtitle, error) {
	page, err := c.fetchPage(ctx, detailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail page: %w", err)
	}

	if c.loginParser.IsLoggedOut(page) {
		return nil, apperrors.NewAuthenticationError("not authenticated during search")
	}

	detail, err := c.detailParser.ParseHtml(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page: %w", err)
	}
	if detail == nil {
		return nil, nil
	}

	uploader := detail.Uploader
	if uploader == "" {
		uploader = models.DefaultUploader
	}

	return &models.Subtitle{
		SubID:    detail.SubID,
		Video:    video,
		Language: lang,
		Release:  detail.Release,
		Hits:     detail.Hits,
		Uploader: uploader,
		Stars:    models.StarScore(detail.Rating, detail.Hits),
		PageLink: c.downloadURL(detail.SubID),
	}, nil
}

// pause waits for the configured search delay or the context, whichever ends
// first.
func (c *client) pause(ctx context.Context) error {
	if c.searchDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(c.searchDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
