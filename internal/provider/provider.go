// Package provider implements the host framework's plugin contract for
// pipocas.tv: Initialize, ListSubtitles, DownloadSubtitle, Terminate. The
// host drives the pipeline (search, rank, fetch); this package wires the
// authenticated client, sorts candidates, and re-authenticates once when the
// site drops the session mid-download.
package provider

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/text/language"

	"github.com/Blackspirits/pipocas/internal/apperrors"
	"github.com/Blackspirits/pipocas/internal/client"
	"github.com/Blackspirits/pipocas/internal/config"
	sitelang "github.com/Blackspirits/pipocas/internal/language"
	"github.com/Blackspirits/pipocas/internal/models"
)

// Provider is the pipocas.tv adapter for the subtitle-aggregation host.
type Provider struct {
	cfg    *config.Config
	client client.Client
}

// New creates an uninitialized provider. Initialize must be called before
// ListSubtitles or DownloadSubtitle.
func New(cfg *config.Config) (*Provider, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigurationError("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError(err.Error())
	}
	return &Provider{cfg: cfg}, nil
}

// Languages returns the tags this provider can serve.
func (p *Provider) Languages() []language.Tag {
	return sitelang.Supported()
}

// Initialize creates the HTTP session and logs in.
func (p *Provider) Initialize(ctx context.Context) error {
	if p.cfg.Username == "" || p.cfg.Password == "" {
		return apperrors.NewConfigurationError("username/password not configured")
	}

	c, err := client.NewClient(p.cfg)
	if err != nil {
		return err
	}

	if err := c.Login(ctx); err != nil {
		_ = c.Close()
		return err
	}

	p.client = c
	return nil
}

// Terminate releases the session. Safe to call on an uninitialized provider.
func (p *Provider) Terminate() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

// ListSubtitles searches every requested language and returns candidates
// sorted best-first by (stars, hits). Authentication and availability errors
// abort the listing; other per-language failures are logged and skipped so
// one flaky search does not lose results for the remaining languages.
func (p *Provider) ListSubtitles(ctx context.Context, video *models.Video, languages []language.Tag) ([]models.Subtitle, error) {
	logger := config.GetLogger()

	if p.client == nil {
		return nil, apperrors.NewConfigurationError("provider not initialized")
	}

	var all []models.Subtitle
	for _, lang := range languages {
		subs, err := p.client.Search(ctx, video, lang)
		if err != nil {
			if isFatal(err) || ctx.Err() != nil {
				return nil, err
			}
			logger.Error().Err(err).Str("language", lang.String()).Msg("Search failed, skipping language")
			continue
		}
		all = append(all, subs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Stars != all[j].Stars {
			return all[i].Stars > all[j].Stars
		}
		return all[i].Hits > all[j].Hits
	})

	return all, nil
}

// DownloadSubtitle fetches and extracts the chosen subtitle. When the site
// has dropped the session since the search, the provider logs in again and
// retries once.
func (p *Provider) DownloadSubtitle(ctx context.Context, subtitle *models.Subtitle) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	if p.client == nil {
		return nil, apperrors.NewConfigurationError("provider not initialized")
	}

	result, err := p.client.Download(ctx, subtitle)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, &apperrors.ErrAuthentication{}) {
		return nil, err
	}

	logger.Warn().Str("subID", subtitle.SubID).Msg("Session expired, logging in again")
	if loginErr := p.client.Login(ctx); loginErr != nil {
		return nil, loginErr
	}
	return p.client.Download(ctx, subtitle)
}

// isFatal reports whether a search error should abort the whole listing.
func isFatal(err error) bool {
	return errors.Is(err, &apperrors.ErrAuthentication{}) ||
		errors.Is(err, &apperrors.ErrServiceUnavailable{})
}
