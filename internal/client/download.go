package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/Blackspirits/pipocas/internal/apperrors"
	"github.com/Blackspirits/pipocas/internal/archive"
	"github.com/Blackspirits/pipocas/internal/config"
	"github.com/Blackspirits/pipocas/internal/metrics"
	"github.com/Blackspirits/pipocas/internal/models"
	"github.com/Blackspirits/pipocas/internal/services"
)

// Download fetches the subtitle payload for a candidate. Archives (RAR/ZIP,
// detected by magic bytes) are cached by URL and the best-matching entry is
// extracted; bare payloads are returned directly with normalized line endings.
func (c *client) Download(ctx context.Context, subtitle *models.Subtitle) (*models.DownloadResult, error) {
	result, err := c.download(ctx, subtitle)
	if err != nil {
		metrics.SubtitleDownloadsTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, err
	}
	metrics.SubtitleDownloadsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return result, nil
}

func (c *client) download(ctx context.Context, subtitle *models.Subtitle) (*models.DownloadResult, error) {
	logger := config.GetLogger()
	downloadURL := subtitle.PageLink
	logger.Info().Str("url", downloadURL).Str("subID", subtitle.SubID).Msg("Downloading subtitle")

	data, cached := c.archiveCache.Get(downloadURL)
	if cached {
		logger.Debug().Str("url", downloadURL).Int("size", len(data)).Msg("Archive retrieved from cache")
	} else {
		var err error
		data, err = c.fetchDownload(ctx, subtitle, downloadURL)
		if err != nil {
			return nil, err
		}
	}

	arc, format, err := archive.Open(data)
	if err != nil {
		return nil, err
	}

	if format == archive.FormatNone {
		return &models.DownloadResult{
			Filename:    subtitle.SubID + ".srt",
			Content:     services.NormalizeLineEndings(data),
			ContentType: "application/x-subrip",
		}, nil
	}

	if !cached {
		c.archiveCache.Put(downloadURL, data)
		logger.Debug().Str("url", downloadURL).Str("format", format.String()).Msg("Cached downloaded archive")
	}

	return c.extractor.BestEntry(arc, subtitle.Video)
}

// fetchDownload GETs the payload and maps site-level failures to typed errors.
func (c *client) fetchDownload(ctx context.Context, subtitle *models.Subtitle, downloadURL string) ([]byte, error) {
	data, status, err := c.fetchBytes(ctx, downloadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download subtitle: %w", err)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return nil, &apperrors.ErrDownloadLimitExceeded{URL: downloadURL}
	case status == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError("subtitle", subtitle.SubID)
	case status != http.StatusOK:
		return nil, fmt.Errorf("download returned status %d", status)
	}

	if len(data) == 0 {
		return nil, apperrors.NewServiceUnavailableError("empty download response")
	}

	// A logged-out session gets the HTML signup page instead of the file.
	if archive.Detect(data) == archive.FormatNone && bytes.Contains(data, []byte("Cria uma conta")) {
		return nil, apperrors.NewAuthenticationError("not authenticated during download")
	}

	return data, nil
}
