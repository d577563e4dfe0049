package services

import (
	"github.com/Blackspirits/pipocas/internal/archive"
	"github.com/Blackspirits/pipocas/internal/models"
)

// SubtitleExtractor selects and extracts the subtitle entry from a downloaded
// archive that best matches the requesting video.
type SubtitleExtractor interface {
	// BestEntry returns the content of the best-matching entry.
	// It fails with apperrors.ErrNoSubtitleInArchive when no entry qualifies.
	BestEntry(arc archive.Archive, video *models.Video) (*models.DownloadResult, error)
}
