package services

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/Blackspirits/pipocas/internal/apperrors"
	"github.com/Blackspirits/pipocas/internal/archive"
	"github.com/Blackspirits/pipocas/internal/config"
	"github.com/Blackspirits/pipocas/internal/matcher"
	"github.com/Blackspirits/pipocas/internal/models"
)

// subtitleExtensions are the entry extensions accepted from an archive.
// Plain .txt is excluded: pipocas archives use it for NFO-style notes.
var subtitleExtensions = []string{".srt", ".sub", ".smi", ".ssa", ".ass", ".mpl", ".vtt"}

// DefaultSubtitleExtractor implements SubtitleExtractor using the matcher's
// release-name heuristics.
type DefaultSubtitleExtractor struct{}

// NewSubtitleExtractor creates a new subtitle extractor.
func NewSubtitleExtractor() SubtitleExtractor {
	return &DefaultSubtitleExtractor{}
}

// BestEntry scores every candidate entry against the video and extracts the
// winner. Entries are skipped when hidden, when the extension is not a
// subtitle, or when their guessed season/episode contradicts the video.
// The winning score must be positive: an archive full of unrelated files
// yields an error rather than an arbitrary pick.
func (e *DefaultSubtitleExtractor) BestEntry(arc archive.Archive, video *models.Video) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	names := arc.Names()
	bestName := ""
	bestScore := -1

	for _, name := range names {
		base := path.Base(name)
		if strings.HasPrefix(base, ".") {
			continue
		}
		if !hasSubtitleExtension(base) {
			continue
		}

		guessed := matcher.Parse(base)

		// A season pack entry for the wrong episode must never win,
		// whatever its attribute matches are worth.
		if video.Kind == models.KindEpisode && guessed.Season >= 0 && guessed.Episode >= 0 {
			if guessed.Season != video.Season || guessed.Episode != video.Episode {
				logger.Debug().
					Str("entry", base).
					Int("season", guessed.Season).
					Int("episode", guessed.Episode).
					Msg("Skipping archive entry for different episode")
				continue
			}
		}

		score := matcher.Score(video, matcher.Matches(video, guessed))
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}

	if bestName == "" || bestScore <= 0 {
		return nil, &apperrors.ErrNoSubtitleInArchive{FileCount: len(names)}
	}

	content, err := arc.Read(bestName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %q: %w", bestName, err)
	}

	logger.Debug().
		Str("entry", bestName).
		Int("score", bestScore).
		Int("size", len(content)).
		Msg("Extracted best entry from archive")

	return &models.DownloadResult{
		Filename:    path.Base(bestName),
		Content:     NormalizeLineEndings(content),
		ContentType: ContentTypeFromFilename(bestName),
	}, nil
}

// hasSubtitleExtension reports whether the file name ends in an accepted
// subtitle extension.
func hasSubtitleExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range subtitleExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// NormalizeLineEndings strips a UTF-8 BOM and converts CRLF and bare CR line
// endings to LF, matching what players expect from .srt files.
func NormalizeLineEndings(content []byte) []byte {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
	return content
}

// ContentTypeFromFilename derives the MIME type from a subtitle file extension.
func ContentTypeFromFilename(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".srt":
		return "application/x-subrip"
	case ".ssa", ".ass":
		return "application/x-ass"
	case ".vtt":
		return "text/vtt"
	case ".sub":
		return "application/x-sub"
	default:
		return "application/octet-stream"
	}
}
