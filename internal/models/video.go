package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// VideoKind distinguishes movies from series episodes.
type VideoKind int

const (
	KindMovie VideoKind = iota
	KindEpisode
)

// String returns the string representation of the video kind.
func (k VideoKind) String() string {
	if k == KindEpisode {
		return "episode"
	}
	return "movie"
}

// Video carries the metadata of the file a subtitle is being searched for.
// The host framework fills it from its own release-name guessing; this module
// only reads it.
type Video struct {
	Kind     VideoKind `json:"kind"`
	FileName string    `json:"fileName"` // Path or name of the video file, may be empty

	Title   string `json:"title"`   // Movie title (movies only)
	Series  string `json:"series"`  // Series name (episodes only)
	Season  int    `json:"season"`  // 0 when unknown
	Episode int    `json:"episode"` // 0 when unknown
	Year    int    `json:"year"`    // 0 when unknown

	ReleaseGroup string  `json:"releaseGroup"`
	Resolution   Quality `json:"resolution"`
	Source       string  `json:"source"` // e.g. "WEB-DL", "BluRay", "HDTV"
}

// SearchQuery builds the site search string for the video, mirroring how a
// user would search: "Series S01E02" for episodes, the title for movies, and
// the bare file name as a last resort.
func (v *Video) SearchQuery() string {
	if v.Kind == KindEpisode {
		if v.Series != "" && v.Season > 0 && v.Episode > 0 {
			return fmt.Sprintf("%s S%02dE%02d", v.Series, v.Season, v.Episode)
		}
		if v.Series != "" {
			return v.Series
		}
	} else if v.Title != "" {
		return v.Title
	}

	if v.FileName != "" {
		base := filepath.Base(v.FileName)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	return ""
}
