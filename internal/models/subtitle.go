package models

import (
	"math"

	"golang.org/x/text/language"
)

// ProviderName identifies this provider to the host framework.
const ProviderName = "pipocas"

// DefaultUploader is used when the detail page carries no uploader name.
const DefaultUploader = "pipocas-bot"

// Subtitle represents a single subtitle candidate parsed from a pipocas.tv
// detail page.
type Subtitle struct {
	SubID    string       `json:"subId"`    // Site-internal download id
	Video    *Video       `json:"-"`        // Video the candidate was searched for
	Language language.Tag `json:"language"` // Requested language this candidate was found for
	Release  string       `json:"release"`  // Release name shown on the detail page
	Hits     int          `json:"hits"`     // Download count
	Uploader string       `json:"uploader"`
	Stars    int          `json:"stars"`    // 0-5 combined rating, see StarScore
	PageLink string       `json:"pageLink"` // Absolute download URL
}

// ID returns a stable identifier for caching and download history.
func (s *Subtitle) ID() string {
	return ProviderName + "_" + s.SubID
}

// StarScore folds the site's rating and the download count into a 0-5 star
// value. A zero rating yields zero stars regardless of hits; otherwise hits
// contribute up to 5 points at one point per hundred downloads, and the two
// are averaged. Halves round to even, so 2.5 becomes 2 and 3.5 becomes 4.
func StarScore(rating, hits int) int {
	if rating == 0 {
		return 0
	}
	hitFactor := float64(hits) / 100.0
	if hitFactor > 5.0 {
		hitFactor = 5.0
	}
	return int(math.RoundToEven((float64(rating) + hitFactor) / 2.0))
}
