// Package matcher implements the matching heuristics between a video's
// metadata and a release name: attribute guessing, match-set computation and
// weighted scoring. The scores are provider-internal; they rank candidates
// and archive entries, the host framework applies its own scoring on top.
package matcher

import (
	"fmt"
	"strings"

	"github.com/Blackspirits/pipocas/internal/models"
)

// Match attribute names.
const (
	MatchSeries       = "series"
	MatchTitle        = "title"
	MatchSeason       = "season"
	MatchEpisode      = "episode"
	MatchYear         = "year"
	MatchReleaseGroup = "release_group"
	MatchResolution   = "resolution"
	MatchSource       = "source"
)

// episodeWeights and movieWeights rank how much each matched attribute is
// worth. The name weight exceeds the sum of every other weight in its table,
// so a wrong series never outranks the right one on incidental attribute hits.
var episodeWeights = map[string]int{
	MatchSeries:       60,
	MatchSeason:       8,
	MatchEpisode:      8,
	MatchYear:         12,
	MatchReleaseGroup: 15,
	MatchSource:       7,
	MatchResolution:   2,
}

var movieWeights = map[string]int{
	MatchTitle:        40,
	MatchYear:         12,
	MatchReleaseGroup: 15,
	MatchSource:       7,
	MatchResolution:   2,
}

// Matches computes the set of attributes where the guessed release agrees
// with the video's metadata.
func Matches(video *models.Video, g Guess) map[string]bool {
	matches := make(map[string]bool)

	if video.Kind == models.KindEpisode {
		if video.Series != "" && g.Title != "" && normalizeTitle(video.Series) == g.Title {
			matches[MatchSeries] = true
		}
		if video.Season > 0 && g.Season == video.Season {
			matches[MatchSeason] = true
		}
		if video.Episode > 0 && g.Episode == video.Episode {
			matches[MatchEpisode] = true
		}
	} else {
		if video.Title != "" && g.Title != "" && normalizeTitle(video.Title) == g.Title {
			matches[MatchTitle] = true
		}
	}

	if video.Year > 0 && g.Year == video.Year {
		matches[MatchYear] = true
	}
	if video.ReleaseGroup != "" && g.ReleaseGroup != "" &&
		strings.EqualFold(video.ReleaseGroup, g.ReleaseGroup) {
		matches[MatchReleaseGroup] = true
	}
	if video.Resolution != models.QualityUnknown && g.Quality == video.Resolution {
		matches[MatchResolution] = true
	}
	if video.Source != "" && g.Source != "" && strings.EqualFold(video.Source, g.Source) {
		matches[MatchSource] = true
	}

	return matches
}

// MatchRelease computes the match set for a full release string as shown on a
// listing page. Plain substring checks run first (a release line may carry
// several release names, defeating strict parsing), then the parsed guess
// refines the set.
func MatchRelease(video *models.Video, release string) map[string]bool {
	matches := Matches(video, Parse(release))
	lowerRelease := strings.ToLower(release)

	if video.Kind == models.KindEpisode {
		if video.Series != "" && strings.Contains(lowerRelease, strings.ToLower(video.Series)) {
			matches[MatchSeries] = true
		}
		if video.Season > 0 && strings.Contains(lowerRelease, fmt.Sprintf("s%02d", video.Season)) {
			matches[MatchSeason] = true
		}
		if video.Episode > 0 && strings.Contains(lowerRelease, fmt.Sprintf("e%02d", video.Episode)) {
			matches[MatchEpisode] = true
		}
	} else if video.Title != "" && strings.Contains(lowerRelease, strings.ToLower(video.Title)) {
		matches[MatchTitle] = true
	}

	if video.Year > 0 && strings.Contains(release, fmt.Sprintf("%d", video.Year)) {
		matches[MatchYear] = true
	}

	return matches
}

// Score sums the weights of the matched attributes for the video's kind.
func Score(video *models.Video, matches map[string]bool) int {
	weights := movieWeights
	if video.Kind == models.KindEpisode {
		weights = episodeWeights
	}

	score := 0
	for attr, matched := range matches {
		if matched {
			score += weights[attr]
		}
	}
	return score
}
