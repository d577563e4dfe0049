package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Blackspirits/pipocas/internal/models"
)

// Guess holds the attributes extracted from a release or file name.
// Season and Episode are -1 when the name carries no episode numbering.
type Guess struct {
	Title        string
	Season       int
	Episode      int
	Year         int // 0 when unknown
	Quality      models.Quality
	Source       string
	ReleaseGroup string
}

var (
	// S01E02, s01.e02, S01_E02
	seasonEpisodeRegex = regexp.MustCompile(`(?i)\bS(\d{1,2})[\s._-]?E(\d{1,3})\b`)
	// 1x02 / 12x345
	altEpisodeRegex = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`)
	yearRegex       = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	extensionRegex  = regexp.MustCompile(`\.[A-Za-z]{2,4}$`)
)

// sourceMarkers maps lowercase release tokens to a canonical source name.
// Order matters: more specific markers are checked first.
var sourceMarkers = []struct {
	marker string
	source string
}{
	{"web-dl", "WEB-DL"},
	{"webdl", "WEB-DL"},
	{"web.dl", "WEB-DL"},
	{"webrip", "WEBRip"},
	{"web-rip", "WEBRip"},
	{"bluray", "BluRay"},
	{"blu-ray", "BluRay"},
	{"bdrip", "BluRay"},
	{"brrip", "BluRay"},
	{"hdtv", "HDTV"},
	{"dvdrip", "DVD"},
	{"dvd", "DVD"},
}

// Parse extracts guessed attributes from a release or subtitle file name.
func Parse(name string) Guess {
	g := Guess{Season: -1, Episode: -1}
	if name == "" {
		return g
	}

	// Drop a trailing file extension so it is not mistaken for a token
	name = extensionRegex.ReplaceAllString(name, "")

	titleEnd := len(name)

	if m := seasonEpisodeRegex.FindStringSubmatchIndex(name); m != nil {
		g.Season = atoiSubmatch(name, m, 1)
		g.Episode = atoiSubmatch(name, m, 2)
		titleEnd = m[0]
	} else if m := altEpisodeRegex.FindStringSubmatchIndex(name); m != nil {
		g.Season = atoiSubmatch(name, m, 1)
		g.Episode = atoiSubmatch(name, m, 2)
		titleEnd = m[0]
	}

	if m := yearRegex.FindStringIndex(name); m != nil {
		year, _ := strconv.Atoi(name[m[0]:m[1]])
		g.Year = year
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
	}

	g.Title = normalizeTitle(name[:titleEnd])
	g.Quality = models.DetectQuality(name)
	g.Source = detectSource(name)
	g.ReleaseGroup = detectReleaseGroup(name)

	return g
}

// detectSource finds the first known source marker in the name.
func detectSource(name string) string {
	lower := strings.ToLower(name)
	for _, sm := range sourceMarkers {
		if strings.Contains(lower, sm.marker) {
			return sm.source
		}
	}
	return ""
}

// detectReleaseGroup takes the token after the last dash, the scene
// convention for group names. Dashes inside source markers (WEB-DL, Blu-Ray)
// are ignored.
func detectReleaseGroup(name string) string {
	idx := strings.LastIndex(name, "-")
	if idx == -1 || idx == len(name)-1 {
		return ""
	}
	group := strings.TrimSpace(name[idx+1:])
	// A group name is a single token with no separators
	if group == "" || strings.ContainsAny(group, " ._/") {
		return ""
	}
	switch strings.ToLower(group) {
	case "dl", "ray", "rip":
		// Trailing half of WEB-DL / Blu-Ray / WEB-Rip, not a group
		return ""
	}
	return group
}

// normalizeTitle lowercases and collapses separators so titles from file
// names ("The.Movie_2019") and from metadata ("The Movie") compare equal.
func normalizeTitle(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func atoiSubmatch(s string, m []int, group int) int {
	start, end := m[2*group], m[2*group+1]
	if start < 0 || end < 0 {
		return -1
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return -1
	}
	return n
}
