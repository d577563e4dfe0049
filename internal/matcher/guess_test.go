package matcher

import (
	"testing"

	"github.com/Blackspirits/pipocas/internal/models"
)

func TestParse_EpisodeReleases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		release     string
		wantTitle   string
		wantSeason  int
		wantEpisode int
	}{
		{
			name:        "scene SxxEyy",
			release:     "Outlander.S07E16.A.Hundred.Thousand.Angels.720p.AMZN.WEB-DL-FLUX",
			wantTitle:   "outlander",
			wantSeason:  7,
			wantEpisode: 16,
		},
		{
			name:        "lowercase sxxeyy",
			release:     "the.wire.s01e05.hdtv.x264-lol",
			wantTitle:   "the wire",
			wantSeason:  1,
			wantEpisode: 5,
		},
		{
			name:        "NxM form",
			release:     "Outlander 7x16 (WEB 1080p)",
			wantTitle:   "outlander",
			wantSeason:  7,
			wantEpisode: 16,
		},
		{
			name:        "no numbering",
			release:     "Movie.Name.2019.1080p.BluRay-GROUP",
			wantTitle:   "movie name",
			wantSeason:  -1,
			wantEpisode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := Parse(tt.release)
			if g.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", g.Title, tt.wantTitle)
			}
			if g.Season != tt.wantSeason {
				t.Errorf("Season = %d, want %d", g.Season, tt.wantSeason)
			}
			if g.Episode != tt.wantEpisode {
				t.Errorf("Episode = %d, want %d", g.Episode, tt.wantEpisode)
			}
		})
	}
}

func TestParse_Attributes(t *testing.T) {
	t.Parallel()
	g := Parse("The.Movie.2019.1080p.WEB-DL.DD5.1-GROUP")

	if g.Title != "the movie" {
		t.Errorf("Title = %q, want %q", g.Title, "the movie")
	}
	if g.Year != 2019 {
		t.Errorf("Year = %d, want 2019", g.Year)
	}
	if g.Quality != models.Quality1080p {
		t.Errorf("Quality = %v, want %v", g.Quality, models.Quality1080p)
	}
	if g.Source != "WEB-DL" {
		t.Errorf("Source = %q, want %q", g.Source, "WEB-DL")
	}
	if g.ReleaseGroup != "GROUP" {
		t.Errorf("ReleaseGroup = %q, want %q", g.ReleaseGroup, "GROUP")
	}
}

func TestParse_StripsSubtitleExtension(t *testing.T) {
	t.Parallel()
	g := Parse("Show.S02E03.720p.HDTV-KILLERS.srt")
	if g.Season != 2 || g.Episode != 3 {
		t.Errorf("Season/Episode = %d/%d, want 2/3", g.Season, g.Episode)
	}
	if g.ReleaseGroup != "KILLERS" {
		t.Errorf("ReleaseGroup = %q, want %q", g.ReleaseGroup, "KILLERS")
	}
}

func TestParse_Sources(t *testing.T) {
	t.Parallel()
	tests := []struct {
		release string
		want    string
	}{
		{"Movie.2019.WEB-DL-X", "WEB-DL"},
		{"Movie.2019.WEBRip-X", "WEBRip"},
		{"Movie.2019.BDRip-X", "BluRay"},
		{"Movie.2019.Blu-Ray-X", "BluRay"},
		{"Show.S01E01.HDTV-X", "HDTV"},
		{"Movie.2019.DVDRip-X", "DVD"},
		{"Movie.2019.1080p-X", ""},
	}

	for _, tt := range tests {
		t.Run(tt.release, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tt.release).Source; got != tt.want {
				t.Errorf("Source = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectReleaseGroup_IgnoresSourceDashes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		release string
		want    string
	}{
		{"trailing DL half", "Movie.2019.WEB-DL", ""},
		{"trailing Ray half", "Movie.2019.Blu-Ray", ""},
		{"group after source", "Movie.2019.WEB-DL-FLUX", "FLUX"},
		{"no dash at all", "Movie.2019.1080p", ""},
		{"dash then separator", "Movie - A Story", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detectReleaseGroup(tt.release); got != tt.want {
				t.Errorf("detectReleaseGroup(%q) = %q, want %q", tt.release, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"The.Movie_Name", "the movie name"},
		{"  Spaced   Out  ", "spaced out"},
		{"Héllo-Wörld", "h llo w rld"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := normalizeTitle(tt.input); got != tt.want {
				t.Errorf("normalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
