package models

import (
	"testing"

	"golang.org/x/text/language"
)

func TestSubtitle_ID(t *testing.T) {
	t.Parallel()
	sub := &Subtitle{SubID: "12345", Language: language.MustParse("pt-PT")}
	if got := sub.ID(); got != "pipocas_12345" {
		t.Errorf("ID() = %q, want %q", got, "pipocas_12345")
	}
}

func TestStarScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		rating int
		hits   int
		want   int
	}{
		{"zero rating ignores hits", 0, 1000, 0},
		{"rating only", 4, 0, 2},
		{"half rounds down to even", 4, 100, 2}, // (4 + 1) / 2 = 2.5 → 2
		{"half rounds up to even", 4, 300, 4},   // (4 + 3) / 2 = 3.5 → 4
		{"hit factor capped at five", 5, 100000, 5},
		{"low rating low hits", 1, 10, 1}, // (1 + 0.1) / 2 = 0.55 → 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StarScore(tt.rating, tt.hits); got != tt.want {
				t.Errorf("StarScore(%d, %d) = %d, want %d", tt.rating, tt.hits, got, tt.want)
			}
		})
	}
}

func TestVideo_SearchQuery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		video Video
		want  string
	}{
		{
			name:  "full episode metadata",
			video: Video{Kind: KindEpisode, Series: "Outlander", Season: 7, Episode: 16},
			want:  "Outlander S07E16",
		},
		{
			name:  "series without numbering",
			video: Video{Kind: KindEpisode, Series: "Outlander"},
			want:  "Outlander",
		},
		{
			name:  "movie title",
			video: Video{Kind: KindMovie, Title: "The Lighthouse"},
			want:  "The Lighthouse",
		},
		{
			name:  "file name fallback",
			video: Video{Kind: KindMovie, FileName: "/media/The.Movie.2019.1080p-GROUP.mkv"},
			want:  "The.Movie.2019.1080p-GROUP",
		},
		{
			name:  "nothing usable",
			video: Video{Kind: KindMovie},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.video.SearchQuery(); got != tt.want {
				t.Errorf("SearchQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
