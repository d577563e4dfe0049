package parser

import (
	"strings"
	"testing"

	"github.com/Blackspirits/pipocas/internal/testutil"
)

func TestSearchParser_ParseHtml(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "multiple results",
			html: testutil.SearchResultsPage("/legendas/info/111", "/legendas/info/222"),
			want: []string{
				"https://pipocas.tv/legendas/info/111",
				"https://pipocas.tv/legendas/info/222",
			},
		},
		{
			name: "duplicates are dropped",
			html: testutil.SearchResultsPage("/legendas/info/111", "/legendas/info/111"),
			want: []string{"https://pipocas.tv/legendas/info/111"},
		},
		{
			name: "absolute links kept as-is",
			html: testutil.SearchResultsPage("https://pipocas.tv/legendas/info/333"),
			want: []string{"https://pipocas.tv/legendas/info/333"},
		},
		{
			name: "no results",
			html: testutil.SearchResultsPage(),
			want: nil,
		},
		{
			name: "styled anchors to other pages are ignored",
			html: `<html><body>
				<a class="text-dark no-decoration" href="/perfil/u123">profile</a>
				<a class="text-dark no-decoration" href="/legendas/info/444">result</a>
			</body></html>`,
			want: []string{"https://pipocas.tv/legendas/info/444"},
		},
		{
			name: "plain anchors are ignored",
			html: `<html><body><a href="/legendas/info/555">result</a></body></html>`,
			want: nil,
		},
	}

	p := NewSearchParser("https://pipocas.tv/")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.ParseHtml(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("ParseHtml: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseHtml() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("link[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
