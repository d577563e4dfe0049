package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Blackspirits/pipocas/internal/config"
)

// SearchParser extracts detail-page links from a pipocas.tv search results
// page (/legendas?t=rel&l=<lang>&s=<query>).
type SearchParser struct {
	baseURL string
}

// NewSearchParser creates a new search results parser.
func NewSearchParser(baseURL string) *SearchParser {
	return &SearchParser{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ParseHtml returns the absolute detail-page URLs found on a search results
// page, in page order. Duplicate links are dropped.
func (p *SearchParser) ParseHtml(body io.Reader) ([]string, error) {
	logger := config.GetLogger()

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare HTML body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse search results HTML")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []string
	seen := make(map[string]bool)

	// Result rows link to /legendas/info/<id> through styled anchors
	doc.Find("a.text-dark.no-decoration").Each(func(i int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists || !strings.Contains(href, "/legendas/info/") {
			return
		}

		detailURL := p.absoluteURL(href)
		if seen[detailURL] {
			return
		}
		seen[detailURL] = true
		links = append(links, detailURL)
	})

	logger.Debug().Int("results", len(links)).Msg("Parsed search results page")

	return links, nil
}

// absoluteURL resolves a detail link against the site base URL.
func (p *SearchParser) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return p.baseURL + href
	}
	return p.baseURL + "/" + href
}
