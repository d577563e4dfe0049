package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Blackspirits/pipocas/internal/config"
)

// DetailResult holds the raw fields parsed from a /legendas/info/<id> page.
type DetailResult struct {
	SubID    string // id from the /legendas/download/<id> link
	Release  string // release name from the page title
	Hits     int
	Uploader string
	Rating   int // numerator of the "X/Y" rating, 0 when absent
}

var (
	downloadIDRegex = regexp.MustCompile(`/legendas/download/([^"']+)`)
	colorStyleRegex = regexp.MustCompile(`color:\s*#[0-9A-Fa-f]{3,6}`)
	ratingRegex     = regexp.MustCompile(`(\d+)\s*/\s*\d+`)
)

// DetailParser extracts the subtitle record from a pipocas.tv detail page.
type DetailParser struct{}

// NewDetailParser creates a new detail page parser.
func NewDetailParser() *DetailParser {
	return &DetailParser{}
}

// ParseHtml parses a detail page. A page without a download link yields a nil
// result and no error: the listing exists but cannot be downloaded (removed
// or pending moderation), so the caller should skip it.
func (p *DetailParser) ParseHtml(body io.Reader) (*DetailResult, error) {
	logger := config.GetLogger()

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare HTML body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse detail page HTML")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &DetailResult{
		Release:  p.extractRelease(doc),
		Hits:     p.extractHits(doc),
		Uploader: p.extractUploader(doc),
		Rating:   p.extractRating(doc),
	}

	result.SubID = p.extractSubID(doc)
	if result.SubID == "" {
		logger.Debug().Str("release", result.Release).Msg("Detail page has no download link, skipping")
		return nil, nil
	}

	logger.Debug().
		Str("subID", result.SubID).
		Str("release", result.Release).
		Int("hits", result.Hits).
		Str("uploader", result.Uploader).
		Int("rating", result.Rating).
		Msg("Parsed detail page")

	return result, nil
}

// extractRelease reads the release name from the page title:
// <h3 class="title">... <span class="font-normal">Release.Name</span></h3>
func (p *DetailParser) extractRelease(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("h3.title span.font-normal").First().Text())
}

// extractSubID finds the first /legendas/download/<id> link on the page.
func (p *DetailParser) extractSubID(doc *goquery.Document) string {
	subID := ""
	doc.Find("a[href]").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if matches := downloadIDRegex.FindStringSubmatch(href); len(matches) > 1 {
			subID = matches[1]
			return false
		}
		return true
	})
	return subID
}

// extractHits reads the download counter:
// <span class="hits hits-pd"><div>123</div></span>
func (p *DetailParser) extractHits(doc *goquery.Document) int {
	text := strings.TrimSpace(doc.Find("span.hits.hits-pd div").First().Text())
	if text == "" {
		return 0
	}
	hits, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return hits
}

// extractUploader finds the colored span holding the uploader name. The site
// styles uploader names with inline per-rank colors rather than a class.
func (p *DetailParser) extractUploader(doc *goquery.Document) string {
	uploader := ""
	doc.Find("span[style]").EachWithBreak(func(i int, span *goquery.Selection) bool {
		style, _ := span.Attr("style")
		if !colorStyleRegex.MatchString(style) {
			return true
		}
		if text := strings.TrimSpace(span.Text()); text != "" {
			uploader = text
			return false
		}
		return true
	})
	return uploader
}

// extractRating reads the numerator of the "X/Y" rating header:
// <h2 class="mt-3 text-center">4/5</h2>
func (p *DetailParser) extractRating(doc *goquery.Document) int {
	text := doc.Find("h2.mt-3.text-center").First().Text()
	matches := ratingRegex.FindStringSubmatch(text)
	if len(matches) < 2 {
		return 0
	}
	rating, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return rating
}
