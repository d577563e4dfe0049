package parser

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Blackspirits/pipocas/internal/config"
)

// loggedOutMarker appears on every page rendered for an anonymous visitor
// ("Cria uma conta" — the signup prompt). Its presence on a page that should
// be authenticated means the session is gone.
const loggedOutMarker = "Cria uma conta"

// csrfTokenRegex is the fallback for pages where the meta tag is not
// reachable through the DOM (malformed head sections have been observed).
var csrfTokenRegex = regexp.MustCompile(`(?i)<meta name="csrf-token" content="(.+?)">`)

// LoginParser extracts the CSRF token from the pipocas.tv login page and
// detects logged-out responses.
type LoginParser struct{}

// NewLoginParser creates a new login page parser.
func NewLoginParser() *LoginParser {
	return &LoginParser{}
}

// ExtractCSRFToken returns the CSRF token embedded in the login page, or an
// empty string when the page carries none.
func (p *LoginParser) ExtractCSRFToken(html string) string {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if token, exists := doc.Find(`meta[name="csrf-token"]`).Attr("content"); exists && token != "" {
			return token
		}
	}

	// Regex fallback on the raw HTML
	if matches := csrfTokenRegex.FindStringSubmatch(html); len(matches) > 1 {
		logger.Debug().Msg("CSRF token found via regex fallback")
		return matches[1]
	}

	return ""
}

// IsLoggedOut reports whether the page was rendered for an anonymous visitor.
func (p *LoginParser) IsLoggedOut(html string) bool {
	return strings.Contains(html, loggedOutMarker)
}

// ReadPage drains a response body through the UTF-8 conversion layer.
func ReadPage(body io.Reader) (string, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(utf8Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
