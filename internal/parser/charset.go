package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection
// and conversion to UTF-8. pipocas.tv pages have been served as ISO-8859-1 and
// as UTF-8 depending on site era, so the encoding is detected from the content
// itself (meta tags, BOM, heuristics) before handing the stream to goquery.
// Already-UTF-8 content passes through with minimal overhead.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	// contentType is empty so detection runs on the HTML content itself
	return charset.NewReader(body, "")
}
