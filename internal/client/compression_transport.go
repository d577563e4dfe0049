package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decoders maps a Content-Encoding token to a body decoder. The site serves
// pages brotli- or gzip-compressed depending on the edge cache in front of it.
var decoders = map[string]func(io.ReadCloser) (io.ReadCloser, error){
	"gzip": func(body io.ReadCloser) (io.ReadCloser, error) {
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
	"br": func(body io.ReadCloser) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.ReadCloser) (io.ReadCloser, error) {
		r, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return r.IOReadCloser(), nil
	},
}

// compressionTransport advertises the encodings it can decode and transparently
// decompresses response bodies, leaving unknown encodings untouched.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Copy before mutating headers; RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 responses carry no body to decode
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decode, ok := decoders[parseContentEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}

	decoded, err := decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	resp.Body = &decodedBody{decoded: decoded, raw: resp.Body}

	// The decoded body no longer matches the encoding headers
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodedBody closes both the decoder and the network body underneath it.
type decodedBody struct {
	decoded io.ReadCloser
	raw     io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.decoded.Read(p)
}

func (b *decodedBody) Close() error {
	decodeErr := b.decoded.Close()
	rawErr := b.raw.Close()
	if decodeErr != nil {
		return decodeErr
	}
	return rawErr
}

// parseContentEncoding returns the outermost encoding from a Content-Encoding
// header. In a comma-separated list the last token was applied last and must
// be removed first.
func parseContentEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	tokens := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(tokens[len(tokens)-1]))
}
