package client

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// compress encodes data with the named encoding, or returns it as-is.
func compress(t *testing.T, encoding string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch encoding {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "br":
		w = brotli.NewWriter(&buf)
	case "zstd":
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		w = zw
	default:
		return data
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("compress write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}
	return buf.Bytes()
}

func TestCompressionTransport_Decompress(t *testing.T) {
	t.Parallel()
	payload := []byte("subtitle page payload")

	tests := []struct {
		name   string
		header string // Content-Encoding sent by the server
		encode string // actual encoding applied to the payload
	}{
		{"gzip", "gzip", "gzip"},
		{"brotli", "br", "br"},
		{"zstd", "zstd", "zstd"},
		{"comma list uses outermost", "identity, gzip", "gzip"},
		{"whitespace tolerated", " gzip ", "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Accept-Encoding"); got != "gzip, br, zstd" {
					t.Errorf("Accept-Encoding = %q, want %q", got, "gzip, br, zstd")
				}
				w.Header().Set("Content-Encoding", tt.header)
				w.Write(compress(t, tt.encode, payload))
			}))
			defer server.Close()

			httpClient := &http.Client{Transport: newCompressionTransport(nil)}
			resp, err := httpClient.Get(server.URL)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !bytes.Equal(body, payload) {
				t.Errorf("body = %q, want %q", body, payload)
			}
			if resp.Header.Get("Content-Encoding") != "" {
				t.Errorf("Content-Encoding not cleared after decompression: %q",
					resp.Header.Get("Content-Encoding"))
			}
		})
	}
}

func TestCompressionTransport_PassThrough(t *testing.T) {
	t.Parallel()
	payload := []byte("plain payload")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newCompressionTransport(nil)}
	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(body, payload) {
		t.Errorf("body = %q, want %q", body, payload)
	}
}

func TestCompressionTransport_UnknownEncodingKept(t *testing.T) {
	t.Parallel()
	payload := []byte("raw payload in unknown encoding")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "unknown-encoding")
		w.Write(payload)
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newCompressionTransport(nil)}
	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(body, payload) {
		t.Errorf("body = %q, want untouched payload", body)
	}
	if resp.Header.Get("Content-Encoding") != "unknown-encoding" {
		t.Errorf("Content-Encoding = %q, want unknown-encoding preserved",
			resp.Header.Get("Content-Encoding"))
	}
}

func TestCompressionTransport_PreservesCallerAcceptEncoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept-Encoding"); got != "identity" {
			t.Errorf("Accept-Encoding = %q, want caller's identity", got)
		}
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newCompressionTransport(nil)}
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
}

func TestCompressionTransport_NoBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newCompressionTransport(nil)}
	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}

func TestParseContentEncoding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"   ", ""},
		{"gzip", "gzip"},
		{"br", "br"},
		{"zstd", "zstd"},
		{" gzip ", "gzip"},
		{"identity, gzip", "gzip"},
		{"gzip, br", "br"},
		{"GZIP", "gzip"},
	}

	for _, tt := range tests {
		if got := parseContentEncoding(tt.header); got != tt.want {
			t.Errorf("parseContentEncoding(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
