package parser

import (
	"strings"
	"testing"

	"github.com/Blackspirits/pipocas/internal/testutil"
)

func TestDetailParser_ParseHtml(t *testing.T) {
	t.Parallel()

	html := testutil.DetailPage(testutil.DetailPageOptions{
		Release:  "Outlander.S07E16.720p.WEB-DL.DDP5.1.H.264-NTb",
		SubID:    "98765",
		Hits:     342,
		Uploader: "tradutor1",
		Rating:   "4/5",
	})

	result, err := NewDetailParser().ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml: %v", err)
	}
	if result == nil {
		t.Fatal("ParseHtml returned nil result for a downloadable page")
	}

	if result.SubID != "98765" {
		t.Errorf("SubID = %q, want 98765", result.SubID)
	}
	if result.Release != "Outlander.S07E16.720p.WEB-DL.DDP5.1.H.264-NTb" {
		t.Errorf("Release = %q", result.Release)
	}
	if result.Hits != 342 {
		t.Errorf("Hits = %d, want 342", result.Hits)
	}
	if result.Uploader != "tradutor1" {
		t.Errorf("Uploader = %q, want tradutor1", result.Uploader)
	}
	if result.Rating != 4 {
		t.Errorf("Rating = %d, want 4", result.Rating)
	}
}

func TestDetailParser_NoDownloadLink(t *testing.T) {
	t.Parallel()

	html := testutil.DetailPage(testutil.DetailPageOptions{
		Release: "Some.Pending.Release",
		Hits:    10,
	})

	result, err := NewDetailParser().ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml: %v", err)
	}
	if result != nil {
		t.Errorf("ParseHtml() = %+v, want nil for a page without a download link", result)
	}
}

func TestDetailParser_MissingOptionalFields(t *testing.T) {
	t.Parallel()

	html := testutil.DetailPage(testutil.DetailPageOptions{
		Release: "Bare.Release-GRP",
		SubID:   "42",
	})

	result, err := NewDetailParser().ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml: %v", err)
	}
	if result == nil {
		t.Fatal("ParseHtml returned nil result")
	}

	if result.SubID != "42" {
		t.Errorf("SubID = %q, want 42", result.SubID)
	}
	if result.Uploader != "" {
		t.Errorf("Uploader = %q, want empty", result.Uploader)
	}
	if result.Rating != 0 {
		t.Errorf("Rating = %d, want 0", result.Rating)
	}
}

func TestDetailParser_UnratedPage(t *testing.T) {
	t.Parallel()

	html := testutil.DetailPage(testutil.DetailPageOptions{
		Release: "Unrated.Release",
		SubID:   "7",
		Rating:  "Sem votos",
	})

	result, err := NewDetailParser().ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml: %v", err)
	}
	if result == nil {
		t.Fatal("ParseHtml returned nil result")
	}
	if result.Rating != 0 {
		t.Errorf("Rating = %d, want 0 for a non-numeric rating header", result.Rating)
	}
}
