// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics, constructor helpers, and compatibility
// with errors.Is() including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "configuration",
			err:      NewConfigurationError("username and password must both be set"),
			expected: "configuration error: username and password must both be set",
		},
		{
			name:     "authentication",
			err:      NewAuthenticationError("login rejected"),
			expected: "authentication failed: login rejected",
		},
		{
			name:     "service unavailable",
			err:      NewServiceUnavailableError("empty download response"),
			expected: "service unavailable: empty download response",
		},
		{
			name:     "download limit",
			err:      &ErrDownloadLimitExceeded{URL: "https://pipocas.tv/legendas/download/42"},
			expected: "download limit exceeded at URL: https://pipocas.tv/legendas/download/42",
		},
		{
			name:     "not found with ID",
			err:      NewNotFoundError("subtitle", "abc"),
			expected: "subtitle with ID abc not found",
		},
		{
			name:     "not found without ID",
			err:      &ErrNotFound{Resource: "subtitle"},
			expected: "subtitle not found",
		},
		{
			name:     "no subtitle in archive",
			err:      &ErrNoSubtitleInArchive{FileCount: 3},
			expected: "no suitable subtitle file in archive (searched 3 files)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorsIs_MatchesSameType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"configuration", NewConfigurationError("a"), &ErrConfiguration{}},
		{"authentication", NewAuthenticationError("a"), &ErrAuthentication{}},
		{"service unavailable", NewServiceUnavailableError("a"), &ErrServiceUnavailable{}},
		{"download limit", &ErrDownloadLimitExceeded{URL: "u"}, &ErrDownloadLimitExceeded{}},
		{"not found", NewNotFoundError("subtitle", 1), &ErrNotFound{}},
		{"no subtitle in archive", &ErrNoSubtitleInArchive{FileCount: 1}, &ErrNoSubtitleInArchive{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%T, %T) = false, want true", tt.err, tt.target)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("search failed: %w", NewAuthenticationError("session expired"))
	if !errors.Is(wrapped, &ErrAuthentication{}) {
		t.Error("expected wrapped ErrAuthentication to match through errors.Is")
	}
	if errors.Is(wrapped, &ErrConfiguration{}) {
		t.Error("wrapped ErrAuthentication must not match ErrConfiguration")
	}
}

func TestErrorsIs_DistinctTypes(t *testing.T) {
	t.Parallel()
	if errors.Is(NewAuthenticationError("a"), &ErrServiceUnavailable{}) {
		t.Error("ErrAuthentication must not match ErrServiceUnavailable")
	}
	if errors.Is(&ErrNoSubtitleInArchive{}, &ErrNotFound{}) {
		t.Error("ErrNoSubtitleInArchive must not match ErrNotFound")
	}
}
