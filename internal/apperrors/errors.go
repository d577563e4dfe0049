package apperrors

import "fmt"

// ErrConfiguration represents an invalid or incomplete provider configuration.
type ErrConfiguration struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrConfiguration) Is(target error) bool {
	_, ok := target.(*ErrConfiguration)
	return ok
}

// NewConfigurationError creates a new ErrConfiguration.
func NewConfigurationError(reason string) *ErrConfiguration {
	return &ErrConfiguration{Reason: reason}
}

// ErrAuthentication is returned when a login fails or the session has been
// logged out by the site (the page shows the account-signup prompt).
type ErrAuthentication struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrAuthentication) Is(target error) bool {
	_, ok := target.(*ErrAuthentication)
	return ok
}

// NewAuthenticationError creates a new ErrAuthentication.
func NewAuthenticationError(reason string) *ErrAuthentication {
	return &ErrAuthentication{Reason: reason}
}

// ErrServiceUnavailable is returned when the site responds with something the
// provider cannot work with: a login page without a CSRF token, an empty
// download body, or a server error that survived retries.
type ErrServiceUnavailable struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrServiceUnavailable) Error() string {
	return fmt.Sprintf("service unavailable: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrServiceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrServiceUnavailable)
	return ok
}

// NewServiceUnavailableError creates a new ErrServiceUnavailable.
func NewServiceUnavailableError(reason string) *ErrServiceUnavailable {
	return &ErrServiceUnavailable{Reason: reason}
}

// ErrDownloadLimitExceeded is returned when the site throttles downloads for
// the authenticated account.
type ErrDownloadLimitExceeded struct {
	URL string
}

// Error implements the error interface.
func (e *ErrDownloadLimitExceeded) Error() string {
	return fmt.Sprintf("download limit exceeded at URL: %s", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrDownloadLimitExceeded) Is(target error) bool {
	_, ok := target.(*ErrDownloadLimitExceeded)
	return ok
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// ErrNoSubtitleInArchive is returned when a downloaded archive contains no
// entry that can serve as a subtitle for the requested video.
type ErrNoSubtitleInArchive struct {
	FileCount int
}

// Error implements the error interface.
func (e *ErrNoSubtitleInArchive) Error() string {
	return fmt.Sprintf("no suitable subtitle file in archive (searched %d files)", e.FileCount)
}

// Is allows for error checking with errors.Is().
func (e *ErrNoSubtitleInArchive) Is(target error) bool {
	_, ok := target.(*ErrNoSubtitleInArchive)
	return ok
}
