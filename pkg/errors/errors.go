package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind represents the kind of resolution error
type Kind string

const (
	// KindUnsupportedStore means the input matched neither storefront grammar
	KindUnsupportedStore Kind = "unsupported_store"
	// KindIdentifierNotFound means the platform matched but id extraction failed
	KindIdentifierNotFound Kind = "identifier_not_found"
	// KindUpstreamUnavailable means the Steam API call failed or reported non-success
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindScrapeFailed means the PlayStation page fetch or parse failed
	KindScrapeFailed Kind = "scrape_failed"
)

// ResolveError represents a resolution-specific error
type ResolveError struct {
	Kind     Kind
	Platform string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Kind, e.Platform, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Platform, e.Message)
}

// Unwrap returns the underlying error
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether the façade may absorb the error into a
// fallback listing instead of surfacing it to the caller. Only scrape
// failures qualify; bad input and Steam outages always surface.
func (e *ResolveError) IsRecoverable() bool {
	return e.Kind == KindScrapeFailed
}

// New creates a new ResolveError
func New(kind Kind, platform, message string, err error) *ResolveError {
	return &ResolveError{
		Kind:     kind,
		Platform: platform,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewUnsupportedStore creates a new unsupported-store error
func NewUnsupportedStore(message string) *ResolveError {
	return New(KindUnsupportedStore, "", message, nil)
}

// NewIdentifierNotFound creates a new identifier-not-found error
func NewIdentifierNotFound(platform, message string) *ResolveError {
	return New(KindIdentifierNotFound, platform, message, nil)
}

// NewUpstreamUnavailable creates a new upstream-unavailable error
func NewUpstreamUnavailable(platform, message string, err error) *ResolveError {
	return New(KindUpstreamUnavailable, platform, message, err)
}

// NewScrapeFailed creates a new scrape-failed error
func NewScrapeFailed(platform, message string, err error) *ResolveError {
	return New(KindScrapeFailed, platform, message, err)
}

// KindOf returns the kind of err when it is a ResolveError, or "" otherwise
func KindOf(err error) Kind {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsRecoverable reports whether err is a ResolveError the façade may absorb
// into a fallback listing. Anything else must surface to the caller.
func IsRecoverable(err error) bool {
	var re *ResolveError
	return errors.As(err, &re) && re.IsRecoverable()
}
