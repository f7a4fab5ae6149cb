package repository

import (
	"errors"
	"fmt"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrExternalAPI      = errors.New("external API error")
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// ProviderError reports a failed call to a weather or geocoding provider.
// It unwraps to one of the sentinel errors above and to the underlying cause, if any.
type ProviderError struct {
	Provider   string
	Op         string
	// StatusCode is set only when the provider answered with a non-200 status.
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
