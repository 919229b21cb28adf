package weather

import (
	"errors"
	"fmt"
)

// Sentinel errors for the weather domain.
var (
	// ErrMissingAPIKey indicates the provider credential was absent or empty.
	ErrMissingAPIKey = errors.New("weather provider API key is not set")

	// ErrInvalidCoordinates indicates a lat/lon pair outside valid ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ConfigError indicates the fetcher was misconfigured. It is returned before
// any network I/O happens.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "weather config: " + e.Reason
}

// NetworkError indicates the request could not be sent or timed out.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("weather request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProviderError indicates the provider answered with a non-success status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather provider returned status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the provider rejected the call for quota reasons.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}

// ParseError indicates the response body was not valid JSON or did not match
// the provider's documented schema.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather response parse: %s: %v", e.Reason, e.Err)
	}
	return "weather response parse: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
