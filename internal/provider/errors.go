// Package provider implements integrations with external chat completion APIs.
package provider

import (
	"errors"
	"fmt"
)

// UpstreamError represents any failure of the upstream provider call:
// transport errors, non-success status codes, or malformed responses.
// The cause is for internal logging only and must never reach API clients.
type UpstreamError struct {
	Provider   string // Provider identifier (e.g. model name)
	StatusCode int    // Upstream HTTP status, 0 if the call never completed
	Err        error  // Underlying error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error [%d]: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError checks if an error is an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
