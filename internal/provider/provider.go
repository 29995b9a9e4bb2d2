// Package provider implements integrations with external chat completion APIs.
// It uses the Adapter pattern to abstract provider-specific wire formats behind
// a common text-in/text-out interface.
package provider

import (
	"context"
)

// ChatProvider defines the interface for chat backends.
// All provider implementations must satisfy this interface.
type ChatProvider interface {
	// Chat sends a single user message to the backend and returns the
	// extracted text answer. The call is a single synchronous round-trip.
	Chat(ctx context.Context, message string) (string, error)

	// Name returns the identifier of the backend model in use.
	// It is constant for the provider's lifetime.
	Name() string
}
