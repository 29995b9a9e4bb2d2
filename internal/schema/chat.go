// Package schema defines the request/response shapes for the chat endpoint
// and validates inbound payloads before anything reaches the upstream provider.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxMessageLength is the inclusive upper bound on message length in runes.
const MaxMessageLength = 1000

// validate is the package-level validator instance. validator counts runes
// for string min/max, which matches the character-based bound.
var validate = validator.New()

// ChatRequest is the inbound payload for POST /chat.
type ChatRequest struct {
	// Message is the user's chat message. Required, 1-1000 characters.
	Message string `json:"message" validate:"required,min=1,max=1000"`

	// UserID is an optional caller identifier. Accepted but unused.
	UserID *string `json:"user_id,omitempty"`
}

// Validate checks the request against its constraints.
// Returns validator.ValidationErrors on failure.
func (r *ChatRequest) Validate() error {
	return validate.Struct(r)
}

// ChatResponse is the outbound payload for POST /chat.
type ChatResponse struct {
	// RequestID is the caller-supplied identifier or a freshly generated UUID.
	RequestID string `json:"request_id"`

	// Answer is the extracted assistant reply.
	Answer string `json:"answer"`

	// Model identifies which backend model produced the answer.
	Model string `json:"model"`

	// ElapsedTime is the duration of the upstream call in milliseconds.
	ElapsedTime int64 `json:"elapsed_time"`
}

// FieldError describes a single violated constraint in a request payload.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Details maps a binding or validation error to field-level details.
// It understands validator.ValidationErrors and json.UnmarshalTypeError
// (wrong JSON type for a field); anything else becomes a single generic entry.
func Details(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:      strings.ToLower(fe.Field()),
				Constraint: fe.Tag(),
				Message:    constraintMessage(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{
			Field:      field,
			Constraint: "type",
			Message:    fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	return []FieldError{{
		Field:      "body",
		Constraint: "json",
		Message:    "request body is not valid JSON",
	}}
}

// constraintMessage builds a human-readable message for a violated constraint.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' constraint", fe.Tag())
	}
}
