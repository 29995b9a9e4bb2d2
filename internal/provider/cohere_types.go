// Package provider implements integrations with external chat completion APIs.
package provider

// Cohere v2 Chat API wire types.
// Only the fields this gateway reads or writes are modeled.

// ContentTypeText tags content segments that carry the assistant's text reply.
// Segments with other kinds (tool_call, thinking, ...) are skipped.
const ContentTypeText = "text"

// CohereChatRequest represents a v2/chat request.
type CohereChatRequest struct {
	// Model is the model identifier to run the chat with.
	Model string `json:"model"`

	// Messages is the conversation so far. This gateway always sends a
	// single user message.
	Messages []CohereMessage `json:"messages"`
}

// CohereMessage is a single message in the conversation.
type CohereMessage struct {
	// Role is one of: "user", "assistant", "system", "tool".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// CohereChatResponse represents a v2/chat response.
type CohereChatResponse struct {
	// ID is the upstream identifier for this generation.
	ID string `json:"id"`

	// FinishReason indicates why generation stopped.
	FinishReason string `json:"finish_reason"`

	// Message holds the assistant reply.
	Message CohereAssistantMessage `json:"message"`

	// Usage contains token accounting, when reported.
	Usage *CohereUsage `json:"usage,omitempty"`
}

// CohereAssistantMessage is the assistant side of a chat turn.
// Content is an ordered sequence of typed segments.
type CohereAssistantMessage struct {
	Role    string          `json:"role"`
	Content []CohereContent `json:"content"`
}

// CohereContent is one typed segment of an assistant reply.
type CohereContent struct {
	// Type tags the segment kind: "text", "tool_call", "thinking", ...
	Type string `json:"type"`

	// Text carries the segment text when Type is "text".
	Text string `json:"text,omitempty"`
}

// CohereUsage contains token usage information.
type CohereUsage struct {
	BilledUnits *CohereBilledUnits `json:"billed_units,omitempty"`
}

// CohereBilledUnits contains billed token counts.
type CohereBilledUnits struct {
	InputTokens  float64 `json:"input_tokens"`
	OutputTokens float64 `json:"output_tokens"`
}

// CohereErrorResponse represents an error response from the Cohere API.
type CohereErrorResponse struct {
	Message string `json:"message"`
}
