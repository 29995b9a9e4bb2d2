// Package provider implements integrations with external chat completion APIs.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kvazar42/chatgate/internal/config"
)

const (
	// DefaultCohereBaseURL is the default Cohere API endpoint.
	DefaultCohereBaseURL = "https://api.cohere.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// chatPath is the v2 chat completion endpoint path.
	chatPath = "/v2/chat"
)

// CohereProvider implements ChatProvider for the Cohere v2 Chat API.
// It translates a plain text message into the Cohere request format and
// extracts the text answer from the typed content segments of the reply.
type CohereProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// CohereProviderOption is a functional option for configuring CohereProvider.
type CohereProviderOption func(*CohereProvider)

// WithBaseURL sets a custom base URL for the Cohere API.
func WithBaseURL(url string) CohereProviderOption {
	return func(p *CohereProvider) {
		p.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) CohereProviderOption {
	return func(p *CohereProvider) {
		p.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) CohereProviderOption {
	return func(p *CohereProvider) {
		p.httpClient.Timeout = timeout
	}
}

// WithProviderLogger sets a custom logger.
func WithProviderLogger(logger *slog.Logger) CohereProviderOption {
	return func(p *CohereProvider) {
		p.logger = logger
	}
}

// NewCohereProvider creates a new CohereProvider from the given configuration.
// The configuration is resolved once at startup; the provider never reads
// the environment itself.
func NewCohereProvider(cfg *config.ProviderConfig, opts ...CohereProviderOption) *CohereProvider {
	p := &CohereProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: DefaultCohereBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}

	if cfg.BaseURL != "" {
		p.baseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.TimeoutSeconds > 0 {
		p.httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the configured model identifier.
func (p *CohereProvider) Name() string {
	return p.model
}

// Chat sends a single user message to the Cohere chat API and returns the
// concatenated text segments of the reply. Every failure mode - transport
// error, non-success status, undecodable body - surfaces as *UpstreamError.
func (p *CohereProvider) Chat(ctx context.Context, message string) (string, error) {
	if p.apiKey == "" {
		// Startup validation normally catches this; the guard covers
		// providers constructed outside the config path.
		return "", &UpstreamError{Provider: p.model, Err: errors.New("api key is empty")}
	}

	reqBody := CohereChatRequest{
		Model: p.model,
		Messages: []CohereMessage{
			{Role: "user", Content: message},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &UpstreamError{Provider: p.model, Err: fmt.Errorf("failed to marshal chat request: %w", err)}
	}

	url := p.baseURL + chatPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Provider: p.model, Err: fmt.Errorf("failed to create http request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &UpstreamError{Provider: p.model, Err: fmt.Errorf("failed to execute chat request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Provider: p.model, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read chat response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var cohereErr CohereErrorResponse
		if err := json.Unmarshal(respBody, &cohereErr); err == nil && cohereErr.Message != "" {
			return "", &UpstreamError{Provider: p.model, StatusCode: resp.StatusCode, Err: errors.New(cohereErr.Message)}
		}
		return "", &UpstreamError{Provider: p.model, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(respBody)))}
	}

	var chatResp CohereChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &UpstreamError{Provider: p.model, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal chat response: %w", err)}
	}

	if chatResp.Usage != nil && chatResp.Usage.BilledUnits != nil {
		p.logger.Debug("upstream token usage",
			slog.String("model", p.model),
			slog.Float64("input_tokens", chatResp.Usage.BilledUnits.InputTokens),
			slog.Float64("output_tokens", chatResp.Usage.BilledUnits.OutputTokens),
		)
	}

	return extractText(chatResp.Message.Content), nil
}

// extractText concatenates the text segments of a reply in order, with no
// separator. Segments of other kinds are ignored. A reply without text
// segments yields the empty string, not an error.
func extractText(content []CohereContent) string {
	var builder strings.Builder
	for _, segment := range content {
		if segment.Type == ContentTypeText {
			builder.WriteString(segment.Text)
		}
	}
	return builder.String()
}
