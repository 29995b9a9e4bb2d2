// Package tests provides end-to-end tests for the chat gateway.
// They exercise the full flow: client -> gin engine -> provider -> mock upstream.
package tests

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kvazar42/chatgate/internal/config"
	"github.com/kvazar42/chatgate/internal/handler"
	"github.com/kvazar42/chatgate/internal/provider"
	"github.com/kvazar42/chatgate/internal/schema"
)

// mockUpstream simulates the Cohere v2 chat API.
// Behavior is keyed on the incoming message content:
//   - "FAIL"  -> HTTP 500
//   - "SLOW"  -> 60ms delay, then a normal reply
//   - default -> a reply with text and tool_call segments
func mockUpstream(requestCounter *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCounter != nil {
			atomic.AddInt32(requestCounter, 1)
		}

		var req provider.CohereChatRequest
		json.NewDecoder(r.Body).Decode(&req)

		message := ""
		if len(req.Messages) > 0 {
			message = req.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")

		switch message {
		case "FAIL":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(provider.CohereErrorResponse{
				Message: "internal upstream explosion",
			})
			return
		case "SLOW":
			time.Sleep(60 * time.Millisecond)
		}

		json.NewEncoder(w).Encode(provider.CohereChatResponse{
			ID:           "gen-e2e",
			FinishReason: "COMPLETE",
			Message: provider.CohereAssistantMessage{
				Role: "assistant",
				Content: []provider.CohereContent{
					{Type: "text", Text: "Hello from the "},
					{Type: "tool_call"},
					{Type: "text", Text: "mock upstream!"},
				},
			},
		})
	}))
}

// newGateway builds the full gin engine the way cmd/server does, pointed at
// the given upstream URL.
func newGateway(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.Default()

	chatProvider := provider.NewCohereProvider(&config.ProviderConfig{
		APIKey:         "test-api-key",
		Model:          "command-test",
		BaseURL:        upstreamURL,
		TimeoutSeconds: 5,
	})

	chatHandler := handler.NewChatHandler(chatProvider, handler.WithLogger(logger))

	router := gin.New()
	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CORSMiddleware())
	router.POST("/chat", chatHandler.HandleChat)
	router.GET("/health", chatHandler.HandleHealth)
	return router
}

func postChat(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestGatewayE2E_HappyPath(t *testing.T) {
	var calls int32
	upstream := mockUpstream(&calls)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := postChat(router, `{"message": "Hello!"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp schema.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Answer != "Hello from the mock upstream!" {
		t.Errorf("answer = %q, want the concatenated text segments", resp.Answer)
	}
	if resp.Model != "command-test" {
		t.Errorf("model = %s, want command-test", resp.Model)
	}
	if _, err := uuid.Parse(resp.RequestID); err != nil {
		t.Errorf("request_id %q is not a valid UUID: %v", resp.RequestID, err)
	}
	if resp.ElapsedTime < 0 {
		t.Errorf("elapsed_time = %d, want non-negative", resp.ElapsedTime)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("upstream calls = %d, want 1 (no retries)", calls)
	}
}

func TestGatewayE2E_RequestIDEcho(t *testing.T) {
	upstream := mockUpstream(nil)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := postChat(router, `{"message": "Hello!"}`, map[string]string{
		handler.HeaderRequestID: "abc-123",
	})

	var resp schema.ChatResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.RequestID != "abc-123" {
		t.Errorf("request_id = %q, want abc-123", resp.RequestID)
	}
}

func TestGatewayE2E_ElapsedCoversUpstreamCall(t *testing.T) {
	upstream := mockUpstream(nil)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := postChat(router, `{"message": "SLOW"}`, nil)

	var resp schema.ChatResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.ElapsedTime < 50 {
		t.Errorf("elapsed_time = %d, want >= 50 for a 60ms upstream", resp.ElapsedTime)
	}
}

func TestGatewayE2E_UpstreamFailure(t *testing.T) {
	var calls int32
	upstream := mockUpstream(&calls)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := postChat(router, `{"message": "FAIL"}`, nil)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "explosion") {
		t.Errorf("502 body leaks upstream detail: %s", w.Body.String())
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("upstream calls = %d, want 1 (failures are not retried)", calls)
	}
}

func TestGatewayE2E_ValidationRejectedBeforeUpstream(t *testing.T) {
	var calls int32
	upstream := mockUpstream(&calls)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := postChat(router, `{"message": ""}`, nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("upstream calls = %d, want 0 (validation happens first)", calls)
	}
}

func TestGatewayE2E_Health(t *testing.T) {
	upstream := mockUpstream(nil)
	defer upstream.Close()

	router := newGateway(upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)

	if resp["status"] != "healthy" {
		t.Errorf("status = %s, want healthy", resp["status"])
	}
}
