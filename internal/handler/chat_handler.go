// Package handler provides HTTP handlers for the chat gateway.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kvazar42/chatgate/internal/provider"
	"github.com/kvazar42/chatgate/internal/schema"
)

// HeaderRequestID is the optional caller-supplied request identifier header.
// It is echoed back as request_id and never used for deduplication.
const HeaderRequestID = "X-Request-ID"

// ChatHandler handles chat requests: validate, invoke the provider once,
// map errors, assemble the response. No retries, no cross-request state.
type ChatHandler struct {
	provider provider.ChatProvider
	logger   *slog.Logger
}

// ChatHandlerOption is a functional option for configuring ChatHandler.
type ChatHandlerOption func(*ChatHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ChatHandlerOption {
	return func(h *ChatHandler) {
		h.logger = logger
	}
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatProvider provider.ChatProvider, opts ...ChatHandlerOption) *ChatHandler {
	h := &ChatHandler{
		provider: chatProvider,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleChat handles POST /chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req schema.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "invalid_input",
			"request validation failed", schema.Details(err))
		return
	}

	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "invalid_input",
			"request validation failed", schema.Details(err))
		return
	}

	// Timer covers the upstream call only, not validation or assembly.
	start := time.Now()
	answer, err := h.provider.Chat(c.Request.Context(), req.Message)
	elapsed := time.Since(start)

	requestID := h.resolveRequestID(c)
	c.Set("request_id", requestID)

	if err != nil {
		// The cause stays in the logs; clients get a generic message.
		h.logger.Error("upstream call failed",
			slog.String("request_id", requestID),
			slog.String("provider", h.provider.Name()),
			slog.String("error", err.Error()),
		)
		h.sendError(c, http.StatusBadGateway, "upstream_error",
			"upstream provider request failed", nil)
		return
	}

	c.JSON(http.StatusOK, schema.ChatResponse{
		RequestID:   requestID,
		Answer:      answer,
		Model:       h.provider.Name(),
		ElapsedTime: elapsed.Milliseconds(),
	})
}

// resolveRequestID returns the caller-supplied header value if present and
// non-empty, otherwise a freshly generated UUID.
func (h *ChatHandler) resolveRequestID(c *gin.Context) string {
	if id := c.GetHeader(HeaderRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}

// sendError sends an error response in the gateway's error envelope.
func (h *ChatHandler) sendError(c *gin.Context, status int, errType, message string, details []schema.FieldError) {
	body := gin.H{
		"type":    errType,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	c.JSON(status, gin.H{"error": body})
}

// HandleHealth handles GET /health.
func (h *ChatHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"model":  h.provider.Name(),
	})
}
