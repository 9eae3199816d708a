package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/sink"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

// TurnRunner processes one conversation turn, emitting events to out.
type TurnRunner interface {
	Run(ctx context.Context, messages []providers.ChatMessage, catalog []tools.ToolDescriptor, out sink.Sink) (string, error)
}

// ToolCatalog supplies the flattened catalog across all tool providers.
type ToolCatalog interface {
	ListTools(ctx context.Context) []tools.ToolDescriptor
}

type CompletionMessage struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

type CompletionRequest struct {
	Messages []CompletionMessage    `json:"messages" binding:"required,min=1,dive"`
	Tools    []tools.ToolDescriptor `json:"tools,omitempty"`
}

type ConversationController struct {
	runner      TurnRunner
	catalog     ToolCatalog
	turnTimeout time.Duration
}

func NewConversationController(runner TurnRunner, catalog ToolCatalog, turnTimeout time.Duration) *ConversationController {
	return &ConversationController{
		runner:      runner,
		catalog:     catalog,
		turnTimeout: turnTimeout,
	}
}

// Completions godoc
//	@Summary		Stream a chat completion
//	@Description	Streams assistant output as server-sent events, invoking tools mid-stream when the model requests them
//	@Tags			conversation
//	@Accept			json
//	@Produce		text/event-stream
//	@Param			request	body		CompletionRequest	true	"Conversation messages"
//	@Success		200		{string}	string				"SSE stream"
//	@Failure		400		{object}	map[string]string	"Bad request"
//	@Router			/api/v1/conversation/completions [post]
func (cc *ConversationController) Completions(c *gin.Context) {
	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := sink.NewSSESink(c.Writer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if cc.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.turnTimeout)
		defer cancel()
	}

	messages := make([]providers.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = providers.ChatMessage{Role: m.Role, Content: m.Content}
	}

	catalog := req.Tools
	if len(catalog) == 0 {
		catalog = cc.catalog.ListTools(ctx)
	}

	// Turn errors are already delivered as SSE error frames; nothing more
	// can be written to the response at this point.
	if _, err := cc.runner.Run(ctx, messages, catalog, out); err != nil {
		slog.Error("Completions: turn failed", "error", err)
	}
}

// ListTools godoc
//	@Summary		List available tools
//	@Description	Returns the flattened tool catalog across all configured tool providers
//	@Tags			conversation
//	@Produce		json
//	@Success		200	{array}	tools.ToolDescriptor
//	@Router			/api/v1/conversation/tools [get]
func (cc *ConversationController) ListTools(c *gin.Context) {
	catalog := cc.catalog.ListTools(c.Request.Context())
	c.JSON(http.StatusOK, catalog)
}
