package ws

import (
	"context"
	"encoding/json"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/sink"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

type WsEventType string

const (
	WsEventTypePing     WsEventType = "ping"
	WsEventTypePong     WsEventType = "pong"
	WsEventTypeChat     WsEventType = "chat"
	WsEventTypeText     WsEventType = "text"
	WsEventTypeError    WsEventType = "error"
	WsEventTypeDone     WsEventType = "done"
	WsEventTypeTurnDone WsEventType = "turn_done"
)

// WsMessage is a message received over the websocket connection.
type WsMessage struct {
	Event WsEventType     `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundMessage is a message sent over the websocket connection.
type OutboundMessage struct {
	Event WsEventType `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// ChatRequest is the payload of a chat event: one turn's messages plus an
// optional tool catalog. When Tools is empty the server-side catalog is
// used.
type ChatRequest struct {
	Messages []providers.ChatMessage `json:"messages"`
	Tools    []tools.ToolDescriptor  `json:"tools,omitempty"`
}

type TextPayload struct {
	Content string `json:"content"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type WsConnection interface {
	ReadJSON(v interface{}) error
	WriteJSON(message interface{}) error
	Close() error
}

// TurnRunner processes one conversation turn against a sink.
type TurnRunner interface {
	Run(ctx context.Context, messages []providers.ChatMessage, catalog []tools.ToolDescriptor, out sink.Sink) (string, error)
}

// ToolCatalog supplies the flattened tool catalog for turns that do not
// carry their own.
type ToolCatalog interface {
	ListTools(ctx context.Context) []tools.ToolDescriptor
}
