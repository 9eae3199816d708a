package providers

import (
	"context"
	"fmt"

	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

// ToolCall is a fully reassembled tool invocation request attached to an
// assistant message.
type ToolCall struct {
	ID           string `json:"id"`
	FunctionName string `json:"function_name"`
	Args         string `json:"args"`
}

// ChatMessage is one entry of a conversation. Order is the model's causal
// context and must be preserved exactly. ToolCallID is set only on
// tool-role messages; ToolCalls only on assistant messages that requested
// tool invocations.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCallDelta is one incremental fragment of a tool call. Fragments for
// the same Index concatenate in arrival order.
type ToolCallDelta struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Delta is one incremental fragment of a streamed model response.
type Delta struct {
	Content   string          `json:"content"`
	ToolCalls []ToolCallDelta `json:"tool_calls,omitempty"`
}

// DeltaStream yields deltas in provider emission order. It is not
// restartable; Err reports why the stream stopped once Next returns false.
type DeltaStream interface {
	Next() bool
	Current() Delta
	Err() error
	Close() error
}

// ChatStreamer opens a token-streaming completion request for a
// conversation and an optional tool catalog.
type ChatStreamer interface {
	StreamChat(ctx context.Context, messages []ChatMessage, catalog []tools.ToolDescriptor) (DeltaStream, error)
}

// UpstreamError wraps model provider failures: unreachable provider,
// non-success status or a malformed stream.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream completion error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
