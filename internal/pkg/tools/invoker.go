package tools

import (
	"context"
	"log/slog"
)

// Invoker dispatches a single tool call to a provider endpoint. Each call
// opens a fresh connection and tears it down when done, success or not.
type Invoker struct {
	dial Dialer
}

func NewInvoker(dial Dialer) *Invoker {
	if dial == nil {
		dial = MCPDialer
	}
	return &Invoker{dial: dial}
}

// Invoke performs one tools/call exchange and returns the textual result
// payload. Connection, provider and parse failures all surface as a
// ToolError so the caller can fold them back into the conversation.
func (i *Invoker) Invoke(ctx context.Context, endpoint string, toolName string, args map[string]interface{}) (string, error) {
	session, err := i.dial(ctx, endpoint)
	if err != nil {
		return "", &ToolError{Tool: toolName, Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("Invoker: failed to close session", "tool", toolName, "error", err)
		}
	}()

	content, err := session.CallTool(ctx, toolName, args)
	if err != nil {
		return "", &ToolError{Tool: toolName, Err: err}
	}
	return content, nil
}
