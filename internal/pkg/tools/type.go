// Package tools talks to remote MCP tool providers: it discovers their
// catalogs and dispatches single tool invocations.
package tools

import (
	"context"
	"fmt"
)

// ToolDescriptor describes one callable tool as advertised by a provider.
// Descriptors are immutable once fetched; the unique key across all
// providers is Name.
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolCallRequest is a fully reassembled tool invocation request produced
// by the model mid-stream.
type ToolCallRequest struct {
	ID            string `json:"id"`
	ToolName      string `json:"tool_name"`
	ArgumentsJSON string `json:"arguments_json"`
}

// ToolCallResult carries the textual result of one tool invocation.
type ToolCallResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

// ProviderConfig identifies one remote tool provider.
type ProviderConfig struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// ToolError wraps any handshake, call or parse failure against a provider.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ToolSession is one live connection to a tool provider. Sessions are
// opened per operation and must be closed by the caller.
type ToolSession interface {
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
	CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error)
	Close() error
}

// Dialer opens a session against a provider endpoint, performing the
// protocol handshake. Injectable so tests can supply fakes.
type Dialer func(ctx context.Context, endpoint string) (ToolSession, error)
