package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	clientName    = "aichat"
	clientVersion = "1.0.0"
)

// MCPDialer connects to a tool provider over SSE and performs the
// initialize handshake.
func MCPDialer(ctx context.Context, endpoint string) (ToolSession, error) {
	cli := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
	session, err := cli.Connect(ctx, &mcp.SSEClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to tool provider %s: %w", endpoint, err)
	}
	return &mcpSession{session: session}, nil
}

type mcpSession struct {
	session *mcp.ClientSession
}

func (s *mcpSession) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	resp, err := s.session.ListTools(ctx, nil)
	if err != nil {
		return nil, err
	}
	descriptors := make([]ToolDescriptor, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		descriptors = append(descriptors, ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: normalizeSchema(tool.InputSchema),
		})
	}
	return descriptors, nil
}

func (s *mcpSession) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	res, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", err
	}
	text := flattenContent(res.Content)
	if res.IsError {
		if text == "" {
			text = "tool provider reported an error"
		}
		return "", fmt.Errorf("%s", text)
	}
	if text == "" {
		// No text part in the envelope; hand back the raw content.
		out, _ := json.Marshal(res.Content)
		return string(out), nil
	}
	return text, nil
}

func (s *mcpSession) Close() error {
	return s.session.Close()
}

func flattenContent(content []mcp.Content) string {
	parts := []string{}
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// normalizeSchema converts whatever schema representation the SDK hands us
// into a plain map so it can be forwarded to the model provider verbatim.
func normalizeSchema(schema any) map[string]interface{} {
	if schema == nil {
		return defaultSchema()
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return defaultSchema()
	}
	var params map[string]interface{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return defaultSchema()
	}
	return params
}

func defaultSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
