package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestProvider(t *testing.T) *mcpSession {
	t.Helper()

	srv := mcp.NewServer(&mcp.Implementation{Name: "test-provider", Version: "1.0.0"}, nil)
	srv.AddTool(&mcp.Tool{
		Name:        "echo",
		Description: "Echoes the message back",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"message": {Type: "string"},
			},
			Required: []string{"message"},
		},
	}, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "echo: " + args.Message}},
		}, nil
	})
	srv.AddTool(&mcp.Tool{
		Name:        "broken",
		Description: "Always fails",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "out of order"}},
		}, nil
	})

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	go func() {
		_ = srv.Run(context.Background(), serverTransport)
	}()

	cli := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
	session, err := cli.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return &mcpSession{session: session}
}

func TestMCPSessionListTools(t *testing.T) {
	session := startTestProvider(t)

	descriptors, err := session.ListTools(context.Background())

	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "broken", descriptors[0].Name)
	assert.Equal(t, "echo", descriptors[1].Name)
	echo := descriptors[1]
	assert.Equal(t, "Echoes the message back", echo.Description)
	assert.Equal(t, "object", echo.InputSchema["type"])
	assert.Contains(t, echo.InputSchema, "properties")
}

func TestMCPSessionCallTool(t *testing.T) {
	session := startTestProvider(t)

	content, err := session.CallTool(context.Background(), "echo", map[string]interface{}{"message": "hi"})

	require.NoError(t, err)
	assert.Equal(t, "echo: hi", content)
}

func TestMCPSessionCallToolProviderError(t *testing.T) {
	session := startTestProvider(t)

	_, err := session.CallTool(context.Background(), "broken", map[string]interface{}{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestNormalizeSchemaFallsBack(t *testing.T) {
	assert.Equal(t, defaultSchema(), normalizeSchema(nil))

	schema := normalizeSchema(map[string]interface{}{"type": "object"})
	assert.Equal(t, "object", schema["type"])
}
