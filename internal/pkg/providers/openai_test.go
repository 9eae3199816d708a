package providers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

// sseBackend replays canned chat completion chunks.
func sseBackend(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
}

func newProvider(server *httptest.Server) *providers.OpenAIChatProvider {
	client := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL+"/"),
	)
	return providers.NewOpenAIChatProvider(client, "gpt-4o", 0.6)
}

func TestStreamChatTextDeltas(t *testing.T) {
	server := sseBackend(t, []string{
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"role":"assistant","content":"Hel"}}]}`,
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"lo"}}]}`,
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
	})
	defer server.Close()
	provider := newProvider(server)

	stream, err := provider.StreamChat(context.Background(), []providers.ChatMessage{
		{Role: "user", Content: "hi"},
	}, nil)
	require.NoError(t, err)
	defer stream.Close()

	text := ""
	for stream.Next() {
		text += stream.Current().Content
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, "Hello", text)
}

func TestStreamChatToolCallFragments(t *testing.T) {
	server := sseBackend(t, []string{
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_1","type":"function","function":{"name":"search","arguments":""}}]}}]}`,
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"query\":\"go\"}"}}]}}]}`,
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}]}`,
	})
	defer server.Close()
	provider := newProvider(server)

	catalog := []tools.ToolDescriptor{{
		Name:        "search",
		Description: "Searches the web",
		InputSchema: map[string]interface{}{"type": "object", "properties": map[string]interface{}{}},
	}}
	stream, err := provider.StreamChat(context.Background(), []providers.ChatMessage{
		{Role: "user", Content: "find go"},
	}, catalog)
	require.NoError(t, err)
	defer stream.Close()

	fragments := []providers.ToolCallDelta{}
	for stream.Next() {
		fragments = append(fragments, stream.Current().ToolCalls...)
	}
	require.NoError(t, stream.Err())

	require.Len(t, fragments, 2)
	assert.Equal(t, 0, fragments[0].Index)
	assert.Equal(t, "call_1", fragments[0].ID)
	assert.Equal(t, "search", fragments[0].Name)
	assert.Equal(t, `{"query":"go"}`, fragments[1].Arguments)
}

func TestStreamChatUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()
	provider := newProvider(server)

	stream, err := provider.StreamChat(context.Background(), []providers.ChatMessage{
		{Role: "user", Content: "hi"},
	}, nil)
	require.NoError(t, err)
	defer stream.Close()

	assert.False(t, stream.Next())
	var upstreamErr *providers.UpstreamError
	assert.ErrorAs(t, stream.Err(), &upstreamErr)
}

func TestStreamChatFullTurnConversation(t *testing.T) {
	// Assistant tool-call and tool-role messages must round-trip through
	// the request encoder without error.
	server := sseBackend(t, []string{
		`{"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"done"}}]}`,
	})
	defer server.Close()
	provider := newProvider(server)

	messages := []providers.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "weather?"},
		{Role: "assistant", ToolCalls: []providers.ToolCall{
			{ID: "call_1", FunctionName: "weather", Args: `{"city":"Taipei"}`},
		}},
		{Role: "tool", ToolCallID: "call_1", Content: "sunny"},
	}
	stream, err := provider.StreamChat(context.Background(), messages, nil)
	require.NoError(t, err)
	defer stream.Close()

	text := ""
	for stream.Next() {
		text += stream.Current().Content
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, "done", text)
}
