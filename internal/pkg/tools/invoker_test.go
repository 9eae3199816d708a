package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvokeReturnsToolResult(t *testing.T) {
	session := &fakeSession{callResult: "42 degrees"}
	invoker := NewInvoker(fakeDialer(map[string]*fakeSession{"ep": session}))

	content, err := invoker.Invoke(context.Background(), "ep", "weather", map[string]interface{}{"city": "Taipei"})

	assert.NoError(t, err)
	assert.Equal(t, "42 degrees", content)
	assert.Equal(t, "weather", session.lastTool)
	assert.Equal(t, map[string]interface{}{"city": "Taipei"}, session.lastArgs)
	assert.True(t, session.closed)
}

func TestInvokeWrapsConnectFailure(t *testing.T) {
	invoker := NewInvoker(fakeDialer(nil))

	_, err := invoker.Invoke(context.Background(), "ep-down", "weather", nil)

	var toolErr *ToolError
	assert.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "weather", toolErr.Tool)
}

func TestInvokeWrapsCallFailure(t *testing.T) {
	session := &fakeSession{callErr: errors.New("boom")}
	invoker := NewInvoker(fakeDialer(map[string]*fakeSession{"ep": session}))

	_, err := invoker.Invoke(context.Background(), "ep", "weather", nil)

	var toolErr *ToolError
	assert.ErrorAs(t, err, &toolErr)
	assert.ErrorContains(t, err, "boom")
	assert.True(t, session.closed)
}
