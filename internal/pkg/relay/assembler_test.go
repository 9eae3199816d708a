package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
)

func TestAssemblerEmpty(t *testing.T) {
	a := newToolCallAssembler()
	assert.False(t, a.active())
	assert.Nil(t, a.requests())
}

func TestAssemblerConcatenatesFragments(t *testing.T) {
	a := newToolCallAssembler()
	a.add(providers.ToolCallDelta{Index: 0, ID: "call_1", Name: "search"})
	a.add(providers.ToolCallDelta{Index: 0, Arguments: `{"query":`})
	a.add(providers.ToolCallDelta{Index: 0, Arguments: `"weather"}`})

	assert.True(t, a.active())
	batch := a.requests()
	assert.Len(t, batch, 1)
	assert.Equal(t, "call_1", batch[0].ID)
	assert.Equal(t, "search", batch[0].ToolName)
	assert.Equal(t, `{"query":"weather"}`, batch[0].ArgumentsJSON)
}

func TestAssemblerOrdersByIndex(t *testing.T) {
	a := newToolCallAssembler()
	a.add(providers.ToolCallDelta{Index: 2, ID: "call_c", Name: "gamma", Arguments: "{}"})
	a.add(providers.ToolCallDelta{Index: 0, ID: "call_a", Name: "alpha", Arguments: "{}"})
	a.add(providers.ToolCallDelta{Index: 1, ID: "call_b", Name: "beta", Arguments: "{}"})

	batch := a.requests()
	assert.Len(t, batch, 3)
	assert.Equal(t, "alpha", batch[0].ToolName)
	assert.Equal(t, "beta", batch[1].ToolName)
	assert.Equal(t, "gamma", batch[2].ToolName)
}

func TestAssemblerInterleavedCalls(t *testing.T) {
	a := newToolCallAssembler()
	a.add(providers.ToolCallDelta{Index: 0, ID: "call_a", Name: "alpha"})
	a.add(providers.ToolCallDelta{Index: 1, ID: "call_b", Name: "beta"})
	a.add(providers.ToolCallDelta{Index: 0, Arguments: `{"a":1}`})
	a.add(providers.ToolCallDelta{Index: 1, Arguments: `{"b":2}`})

	batch := a.requests()
	assert.Len(t, batch, 2)
	assert.Equal(t, `{"a":1}`, batch[0].ArgumentsJSON)
	assert.Equal(t, `{"b":2}`, batch[1].ArgumentsJSON)
}
