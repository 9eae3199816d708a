package relay

import (
	"sort"
	"strings"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

// toolCallAssembler reassembles tool-call fragments by call index.
// Fragments for the same index concatenate in arrival order. A fresh
// assembler is used per relay iteration.
type toolCallAssembler struct {
	parts map[int]*partialToolCall
}

type partialToolCall struct {
	id   strings.Builder
	name strings.Builder
	args strings.Builder
}

func newToolCallAssembler() *toolCallAssembler {
	return &toolCallAssembler{parts: map[int]*partialToolCall{}}
}

func (a *toolCallAssembler) add(fragment providers.ToolCallDelta) {
	part, ok := a.parts[fragment.Index]
	if !ok {
		part = &partialToolCall{}
		a.parts[fragment.Index] = part
	}
	part.id.WriteString(fragment.ID)
	part.name.WriteString(fragment.Name)
	part.args.WriteString(fragment.Arguments)
}

// active reports whether any tool-call fragment has arrived in the current
// delta wave.
func (a *toolCallAssembler) active() bool {
	return len(a.parts) > 0
}

// requests returns the reconstructed batch in call-index order.
func (a *toolCallAssembler) requests() []tools.ToolCallRequest {
	if len(a.parts) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(a.parts))
	for index := range a.parts {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	batch := make([]tools.ToolCallRequest, 0, len(indexes))
	for _, index := range indexes {
		part := a.parts[index]
		batch = append(batch, tools.ToolCallRequest{
			ID:            part.id.String(),
			ToolName:      part.name.String(),
			ArgumentsJSON: part.args.String(),
		})
	}
	return batch
}
