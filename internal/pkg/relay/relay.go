// Package relay drives one conversation turn: it streams completion deltas
// from the model provider, forwards text to the downstream sink, and when
// the model requests tool invocations it dispatches them and re-enters the
// stream with the extended conversation until the turn terminates.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/sink"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
	"github.com/dvlin-dev/aichat/internal/pkg/utils"
)

type Relay struct {
	streamer   providers.ChatStreamer
	resolver   ToolResolver
	dispatcher ToolDispatcher
	directive  string
	maxRounds  int
	callbacks  TurnCallbacks
}

func NewRelay(
	streamer providers.ChatStreamer,
	resolver ToolResolver,
	dispatcher ToolDispatcher,
	directive string,
	maxRounds int,
	callbacks TurnCallbacks,
) *Relay {
	return &Relay{
		streamer:   streamer,
		resolver:   resolver,
		dispatcher: dispatcher,
		directive:  directive,
		maxRounds:  utils.GetOrDefault(maxRounds, DefaultMaxToolRounds),
		callbacks:  callbacks,
	}
}

// Run processes one turn and returns the full assistant text. The relay is
// safe for concurrent turns; all per-turn state lives on the turn.
func (r *Relay) Run(ctx context.Context, messages []providers.ChatMessage, catalog []tools.ToolDescriptor, out sink.Sink) (string, error) {
	t := &turn{
		relay:        r,
		id:           uuid.New().String(),
		sink:         out,
		stateMachine: newTurnStateMachine(),
		startedAt:    time.Now(),
	}
	return t.run(ctx, messages, catalog)
}

type turn struct {
	relay        *Relay
	id           string
	sink         sink.Sink
	stateMachine *fsm.FSM
	startedAt    time.Time
	fullText     strings.Builder
	toolCalls    int
}

func (t *turn) run(ctx context.Context, messages []providers.ChatMessage, catalog []tools.ToolDescriptor) (string, error) {
	conversation := make([]providers.ChatMessage, 0, len(messages)+1)
	if t.relay.directive != "" {
		conversation = append(conversation, providers.ChatMessage{Role: "system", Content: t.relay.directive})
	}
	conversation = append(conversation, messages...)

	for round := 0; ; round++ {
		if round >= t.relay.maxRounds {
			return t.fail(ctx, fmt.Errorf("turn exceeded %d tool call rounds", t.relay.maxRounds))
		}

		batch, err := t.streamOnce(ctx, conversation, catalog)
		if err != nil {
			return t.fail(ctx, err)
		}
		if len(batch) == 0 {
			break
		}

		t.transition(ctx, eventDispatch)
		results := t.dispatchBatch(ctx, batch)
		t.toolCalls += len(batch)
		conversation = appendToolResults(conversation, batch, results)
		t.transition(ctx, eventResume)
	}

	t.transition(ctx, eventFinish)
	t.sink.EmitDone()
	t.notifyDone()
	slog.Info("Relay: turn done", "turn_id", t.id, "tool_calls", t.toolCalls, "duration", time.Since(t.startedAt))
	return t.fullText.String(), nil
}

// streamOnce consumes one full upstream stream, relaying text deltas and
// collecting the tool-call batch, if any. Text arriving after tool-call
// fragments begin in the same wave is not relayed; the first batch wins.
func (t *turn) streamOnce(ctx context.Context, conversation []providers.ChatMessage, catalog []tools.ToolDescriptor) ([]tools.ToolCallRequest, error) {
	stream, err := t.relay.streamer.StreamChat(ctx, conversation, catalog)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	assembler := newToolCallAssembler()
	for stream.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		delta := stream.Current()
		for _, fragment := range delta.ToolCalls {
			assembler.add(fragment)
		}
		if delta.Content != "" && !assembler.active() {
			t.fullText.WriteString(delta.Content)
			t.sink.EmitText(delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return assembler.requests(), nil
}

// dispatchBatch invokes every call of the batch concurrently and joins on
// all of them. Results are indexed by request order, not completion order,
// so the extended conversation stays deterministic for the model.
func (t *turn) dispatchBatch(ctx context.Context, batch []tools.ToolCallRequest) []string {
	results := make([]string, len(batch))
	var wg sync.WaitGroup
	for i, call := range batch {
		t.sink.EmitText(fmt.Sprintf("\n> calling tool %s...\n", call.ToolName))
		t.notify(OnToolDispatch, call.ToolName)
		wg.Add(1)
		go func(i int, call tools.ToolCallRequest) {
			defer wg.Done()
			defer utils.RecoverPanic()
			results[i] = t.invokeOne(ctx, call)
		}(i, call)
	}
	wg.Wait()
	return results
}

// invokeOne resolves and invokes a single tool call. Resolution and
// invocation failures are folded into the returned content so the model can
// react to them instead of the turn crashing.
func (t *turn) invokeOne(ctx context.Context, call tools.ToolCallRequest) string {
	endpoint, ok := t.relay.resolver.Resolve(ctx, call.ToolName)
	if !ok {
		slog.Warn("Relay: no provider for tool", "turn_id", t.id, "tool", call.ToolName)
		return fmt.Sprintf("Tool %q is not available.", call.ToolName)
	}

	args := map[string]interface{}{}
	if call.ArgumentsJSON != "" {
		if err := json.Unmarshal([]byte(call.ArgumentsJSON), &args); err != nil {
			slog.Warn("Relay: invalid tool arguments", "turn_id", t.id, "tool", call.ToolName, "error", err)
			return fmt.Sprintf("Tool %q received invalid arguments: %v", call.ToolName, err)
		}
	}

	content, err := t.relay.dispatcher.Invoke(ctx, endpoint, call.ToolName, args)
	if err != nil {
		slog.Error("Relay: tool invocation failed", "turn_id", t.id, "tool", call.ToolName, "error", err)
		return fmt.Sprintf("Tool %q failed: %v", call.ToolName, err)
	}
	return content
}

func (t *turn) fail(ctx context.Context, err error) (string, error) {
	if errors.Is(err, context.Canceled) {
		// The client is gone; tear down without emitting further events.
		slog.Info("Relay: client disconnected", "turn_id", t.id)
		return t.fullText.String(), err
	}
	t.transition(ctx, eventFail)
	slog.Error("Relay: turn failed", "turn_id", t.id, "error", err)
	t.sink.EmitError(err.Error())
	t.sink.EmitDone()
	t.notify(OnTurnFail, err.Error())
	return t.fullText.String(), err
}

func (t *turn) transition(ctx context.Context, event string) {
	if err := t.stateMachine.Event(ctx, event); err != nil {
		slog.Error("Relay: state machine error", "turn_id", t.id, "event", event, "error", err)
	}
}

func (t *turn) notify(event TurnEventKey, payload string) {
	if callback, ok := t.relay.callbacks[event]; ok {
		callback(t.id, payload)
	}
}

func (t *turn) notifyDone() {
	notification := TurnNotification{
		TurnID:     t.id,
		Content:    t.fullText.String(),
		ToolCalls:  t.toolCalls,
		DurationMs: time.Since(t.startedAt).Milliseconds(),
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		slog.Error("Relay: failed to marshal turn notification", "turn_id", t.id, "error", err)
		return
	}
	t.notify(OnTurnDone, string(payload))
}

// appendToolResults extends the conversation with the assistant tool-call
// message followed by one tool-role message per result, in request order.
func appendToolResults(conversation []providers.ChatMessage, batch []tools.ToolCallRequest, results []string) []providers.ChatMessage {
	assistantCalls := make([]providers.ToolCall, len(batch))
	for i, call := range batch {
		assistantCalls[i] = providers.ToolCall{
			ID:           call.ID,
			FunctionName: call.ToolName,
			Args:         call.ArgumentsJSON,
		}
	}
	conversation = append(conversation, providers.ChatMessage{Role: "assistant", ToolCalls: assistantCalls})
	for i, call := range batch {
		conversation = append(conversation, providers.ChatMessage{
			Role:       "tool",
			Content:    results[i],
			ToolCallID: call.ID,
		})
	}
	return conversation
}

func newTurnStateMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateStreaming,
		fsm.Events{
			{Name: eventDispatch, Src: []string{StateStreaming}, Dst: StateDispatching},
			{Name: eventResume, Src: []string{StateDispatching}, Dst: StateStreaming},
			{Name: eventFinish, Src: []string{StateStreaming}, Dst: StateDone},
			{Name: eventFail, Src: []string{StateStreaming, StateDispatching}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("Relay: state transition", "from", e.Src, "to", e.Dst)
			},
		},
	)
}
