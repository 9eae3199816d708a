package relay

import "context"

const (
	StateStreaming   = "streaming"
	StateDispatching = "dispatching"
	StateDone        = "done"
	StateFailed      = "failed"
)

const (
	eventDispatch = "dispatch"
	eventResume   = "resume"
	eventFinish   = "finish"
	eventFail     = "fail"
)

// DefaultMaxToolRounds bounds the stream/dispatch loop so a runaway
// tool-call cycle cannot spin a turn forever.
const DefaultMaxToolRounds = 8

type TurnEventKey string

const (
	OnToolDispatch TurnEventKey = "onToolDispatch"
	OnTurnDone     TurnEventKey = "onTurnDone"
	OnTurnFail     TurnEventKey = "onTurnFail"
)

type TurnCallback func(turnID string, payload string)

type TurnCallbacks map[TurnEventKey]TurnCallback

// TurnNotification is the payload delivered to OnTurnDone callbacks and
// published to the turn-done topic.
type TurnNotification struct {
	TurnID     string `json:"turn_id"`
	Content    string `json:"content"`
	ToolCalls  int    `json:"tool_calls"`
	DurationMs int64  `json:"duration_ms"`
}

// GetTurnDoneTopic returns the pubsub topic carrying TurnNotification
// payloads for completed turns.
func GetTurnDoneTopic() string {
	return "conversation_turn_done"
}

// ToolResolver resolves a tool name to the provider endpoint implementing
// it.
type ToolResolver interface {
	Resolve(ctx context.Context, toolName string) (string, bool)
}

// ToolDispatcher issues a single tool call against a provider endpoint.
type ToolDispatcher interface {
	Invoke(ctx context.Context, endpoint string, toolName string, args map[string]interface{}) (string, error)
}
