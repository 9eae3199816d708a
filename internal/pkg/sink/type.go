// Package sink provides the wire-level framing that pushes stream events
// to a connected client over a long-lived response stream.
package sink

// Sink receives the client-visible events of one turn. EmitDone is safe to
// call more than once; only the first call produces a terminal frame.
// Emitting on a closed sink is a logged no-op, never a crash.
type Sink interface {
	EmitText(content string)
	EmitError(message string)
	EmitDone()
}
