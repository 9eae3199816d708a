package sink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

const doneFrame = "[DONE]"

type textFrame struct {
	Content string `json:"content"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// SSESink frames events as server-sent events (`data: <json>\n\n`) on a
// persistent response stream, terminated by a final `data: [DONE]\n\n`.
type SSESink struct {
	mu      sync.Mutex
	writer  http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// NewSSESink prepares the response for event streaming and returns the
// sink. Fails when the underlying writer cannot flush frames eagerly.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return &SSESink{writer: w, flusher: flusher}, nil
}

func (s *SSESink) EmitText(content string) {
	payload, err := json.Marshal(textFrame{Content: content})
	if err != nil {
		slog.Error("SSESink: failed to marshal text frame", "error", err)
		return
	}
	s.writeFrame(string(payload))
}

func (s *SSESink) EmitError(message string) {
	payload, err := json.Marshal(errorFrame{Error: message})
	if err != nil {
		slog.Error("SSESink: failed to marshal error frame", "error", err)
		return
	}
	s.writeFrame(string(payload))
}

// EmitDone writes the terminal marker and closes the sink. Repeated calls
// never produce a second terminal frame.
func (s *SSESink) EmitDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		slog.Warn("SSESink: done already emitted, dropping")
		return
	}
	fmt.Fprintf(s.writer, "data: %s\n\n", doneFrame)
	s.flusher.Flush()
	s.closed = true
}

func (s *SSESink) writeFrame(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		slog.Warn("SSESink: emit after close, dropping frame")
		return
	}
	fmt.Fprintf(s.writer, "data: %s\n\n", payload)
	s.flusher.Flush()
}
