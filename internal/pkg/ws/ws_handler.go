package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dvlin-dev/aichat/internal/pkg/pubsub"
	"github.com/dvlin-dev/aichat/internal/pkg/relay"
)

// WsHandlerImpl serves one websocket connection. All writes to the
// connection go through writeJSON so concurrent turns and pubsub
// forwarding never interleave frames.
type WsHandlerImpl struct {
	conn    WsConnection
	pubsub  pubsub.PubSub
	runner  TurnRunner
	catalog ToolCatalog
	writeMu sync.Mutex
}

func NewWsHandler(conn WsConnection, pubsub pubsub.PubSub, runner TurnRunner, catalog ToolCatalog) *WsHandlerImpl {
	return &WsHandlerImpl{conn: conn, pubsub: pubsub, runner: runner, catalog: catalog}
}

func (h *WsHandlerImpl) HandleConnection(ctx context.Context) error {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe, err := h.subscribeToEvents()
	if err != nil {
		slog.Error("WsHandler: subscribeToEvents failed", "error", err)
		return err
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		default:
			var msg WsMessage
			err := h.conn.ReadJSON(&msg)
			if err != nil {
				slog.Info("WsHandler: read ended", "error", err)
				cancel()
				wg.Wait()
				return err
			}
			slog.Info("WsHandler: received message", "event", msg.Event)

			wg.Add(1)
			go func(msg WsMessage) {
				defer wg.Done()
				if err := h.handleMessage(ctx, msg); err != nil {
					slog.Error("WsHandler: handleMessage failed", "event", msg.Event, "error", err)
				}
			}(msg)
		}
	}
}

func (h *WsHandlerImpl) handleMessage(ctx context.Context, msg WsMessage) error {
	switch msg.Event {
	case WsEventTypePing:
		return h.handlePing()
	case WsEventTypeChat:
		return h.handleChat(ctx, msg)
	default:
		return fmt.Errorf("unknown event: %s", msg.Event)
	}
}

func (h *WsHandlerImpl) handlePing() error {
	return h.writeJSON(OutboundMessage{Event: WsEventTypePong})
}

func (h *WsHandlerImpl) handleChat(ctx context.Context, msg WsMessage) error {
	var req ChatRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.writeJSON(OutboundMessage{Event: WsEventTypeError, Data: ErrorPayload{Error: "invalid chat payload"}})
		return fmt.Errorf("unmarshal chat request: %w", err)
	}
	if len(req.Messages) == 0 {
		h.writeJSON(OutboundMessage{Event: WsEventTypeError, Data: ErrorPayload{Error: "messages must not be empty"}})
		return fmt.Errorf("chat request has no messages")
	}

	catalog := req.Tools
	if len(catalog) == 0 && h.catalog != nil {
		catalog = h.catalog.ListTools(ctx)
	}

	out := newWsSink(h)
	_, err := h.runner.Run(ctx, req.Messages, catalog, out)
	return err
}

func (h *WsHandlerImpl) subscribeToEvents() (pubsub.CancelFunc, error) {
	return h.pubsub.Subscribe(relay.GetTurnDoneTopic(), h.handleTurnDone)
}

func (h *WsHandlerImpl) handleTurnDone(_ context.Context, message string) error {
	notification := relay.TurnNotification{}
	if err := json.Unmarshal([]byte(message), &notification); err != nil {
		return err
	}
	return h.writeJSON(OutboundMessage{
		Event: WsEventTypeTurnDone,
		Data:  notification,
	})
}

func (h *WsHandlerImpl) writeJSON(message interface{}) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return h.conn.WriteJSON(message)
}

// wsSink adapts one turn's stream events onto the shared websocket
// connection as text, error and done frames.
type wsSink struct {
	handler *WsHandlerImpl
	mu      sync.Mutex
	closed  bool
}

func newWsSink(handler *WsHandlerImpl) *wsSink {
	return &wsSink{handler: handler}
}

func (s *wsSink) EmitText(content string) {
	s.emit(OutboundMessage{Event: WsEventTypeText, Data: TextPayload{Content: content}})
}

func (s *wsSink) EmitError(message string) {
	s.emit(OutboundMessage{Event: WsEventTypeError, Data: ErrorPayload{Error: message}})
}

func (s *wsSink) EmitDone() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		slog.Warn("WsSink: done emitted on closed sink")
		return
	}
	s.closed = true
	s.mu.Unlock()
	if err := s.handler.writeJSON(OutboundMessage{Event: WsEventTypeDone}); err != nil {
		slog.Warn("WsSink: write done failed", "error", err)
	}
}

func (s *wsSink) emit(message OutboundMessage) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		slog.Warn("WsSink: emit on closed sink", "event", message.Event)
		return
	}
	s.mu.Unlock()
	if err := s.handler.writeJSON(message); err != nil {
		slog.Warn("WsSink: write failed", "event", message.Event, "error", err)
	}
}
