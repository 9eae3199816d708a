package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dvlin-dev/aichat/internal/pkg/utils"
)

// ChannelPubSub is an in-process PubSub backed by plain callback fan-out.
// It is the default when no broker is configured and the workhorse for
// tests. Subscriptions are keyed per subscriber so releasing one never
// touches its topic peers.
type ChannelPubSub struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[string]map[int]OnMessageCallback
	closed      bool
}

func NewChannelPubSub() *ChannelPubSub {
	return &ChannelPubSub{
		subscribers: make(map[string]map[int]OnMessageCallback),
	}
}

func (b *ChannelPubSub) Publish(ctx context.Context, topic string, message string, timeout time.Duration) error {
	b.mu.RLock()
	callbacks := make([]OnMessageCallback, 0, len(b.subscribers[topic]))
	for _, callback := range b.subscribers[topic] {
		callbacks = append(callbacks, callback)
	}
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		slog.Warn("ChannelPubSub: publish after close, dropping", "topic", topic)
		return nil
	}
	for _, callback := range callbacks {
		go func(callback OnMessageCallback) {
			defer utils.RecoverPanic()
			if err := callback(ctx, message); err != nil {
				slog.Error("ChannelPubSub: callback error", "topic", topic, "error", err)
			}
		}(callback)
	}
	return nil
}

func (b *ChannelPubSub) Subscribe(topic string, callback OnMessageCallback) (CancelFunc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[int]OnMessageCallback)
	}
	id := b.nextID
	b.nextID++
	b.subscribers[topic][id] = callback

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[topic], id)
		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}
	}, nil
}

func (b *ChannelPubSub) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]map[int]OnMessageCallback)
	b.closed = true
	return nil
}
