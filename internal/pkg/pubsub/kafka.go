package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dvlin-dev/aichat/config"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultPartition      = 0
	DefaultReaderMaxBytes = 10 * 1024 * 1024 // 10MB
)

// KafkaPubSub runs one reader goroutine per subscription, so several
// subscribers can follow the same topic independently.
type KafkaPubSub struct {
	writer             *kafka.Writer
	nextID             int
	subscriptions      map[int]context.CancelFunc
	subscriptionsMutex sync.Mutex
}

func NewKafkaPubSub() *KafkaPubSub {
	return &KafkaPubSub{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(config.Config.Kafka.Address),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		subscriptions: make(map[int]context.CancelFunc),
	}
}

func (k *KafkaPubSub) Publish(ctx context.Context, topic string, message string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := k.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: []byte(message),
	})
	if err != nil {
		slog.Error("KafkaPubSub: failed to write message", "error", err)
		return err
	}
	return nil
}

func (k *KafkaPubSub) Subscribe(topic string, callback OnMessageCallback) (CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	k.subscriptionsMutex.Lock()
	id := k.nextID
	k.nextID++
	k.subscriptions[id] = cancel
	k.subscriptionsMutex.Unlock()

	go func() {
		r := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  []string{config.Config.Kafka.Address},
			Topic:    topic,
			MaxBytes: DefaultReaderMaxBytes,
		})
		r.SetOffset(kafka.LastOffset)
		defer r.Close()

		for {
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					slog.Info("KafkaPubSub: subscription to topic canceled", "topic", topic)
					return
				}
				slog.Error("KafkaPubSub: failed to read message", "error", err)
				return
			}
			if err := callback(ctx, string(m.Value)); err != nil {
				slog.Error("KafkaPubSub: callback error", "error", err)
				return
			}
		}
	}()

	return func() {
		k.subscriptionsMutex.Lock()
		if cancel, ok := k.subscriptions[id]; ok {
			cancel()
			delete(k.subscriptions, id)
		}
		k.subscriptionsMutex.Unlock()
	}, nil
}

func (k *KafkaPubSub) Close() error {
	k.subscriptionsMutex.Lock()
	for _, cancel := range k.subscriptions {
		cancel()
	}
	k.subscriptions = make(map[int]context.CancelFunc)
	k.subscriptionsMutex.Unlock()

	return k.writer.Close()
}
