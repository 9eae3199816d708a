// Package pubsub provides an interface for a publish-subscribe messaging
// system, used here to fan out turn notifications.
//
// The PubSub interface defines methods for publishing messages to topics,
// subscribing to topics with callback functions, and closing the PubSub
// system gracefully. Implementations of this interface can integrate with
// various messaging platforms like Kafka, or stay entirely in-process.
package pubsub

import (
	"context"
	"time"
)

// OnMessageCallback is invoked for every message received on a subscribed
// topic. Returning an error stops the subscription.
type OnMessageCallback func(ctx context.Context, message string) error

// CancelFunc releases one subscription. It only removes the subscription it
// was returned for; other subscribers on the same topic are unaffected.
// Safe to call more than once.
type CancelFunc func()

// PubSub defines the interface for a publish-subscribe messaging system.
// Multiple subscribers may share a topic; each Subscribe call is an
// independent subscription released through its own CancelFunc.
type PubSub interface {
	// Publish sends a message to the specified topic, waiting at most
	// timeout for the operation to complete.
	Publish(ctx context.Context, topic string, message string, timeout time.Duration) error

	// Subscribe registers a callback to receive messages from the topic.
	// The subscription remains active until the returned CancelFunc is
	// called or the PubSub is closed.
	Subscribe(topic string, callback OnMessageCallback) (CancelFunc, error)

	// Close gracefully shuts down the PubSub system, releasing all
	// subscriptions and any allocated resources. The instance must not be
	// used afterwards.
	Close() error
}
