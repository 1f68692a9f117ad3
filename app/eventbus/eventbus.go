// Package eventbus publishes domain events about competitions and participants.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
)

// CorrelationIDKey is the metadata key carrying the originating request id.
const CorrelationIDKey = "correlation_id"

// Publisher emits a JSON-encoded event on a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

type eventBus struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// New wraps a watermill publisher.
func New(publisher message.Publisher, logger *slog.Logger) Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventBus{publisher: publisher, logger: logger}
}

// NewInMemory returns a publisher backed by an in-process go channel. The
// channel is returned so callers can subscribe to it.
func NewInMemory(logger *slog.Logger) (Publisher, *gochannel.GoChannel) {
	if logger == nil {
		logger = slog.Default()
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return New(pubsub, logger), pubsub
}

// NewNATSPublisher returns a publisher writing to core NATS subjects.
func NewNATSPublisher(natsURL string, logger *slog.Logger) (Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: &wmnats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			JetStream: wmnats.JetStreamConfig{Disabled: true},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return New(publisher, logger), nil
}

func (b *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), body)
	msg.Metadata.Set("topic", topic)
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		msg.Metadata.Set(CorrelationIDKey, reqID)
	}
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	b.logger.DebugContext(ctx, "Event published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

func (b *eventBus) Close() error {
	return b.publisher.Close()
}
