package eventbus

import (
	"context"
	"log/slog"

	"github.com/akaash02/TaskMaster/internal/shared/domain"
)

// Publisher sends encoded events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishEvent encodes event and publishes it under its routing key.
func PublishEvent(ctx context.Context, publisher Publisher, event domain.DomainEvent) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	return publisher.Publish(ctx, event.RoutingKey(), payload)
}

// NoopPublisher drops every message. Used when no broker is configured and
// in tests.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message but doesn't actually publish.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}
