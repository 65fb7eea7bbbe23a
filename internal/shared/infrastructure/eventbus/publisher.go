// Package eventbus carries domain events out of the engine, either
// in-process (local mode) or through RabbitMQ (worker mode).
package eventbus

import (
	"context"
	"encoding/json"

	"github.com/prepara/prepara/internal/shared/domain"
)

// Publisher sends serialized events with a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishDomainEvent marshals a domain event and publishes it under its
// routing key. Publication failures are the caller's to handle; the
// command handlers here log and continue, since a suggestion result is
// useful even when its notification is not delivered.
func PublishDomainEvent(ctx context.Context, pub Publisher, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, event.RoutingKey(), payload)
}
