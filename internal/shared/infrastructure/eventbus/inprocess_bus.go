package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Handler consumes one published event payload.
type Handler func(ctx context.Context, routingKey string, payload []byte)

// InProcessBus is an in-memory bus for local mode (no RabbitMQ).
// Events are delivered synchronously to subscribed handlers.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates an in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: map[string][]Handler{},
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key. The key "#" receives
// every event.
func (b *InProcessBus) Subscribe(routingKey string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], h)
}

// Publish dispatches the payload synchronously to matching handlers.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.handlers[routingKey])+len(b.handlers["#"]))
	matched = append(matched, b.handlers[routingKey]...)
	matched = append(matched, b.handlers["#"]...)
	b.mu.RUnlock()

	for _, h := range matched {
		h(ctx, routingKey, payload)
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(matched),
		"size", len(payload),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
