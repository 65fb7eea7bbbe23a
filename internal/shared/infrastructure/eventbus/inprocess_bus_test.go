package eventbus

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/shared/domain"
)

func TestInProcessBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to matching subscribers", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		var got []string
		bus.Subscribe("suggestion.generated", func(ctx context.Context, key string, payload []byte) {
			got = append(got, key)
		})

		require.NoError(t, bus.Publish(ctx, "suggestion.generated", []byte(`{}`)))
		require.NoError(t, bus.Publish(ctx, "weights.retrained", []byte(`{}`)))
		assert.Equal(t, []string{"suggestion.generated"}, got)
	})

	t.Run("hash subscribes to everything", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		var got []string
		bus.Subscribe("#", func(ctx context.Context, key string, payload []byte) {
			got = append(got, key)
		})

		require.NoError(t, bus.Publish(ctx, "feedback.recorded", []byte(`{}`)))
		require.NoError(t, bus.Publish(ctx, "weights.retrained", []byte(`{}`)))
		assert.Equal(t, []string{"feedback.recorded", "weights.retrained"}, got)
	})

	t.Run("no subscribers is fine", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		assert.NoError(t, bus.Publish(ctx, "suggestion.generated", []byte(`{}`)))
	})
}

func TestPublishDomainEvent(t *testing.T) {
	bus := NewInProcessBus(nil)

	var payload []byte
	bus.Subscribe("unit.tested", func(ctx context.Context, key string, p []byte) {
		payload = p
	})

	event := domain.NewBaseEvent(uuid.New(), "unit", "unit.tested")
	require.NoError(t, PublishDomainEvent(context.Background(), bus, event))
	require.NotNil(t, payload)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "unit.tested", decoded["routing_key"])
	assert.Equal(t, "unit", decoded["aggregate_type"])
}
