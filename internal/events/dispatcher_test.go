package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/events"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var seen []string
	dispatcher.Subscribe(events.EventProductCreated, func(_ context.Context, event events.Event) error {
		seen = append(seen, event.EntityID)
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventProductCreated, "p1", nil)))
	assert.Equal(t, []string{"p1"}, seen)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(events.EventUserRegistered, func(context.Context, events.Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventProductDeleted, "p1", nil)))
	assert.False(t, called)
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(events.EventUserUpdated, func(context.Context, events.Event) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventUserUpdated, func(context.Context, events.Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventUserUpdated, "u1", nil)))
	assert.Equal(t, []string{"first", "second"}, order)
}
