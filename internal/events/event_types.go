package events

import "time"

// EventType enumerates entity lifecycle events.
type EventType string

const (
	EventUserRegistered  EventType = "user.registered"
	EventUserUpdated     EventType = "user.updated"
	EventUserDeactivated EventType = "user.deactivated"

	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
)

// Event carries a lifecycle notification for a single entity.
type Event struct {
	Type       EventType
	EntityID   string
	Payload    map[string]any
	OccurredAt time.Time
}

// New builds an event stamped with the current time.
func New(eventType EventType, entityID string, payload map[string]any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}
