package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
	EventUserCreated    EventType = "user.created"
	EventUserUpdated    EventType = "user.updated"
	EventUserDeleted    EventType = "user.deleted"
)

// AllEventTypes lists every event the services publish.
var AllEventTypes = []EventType{
	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
}

// Event describes a successful mutation. It carries field names, never values.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ResourceID    string    `json:"resource_id"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent stamps a new event.
func NewEvent(eventType EventType, resourceID string, changed []string) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		ResourceID:    resourceID,
		ChangedFields: changed,
		Timestamp:     time.Now().UTC(),
	}
}
