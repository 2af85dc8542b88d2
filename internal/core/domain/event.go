package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered       = "user.registered"
	EventProjectCreated       = "project.created"
	EventProjectStatusChanged = "project.status_changed"
)

// Event is a domain fact published to downstream consumers.
type Event struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data,omitempty"`
}

func NewEvent(eventType, aggregateID string, data map[string]any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}
