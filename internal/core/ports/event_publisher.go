package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// EventPublisher hands domain events to the messaging layer.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
