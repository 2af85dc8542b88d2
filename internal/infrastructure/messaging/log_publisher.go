// Package messaging holds the domain event sinks used by the dispatcher.
package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "event_log").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, evt domain.Event) error {
	p.log.Info().
		Str("event_id", evt.ID).
		Str("event_type", evt.Type).
		Str("aggregate_id", evt.AggregateID).
		Interface("data", evt.Data).
		Msg("domain event")
	return nil
}
