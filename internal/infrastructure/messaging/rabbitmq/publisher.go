package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
)

const (
	DefaultExchange = "marketplace.events"
	dialAttempts    = 5
	dialBackoff     = 2 * time.Second
)

// Publisher publishes domain events to a durable topic exchange with
// publisher confirms. The routing key is the event type.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      zerolog.Logger
}

// NewPublisher dials url, retrying briefly, and declares the exchange.
func NewPublisher(ctx context.Context, url, exchange string, log zerolog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	log = log.With().Str("component", "rabbitmq_publisher").Logger()

	var (
		conn *amqp.Connection
		err  error
	)
	for i := 1; i <= dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i).Msg("rabbitmq dial failed")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("rabbitmq publisher ready")
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// Publish sends evt and waits for the broker to confirm it.
func (p *Publisher) Publish(ctx context.Context, evt domain.Event) error {
	msg, err := toPublishing(evt)
	if err != nil {
		return err
	}

	dc, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, p.exchange, evt.Type, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", evt.Type, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: nacked by broker", evt.Type)
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (p *Publisher) Ping(context.Context) error {
	if p.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func toPublishing(evt domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Type:         evt.Type,
		Timestamp:    evt.OccurredAt,
		Body:         body,
	}, nil
}
