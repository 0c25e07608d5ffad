package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"escape-rooms-backend/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ReservationEvent is published after a lifecycle mutation commits.
// Consumers get enough to notify or analyze without hitting the
// primary database.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventCreated       = "reservation.created"
	EventStatusChanged = "reservation.status_changed"
	EventRescheduled   = "reservation.rescheduled"
	EventExpired       = "reservation.expired"
)

// Publisher delivery is best-effort: the reservation is already
// committed by the time an event goes out, so a broker failure is
// logged and swallowed, never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent)
	Close()
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}

	// Durable topic exchange so events survive broker restarts
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ReservationEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal reservation event", "type", event.Type, "error", err)
		return
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		event.Type, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
	if err != nil {
		slog.Error("failed to publish reservation event",
			"type", event.Type,
			"reservation_id", event.ReservationID.String(),
			"error", err)
	}
}

func (p *AMQPPublisher) Close() {
	if err := p.channel.Close(); err != nil {
		slog.Warn("failed to close broker channel", "error", err)
	}
	if err := p.conn.Close(); err != nil {
		slog.Warn("failed to close broker connection", "error", err)
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (*NoopPublisher) Publish(context.Context, ReservationEvent) {}
func (*NoopPublisher) Close()                                    {}
