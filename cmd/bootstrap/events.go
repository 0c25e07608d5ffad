package bootstrap

import (
	"context"
	"log/slog"

	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher connects to the broker when a URL is configured.
// Publishing is best-effort either way; a missing broker never blocks
// the booking path.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) events.Publisher {
	if cfg.AMQP.URL == "" {
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Error("failed to connect to message broker, events disabled", "error", err.Error())
		return events.NewNoopPublisher()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher
}
