// Command sweep runs a single expired-hold sweep and exits. Meant for
// cron jobs and operators; the server runs the same sweep on a ticker.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/infra/uow"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/sweeper"
	"escape-rooms-backend/internal/usecase/commands"

	"github.com/joho/godotenv"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report expired holds without cancelling them")
	timeout := flag.Duration("timeout", time.Minute, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	publisher := events.Publisher(events.NewNoopPublisher())
	if cfg.AMQP.URL != "" {
		if amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange); err == nil {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		} else {
			logger.Warn("broker unavailable, events disabled", "error", err.Error())
		}
	}

	cmds := commands.NewSweepCommands(
		uow.NewPostgresUoW(pool, cfg.Booking.LockTimeout),
		publisher,
	)
	sw := sweeper.New(cmds, cfg.Sweeper.Interval, clock.NewRealClock(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := sw.RunOnce(ctx, *dryRun)
	if err != nil {
		logger.Error("sweep failed", "error", err.Error())
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	os.Stdout.Write(append(out, '\n'))

	if report.Failed > 0 {
		os.Exit(2)
	}
}
