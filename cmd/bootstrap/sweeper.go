package bootstrap

import (
	"context"
	"log/slog"

	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/sweeper"
	"escape-rooms-backend/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(runSweeper),
)

func NewSweeper(cmds commands.SweepCommands, cfg config.Config, clk clock.Clock, logger *slog.Logger) *sweeper.Sweeper {
	return sweeper.New(cmds, cfg.Sweeper.Interval, clk, logger)
}

// runSweeper ties the background loop to the application lifecycle.
// The sweeper is still constructed when disabled so the admin sweep
// endpoint can run it on demand.
func runSweeper(lc fx.Lifecycle, sw *sweeper.Sweeper, cfg config.Config) {
	if !cfg.Sweeper.Enabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sw.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sw.Stop()
			return nil
		},
	})
}
