package components

import (
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewTieredPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
	func(cfg config.Config) config.SlotsConfig {
		return cfg.Slots
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewAdminCommands,
		commands.NewCatalogCommands,
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomQueries,
		queries.NewStatsQueries,
		queries.NewStaffQueries,
	),
)
