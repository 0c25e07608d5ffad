package commands

import (
	"context"
	"log/slog"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/infra/metrics"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/errs"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/internal/usecase/shared"
)

var ErrInvalidHorizon = errs.New("invalid generation horizon")

type CatalogCommands interface {
	// GenerateSlots rebuilds the slot catalog for every active room
	// over the horizon. Destructive: existing slots in the range are
	// deleted first, reserved ones included.
	GenerateSlots(ctx context.Context, days int) (int64, error)
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cache queries.AvailabilityCache
}

func NewCatalogCommands(uow shared.UnitOfWork, clk clock.Clock, cache queries.AvailabilityCache) CatalogCommands {
	return &catalogCommandsImpl{
		uow:   uow,
		clock: clk,
		cache: cache,
	}
}

func (c *catalogCommandsImpl) GenerateSlots(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, ErrInvalidHorizon
	}

	roomIDs, err := c.uow.CommandReads().ActiveRoomIDs(ctx)
	if err != nil {
		return 0, mapTxErr(err)
	}

	today := catalog.DateOf(c.clock.Now())
	end := today.AddDays(days - 1)

	var slots []*catalog.TimeSlot
	for _, roomID := range roomIDs {
		for d := today; !end.Before(d); d = d.AddDays(1) {
			slots = append(slots, catalog.SlotsForDay(roomID, d)...)
		}
	}

	var created int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.TimeSlots().DeleteBetween(ctx, today, end)
		if err != nil {
			return err
		}
		created, err = tx.TimeSlots().BulkCreate(ctx, slots)
		if err != nil {
			return err
		}
		slog.Info("slot catalog regenerated",
			"rooms", len(roomIDs),
			"deleted", deleted,
			"created", created,
			"from", today.String(),
			"to", end.String())
		return nil
	})
	if err != nil {
		return 0, mapTxErr(err)
	}

	metrics.SlotsGenerated(created)
	for _, roomID := range roomIDs {
		c.cache.Invalidate(ctx, roomID)
	}
	return created, nil
}
