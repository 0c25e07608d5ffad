package commands

import (
	"context"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepCommands interface {
	// ListExpired returns the ids of pending holds whose expiry has
	// passed. The scan takes no locks; every id is re-verified under
	// lock by CancelExpired before anything changes.
	ListExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// CancelExpired cancels one expired hold and frees its slot. It
	// reports false when the hold was already gone, paid, or renewed
	// by the time the lock was taken.
	CancelExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

type sweepCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher events.Publisher
}

func NewSweepCommands(uow shared.UnitOfWork, publisher events.Publisher) SweepCommands {
	return &sweepCommandsImpl{
		uow:       uow,
		publisher: publisher,
	}
}

func (s *sweepCommandsImpl) ListExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	ids, err := s.uow.CommandReads().ExpiredPendingIDs(ctx, now)
	if err != nil {
		return nil, mapTxErr(err)
	}
	return ids, nil
}

func (s *sweepCommandsImpl) CancelExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var (
		cancelled bool
		roomID    uuid.UUID
	)
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil // already gone, nothing to do
			}
			return err
		}

		// The scan ran without locks; the hold may have been paid or
		// cancelled since. Only a still-expired pending hold moves.
		if !res.IsExpired(now) {
			return nil
		}

		if _, err := tx.TimeSlots().FindForUpdate(ctx, res.TimeSlotID()); err != nil {
			return err
		}
		if err := tx.TimeSlots().UpdateStatus(ctx, res.TimeSlotID(), catalog.SlotStatusActive); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, reservation.StatusCancelled); err != nil {
			return err
		}

		cancelled = true
		roomID = res.RoomID()
		return nil
	})
	if err != nil {
		return false, mapTxErr(err)
	}

	if cancelled {
		s.publisher.Publish(ctx, events.ReservationEvent{
			Type:          events.EventExpired,
			ReservationID: id,
			RoomID:        roomID,
			Status:        reservation.StatusCancelled.String(),
			OccurredAt:    now,
		})
	}
	return cancelled, nil
}
