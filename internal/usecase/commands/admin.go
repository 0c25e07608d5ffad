package commands

import (
	"context"
	"errors"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/infra/metrics"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/pkg/errs"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus         = errs.New("unknown reservation status")
	ErrAlreadyInStatus       = errs.New("reservation already in requested status")
	ErrSlotNoLongerAvailable = errs.New("slot no longer available")
	ErrReservationCancelled  = errs.New("reservation is cancelled")
	ErrTooSoonSameDay        = errs.New("same-day reschedule too close to slot time")
	ErrCannotDecrease        = errs.New("party size cannot be decreased")
)

type AdminCommands interface {
	// UpdateStatus moves a reservation through the status machine,
	// freeing or re-reserving its slot as a side effect.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.ReservationView, error)
	// Reschedule repoints a reservation at another slot of its room.
	Reschedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) (*queries.ReservationView, error)
	// UpdatePartySize grows the party and reprices the reservation.
	UpdatePartySize(ctx context.Context, id uuid.UUID, numPeople int) (*queries.ReservationView, error)
}

type adminCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	calc               reservation.PriceCalculator
	clock              clock.Clock
	cfg                config.BookingConfig
	publisher          events.Publisher
	cache              queries.AvailabilityCache
}

func NewAdminCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	calc reservation.PriceCalculator,
	clk clock.Clock,
	cfg config.BookingConfig,
	publisher events.Publisher,
	cache queries.AvailabilityCache,
) AdminCommands {
	return &adminCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		calc:               calc,
		clock:              clk,
		cfg:                cfg,
		publisher:          publisher,
		cache:              cache,
	}
}

func (a *adminCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*queries.ReservationView, error) {
	target, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownStatus)
	}

	var roomID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		roomID = res.RoomID()

		from := res.Status()
		if err := res.ChangeStatus(target); err != nil {
			return errs.Mark(err, sentinelForDomain(err))
		}

		// Slot side effects: cancelling frees the slot, leaving
		// cancelled re-reserves it only if nobody took it meanwhile.
		switch {
		case target == reservation.StatusCancelled:
			if _, err := tx.TimeSlots().FindForUpdate(ctx, res.TimeSlotID()); err != nil {
				return err
			}
			if err := tx.TimeSlots().UpdateStatus(ctx, res.TimeSlotID(), catalog.SlotStatusActive); err != nil {
				return err
			}
		case from == reservation.StatusCancelled:
			slot, err := tx.TimeSlots().FindForUpdate(ctx, res.TimeSlotID())
			if err != nil {
				return err
			}
			if !slot.IsAvailable() {
				return ErrSlotNoLongerAvailable
			}
			if err := tx.TimeSlots().UpdateStatus(ctx, slot.ID(), catalog.SlotStatusReserved); err != nil {
				return err
			}
		}
		// pending <-> paid touches no slot

		return tx.Reservations().UpdateStatus(ctx, id, target)
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	a.afterMutation(ctx, events.ReservationEvent{
		Type:          events.EventStatusChanged,
		ReservationID: id,
		RoomID:        roomID,
		Status:        target.String(),
		OccurredAt:    a.clock.Now(),
	})
	metrics.ReservationStatusChanged(target.String())

	return a.view(ctx, id)
}

func (a *adminCommandsImpl) Reschedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) (*queries.ReservationView, error) {
	now := a.clock.Now()

	newDate, newTime, err := parseSlotKey(date, timeOfDay)
	if err != nil {
		return nil, err
	}

	today := catalog.DateOf(now)
	if newDate.Before(today) {
		return nil, ErrPastDate
	}
	if newDate.Equal(today) {
		slotStart := newTime.At(newDate, now.Location())
		if slotStart.Before(now.Add(a.cfg.RescheduleLead)) {
			return nil, ErrTooSoonSameDay
		}
	}

	var (
		roomID  uuid.UUID
		changed bool
	)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if res.IsCancelled() {
			return ErrReservationCancelled
		}
		roomID = res.RoomID()

		// Transaction-snapshot lookup of the destination slot
		dest, err := tx.Reads().SlotByRoomDateTime(ctx, res.RoomID(), newDate, newTime)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if dest.ID() == res.TimeSlotID() {
			return nil // moving onto itself is a no-op
		}

		slots, err := tx.TimeSlots().LockPair(ctx, res.TimeSlotID(), dest.ID())
		if err != nil {
			return err
		}
		locked, ok := slots[dest.ID()]
		if !ok {
			return ErrSlotNotFound
		}
		if !locked.IsAvailable() {
			return ErrSlotUnavailable
		}

		if err := tx.TimeSlots().UpdateStatus(ctx, res.TimeSlotID(), catalog.SlotStatusActive); err != nil {
			return err
		}
		if err := tx.TimeSlots().UpdateStatus(ctx, dest.ID(), catalog.SlotStatusReserved); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateSlot(ctx, id, dest.ID()); err != nil {
			return err
		}

		changed = true
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	if changed {
		a.afterMutation(ctx, events.ReservationEvent{
			Type:          events.EventRescheduled,
			ReservationID: id,
			RoomID:        roomID,
			OccurredAt:    now,
		})
	}

	return a.view(ctx, id)
}

func (a *adminCommandsImpl) UpdatePartySize(ctx context.Context, id uuid.UUID, numPeople int) (*queries.ReservationView, error) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		changed, err := res.ChangePartySize(numPeople, a.calc)
		if err != nil {
			return errs.Mark(err, sentinelForDomain(err))
		}
		if !changed {
			return nil
		}
		return tx.Reservations().UpdatePartySize(ctx, id, res.NumPeople(), res.TotalPrice())
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	return a.view(ctx, id)
}

func (a *adminCommandsImpl) view(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := a.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (a *adminCommandsImpl) afterMutation(ctx context.Context, event events.ReservationEvent) {
	a.publisher.Publish(ctx, event)
	a.cache.Invalidate(ctx, event.RoomID)
}

func lockReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// sentinelForDomain maps domain validation errors onto the command
// sentinels the handler layer understands.
func sentinelForDomain(err error) error {
	switch {
	case errors.Is(err, reservation.ErrPartySizeOutOfRange):
		return ErrPartySizeOutOfRange
	case errors.Is(err, reservation.ErrCannotDecrease):
		return ErrCannotDecrease
	case errors.Is(err, reservation.ErrAlreadyInStatus):
		return ErrAlreadyInStatus
	case errors.Is(err, reservation.ErrUnknownStatus):
		return ErrUnknownStatus
	default:
		return ErrDatabaseOperationFailed
	}
}
