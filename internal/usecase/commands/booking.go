package commands

import (
	"context"
	"errors"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	reqdto "escape-rooms-backend/internal/handler/dto/request"
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
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomInactive            = errs.New("room not active")
	ErrInvalidDate             = errs.New("invalid date format")
	ErrInvalidTime             = errs.New("invalid time format")
	ErrPastDate                = errs.New("date is in the past")
	ErrPartySizeOutOfRange     = errs.New("party size out of range")
	ErrInvalidCustomer         = errs.New("invalid customer details")
	ErrSlotNotFound            = errs.New("time slot not found")
	ErrSlotUnavailable         = errs.New("time slot not available")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrBusy                    = errs.New("resource busy, retry later")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	// CreateHold places a pending reservation on an active slot. The
	// hold's expiry is fixed at creation and never extended.
	CreateHold(ctx context.Context, req reqdto.CreateHoldRequest) (*queries.ReservationView, error)
}

type bookingCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	calc               reservation.PriceCalculator
	clock              clock.Clock
	cfg                config.BookingConfig
	publisher          events.Publisher
	cache              queries.AvailabilityCache
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	calc reservation.PriceCalculator,
	clk clock.Clock,
	cfg config.BookingConfig,
	publisher events.Publisher,
	cache queries.AvailabilityCache,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		calc:               calc,
		clock:              clk,
		cfg:                cfg,
		publisher:          publisher,
		cache:              cache,
	}
}

func (b *bookingCommandsImpl) CreateHold(ctx context.Context, req reqdto.CreateHoldRequest) (*queries.ReservationView, error) {
	now := b.clock.Now()

	date, at, err := parseSlotKey(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if date.Before(catalog.DateOf(now)) {
		return nil, ErrPastDate
	}
	if err := reservation.ValidatePartySize(req.NumPeople); err != nil {
		return nil, errs.Mark(err, ErrPartySizeOutOfRange)
	}
	customer, err := req.ToCustomer()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCustomer)
	}

	reads := b.uow.CommandReads()

	rm, err := reads.RoomByID(ctx, req.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rm.IsActive() {
		return nil, ErrRoomInactive
	}

	// Optimistic lookup; availability is re-checked under lock below
	candidate, err := reads.SlotByRoomDateTime(ctx, req.RoomID, date, at)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var reservationID uuid.UUID
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slot, err := tx.TimeSlots().FindForUpdate(ctx, candidate.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if !slot.IsAvailable() {
			return ErrSlotUnavailable
		}

		hold, err := reservation.NewHold(
			req.RoomID, slot.ID(), customer, req.NumPeople,
			b.calc, now, b.cfg.HoldDuration,
		)
		if err != nil {
			return errs.Mark(err, ErrPartySizeOutOfRange)
		}

		if err := tx.Reservations().Create(ctx, hold); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotUnavailable
			}
			return err
		}
		if err := tx.TimeSlots().UpdateStatus(ctx, slot.ID(), catalog.SlotStatusReserved); err != nil {
			return err
		}

		reservationID = hold.ID()
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	b.afterMutation(ctx, events.ReservationEvent{
		Type:          events.EventCreated,
		ReservationID: reservationID,
		RoomID:        req.RoomID,
		Status:        reservation.StatusPending.String(),
		OccurredAt:    now,
	})
	metrics.ReservationCreated()

	// Read-after-write through the read store
	view, err := b.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (b *bookingCommandsImpl) afterMutation(ctx context.Context, event events.ReservationEvent) {
	b.publisher.Publish(ctx, event)
	b.cache.Invalidate(ctx, event.RoomID)
}

func parseSlotKey(dateStr, timeStr string) (catalog.Date, catalog.TimeOfDay, error) {
	date, err := catalog.ParseDate(dateStr)
	if err != nil {
		return catalog.Date{}, catalog.TimeOfDay{}, errs.Mark(err, ErrInvalidDate)
	}
	at, err := catalog.ParseTimeOfDay(timeStr)
	if err != nil {
		return catalog.Date{}, catalog.TimeOfDay{}, errs.Mark(err, ErrInvalidTime)
	}
	return date, at, nil
}

// mapTxErr translates infra error kinds that escape a transaction into
// command sentinels. Lock timeouts become a retryable busy signal.
func mapTxErr(err error) error {
	switch {
	case isSentinel(err):
		return err
	case infra.IsKind(err, infra.KindLockTimeout):
		return errs.Mark(err, ErrBusy)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

var sentinels = []error{
	ErrRoomNotFound, ErrRoomInactive, ErrInvalidDate, ErrInvalidTime,
	ErrPastDate, ErrPartySizeOutOfRange, ErrInvalidCustomer,
	ErrSlotNotFound, ErrSlotUnavailable, ErrReservationNotFound,
	ErrUnknownStatus, ErrAlreadyInStatus, ErrSlotNoLongerAvailable,
	ErrReservationCancelled, ErrTooSoonSameDay, ErrCannotDecrease,
	ErrBusy,
}

func isSentinel(err error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
