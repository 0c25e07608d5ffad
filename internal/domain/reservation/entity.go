package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPartySizeOutOfRange = errors.New("party size out of range")
	ErrCannotDecrease      = errors.New("party size cannot be decreased")
	ErrAlreadyInStatus     = errors.New("reservation already in requested status")
	ErrUnknownStatus       = errors.New("unknown reservation status")
)

const (
	MinPartySize = 1
	MaxPartySize = 10
)

func ValidatePartySize(n int) error {
	if n < MinPartySize || n > MaxPartySize {
		return ErrPartySizeOutOfRange
	}
	return nil
}

// Reservation holds one time slot for one party. The slot binding is
// exclusive among non-cancelled reservations; a cancelled reservation
// keeps its historical slot reference.
type Reservation struct {
	id         uuid.UUID
	roomID     uuid.UUID
	timeSlotID uuid.UUID
	customer   Customer
	numPeople  int
	totalPrice Money
	status     Status
	createdAt  time.Time
	expiresAt  time.Time
}

// NewHold creates a pending reservation whose expiry is fixed at
// creation time and never extended afterwards.
func NewHold(
	roomID, timeSlotID uuid.UUID,
	customer Customer,
	numPeople int,
	calc PriceCalculator,
	now time.Time,
	holdFor time.Duration,
) (*Reservation, error) {
	if err := ValidatePartySize(numPeople); err != nil {
		return nil, err
	}

	return &Reservation{
		id:         uuid.New(),
		roomID:     roomID,
		timeSlotID: timeSlotID,
		customer:   customer,
		numPeople:  numPeople,
		totalPrice: calc.TotalPrice(numPeople),
		status:     StatusPending,
		createdAt:  now,
		expiresAt:  now.Add(holdFor),
	}, nil
}

func ReconstructReservation(
	id, roomID, timeSlotID uuid.UUID,
	customer Customer,
	numPeople int,
	totalPrice Money,
	status Status,
	createdAt, expiresAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		roomID:     roomID,
		timeSlotID: timeSlotID,
		customer:   customer,
		numPeople:  numPeople,
		totalPrice: totalPrice,
		status:     status,
		createdAt:  createdAt,
		expiresAt:  expiresAt,
	}
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) RoomID() uuid.UUID     { return r.roomID }
func (r *Reservation) TimeSlotID() uuid.UUID { return r.timeSlotID }
func (r *Reservation) Customer() Customer    { return r.customer }
func (r *Reservation) NumPeople() int        { return r.numPeople }
func (r *Reservation) TotalPrice() Money     { return r.totalPrice }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) ExpiresAt() time.Time  { return r.expiresAt }

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// IsExpired reports whether a pending hold has outlived its expiry.
// The boundary is strict: a hold is live until now passes expires_at.
// Paid and cancelled reservations never expire.
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.status == StatusPending && now.After(r.expiresAt)
}

// ChangeStatus moves the reservation to the given status. Slot side
// effects of the move are the caller's responsibility.
func (r *Reservation) ChangeStatus(to Status) error {
	if !to.IsValid() {
		return ErrUnknownStatus
	}
	if r.status == to {
		return ErrAlreadyInStatus
	}
	r.status = to
	return nil
}

// ChangePartySize grows the party and reprices it. Decreases are
// rejected; an equal size is a no-op. The expiry is left untouched.
func (r *Reservation) ChangePartySize(n int, calc PriceCalculator) (changed bool, err error) {
	if err := ValidatePartySize(n); err != nil {
		return false, err
	}
	if n < r.numPeople {
		return false, ErrCannotDecrease
	}
	if n == r.numPeople {
		return false, nil
	}
	r.numPeople = n
	r.totalPrice = calc.TotalPrice(n)
	return true, nil
}

// Repoint moves the reservation onto another slot of the same room.
func (r *Reservation) Repoint(newSlotID uuid.UUID) {
	r.timeSlotID = newSlotID
}
