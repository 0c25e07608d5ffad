package shared

import (
	"context"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic.
	// Multi-row slot locks inside fn must be taken in ascending slot id
	// order; the transaction runs with a bounded lock_timeout.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: non-locking reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	TimeSlots() TimeSlotRepository
	Staff() StaffRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	SlotByRoomDateTime(ctx context.Context, roomID uuid.UUID, date catalog.Date, at catalog.TimeOfDay) (*catalog.TimeSlot, error)
	ExpiredPendingIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	ActiveRoomIDs(ctx context.Context) ([]uuid.UUID, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// FindForUpdate locks the reservation row for the transaction
	FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	UpdateSlot(ctx context.Context, id, slotID uuid.UUID) error
	UpdatePartySize(ctx context.Context, id uuid.UUID, numPeople int, totalPrice reservation.Money) error
}

type TimeSlotRepository interface {
	// FindForUpdate locks the slot row for the transaction
	FindForUpdate(ctx context.Context, id uuid.UUID) (*catalog.TimeSlot, error)
	// LockPair locks both slots in one statement ordered by ascending id
	LockPair(ctx context.Context, a, b uuid.UUID) (map[uuid.UUID]*catalog.TimeSlot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status catalog.SlotStatus) error
	DeleteBetween(ctx context.Context, from, to catalog.Date) (int64, error)
	BulkCreate(ctx context.Context, slots []*catalog.TimeSlot) (int64, error)
}

type StaffRepository interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
