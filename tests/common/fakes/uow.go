// Package fakes provides in-memory stand-ins for the persistence layer
// so command logic can be tested without a database.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/domain/room"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationRow struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	TimeSlotID uuid.UUID
	Customer   reservation.Customer
	NumPeople  int
	TotalPrice reservation.Money
	Status     reservation.Status
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

type SlotRow struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Date   catalog.Date
	Time   catalog.TimeOfDay
	Status catalog.SlotStatus
}

// State is the shared in-memory store behind a fake unit of work.
type State struct {
	mu           sync.Mutex
	Rooms        map[uuid.UUID]*room.Room
	Slots        map[uuid.UUID]*SlotRow
	Reservations map[uuid.UUID]*ReservationRow

	// Error injection
	SlotLockErr        error
	ReservationLockErr error
	CreateErr          error
}

func NewState() *State {
	return &State{
		Rooms:        make(map[uuid.UUID]*room.Room),
		Slots:        make(map[uuid.UUID]*SlotRow),
		Reservations: make(map[uuid.UUID]*ReservationRow),
	}
}

func (s *State) AddRoom(id uuid.UUID, name string, active bool) {
	s.Rooms[id] = room.ReconstructRoom(
		id, name, name, "", "",
		decimal.NewFromInt(30), active, time.Time{},
	)
}

func (s *State) AddSlot(roomID uuid.UUID, date catalog.Date, at catalog.TimeOfDay, status catalog.SlotStatus) uuid.UUID {
	id := uuid.New()
	s.Slots[id] = &SlotRow{ID: id, RoomID: roomID, Date: date, Time: at, Status: status}
	return id
}

func (s *State) AddReservation(row *ReservationRow) {
	s.Reservations[row.ID] = row
}

// LockTimeoutErr builds the repository error a lock_timeout produces.
func LockTimeoutErr() error {
	return infra.WrapRepoErr("lock timeout", nil, infra.KindLockTimeout)
}

type UoW struct {
	State *State
}

func NewUoW(state *State) *UoW {
	return &UoW{State: state}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.State.mu.Lock()
	defer u.State.mu.Unlock()
	return fn(ctx, &tx{state: u.State})
}

func (u *UoW) CommandReads() shared.CommandReads {
	return &commandReads{state: u.State}
}

type tx struct {
	state *State
}

func (t *tx) Reservations() shared.ReservationRepository { return &reservationRepo{state: t.state} }
func (t *tx) TimeSlots() shared.TimeSlotRepository       { return &timeSlotRepo{state: t.state} }
func (t *tx) Staff() shared.StaffRepository              { return &staffRepo{} }
func (t *tx) Reads() shared.CommandReads                 { return &commandReads{state: t.state} }

type reservationRepo struct {
	state *State
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if r.state.CreateErr != nil {
		return r.state.CreateErr
	}
	for _, row := range r.state.Reservations {
		if row.TimeSlotID == res.TimeSlotID() && row.Status != reservation.StatusCancelled {
			return infra.WrapRepoErr("duplicate slot binding", nil, infra.KindDuplicateKey)
		}
	}
	r.state.Reservations[res.ID()] = &ReservationRow{
		ID:         res.ID(),
		RoomID:     res.RoomID(),
		TimeSlotID: res.TimeSlotID(),
		Customer:   res.Customer(),
		NumPeople:  res.NumPeople(),
		TotalPrice: res.TotalPrice(),
		Status:     res.Status(),
		CreatedAt:  res.CreatedAt(),
		ExpiresAt:  res.ExpiresAt(),
	}
	return nil
}

func (r *reservationRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if r.state.ReservationLockErr != nil {
		return nil, r.state.ReservationLockErr
	}
	row, ok := r.state.Reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservation.ReconstructReservation(
		row.ID, row.RoomID, row.TimeSlotID, row.Customer,
		row.NumPeople, row.TotalPrice, row.Status,
		row.CreatedAt, row.ExpiresAt,
	), nil
}

func (r *reservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.Status) error {
	row, ok := r.state.Reservations[id]
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	row.Status = status
	return nil
}

func (r *reservationRepo) UpdateSlot(_ context.Context, id, slotID uuid.UUID) error {
	row, ok := r.state.Reservations[id]
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	row.TimeSlotID = slotID
	return nil
}

func (r *reservationRepo) UpdatePartySize(_ context.Context, id uuid.UUID, numPeople int, totalPrice reservation.Money) error {
	row, ok := r.state.Reservations[id]
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	row.NumPeople = numPeople
	row.TotalPrice = totalPrice
	return nil
}

type timeSlotRepo struct {
	state *State
}

func (r *timeSlotRepo) slot(id uuid.UUID) (*catalog.TimeSlot, error) {
	row, ok := r.state.Slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("time slot not found", nil, infra.KindNotFound)
	}
	return catalog.ReconstructTimeSlot(row.ID, row.RoomID, row.Date, row.Time, row.Status, time.Time{}), nil
}

func (r *timeSlotRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*catalog.TimeSlot, error) {
	if r.state.SlotLockErr != nil {
		return nil, r.state.SlotLockErr
	}
	return r.slot(id)
}

func (r *timeSlotRepo) LockPair(_ context.Context, a, b uuid.UUID) (map[uuid.UUID]*catalog.TimeSlot, error) {
	if r.state.SlotLockErr != nil {
		return nil, r.state.SlotLockErr
	}
	out := make(map[uuid.UUID]*catalog.TimeSlot, 2)
	for _, id := range []uuid.UUID{a, b} {
		if slot, err := r.slot(id); err == nil {
			out[id] = slot
		}
	}
	return out, nil
}

func (r *timeSlotRepo) UpdateStatus(_ context.Context, id uuid.UUID, status catalog.SlotStatus) error {
	row, ok := r.state.Slots[id]
	if !ok {
		return infra.WrapRepoErr("time slot not found", nil, infra.KindNotFound)
	}
	row.Status = status
	return nil
}

func (r *timeSlotRepo) DeleteBetween(_ context.Context, from, to catalog.Date) (int64, error) {
	var deleted int64
	for id, row := range r.state.Slots {
		if !row.Date.Before(from) && !to.Before(row.Date) {
			delete(r.state.Slots, id)
			// Reservations cascade with their slot.
			for resID, res := range r.state.Reservations {
				if res.TimeSlotID == id {
					delete(r.state.Reservations, resID)
				}
			}
			deleted++
		}
	}
	return deleted, nil
}

func (r *timeSlotRepo) BulkCreate(_ context.Context, slots []*catalog.TimeSlot) (int64, error) {
	for _, s := range slots {
		r.state.Slots[s.ID()] = &SlotRow{
			ID:     s.ID(),
			RoomID: s.RoomID(),
			Date:   s.Date(),
			Time:   s.StartTime(),
			Status: s.Status(),
		}
	}
	return int64(len(slots)), nil
}

type staffRepo struct{}

func (*staffRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

type commandReads struct {
	state *State
}

func (r *commandReads) RoomByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.state.Rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (r *commandReads) SlotByRoomDateTime(_ context.Context, roomID uuid.UUID, date catalog.Date, at catalog.TimeOfDay) (*catalog.TimeSlot, error) {
	for _, row := range r.state.Slots {
		if row.RoomID == roomID && row.Date.Equal(date) && row.Time == at {
			return catalog.ReconstructTimeSlot(row.ID, row.RoomID, row.Date, row.Time, row.Status, time.Time{}), nil
		}
	}
	return nil, infra.WrapRepoErr("time slot not found", nil, infra.KindNotFound)
}

func (r *commandReads) ExpiredPendingIDs(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	type pair struct {
		id        uuid.UUID
		expiresAt time.Time
	}
	var expired []pair
	for _, row := range r.state.Reservations {
		if row.Status == reservation.StatusPending && now.After(row.ExpiresAt) {
			expired = append(expired, pair{id: row.ID, expiresAt: row.ExpiresAt})
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].expiresAt.Before(expired[j].expiresAt) })

	ids := make([]uuid.UUID, len(expired))
	for i, p := range expired {
		ids[i] = p.id
	}
	return ids, nil
}

func (r *commandReads) ActiveRoomIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, rm := range r.state.Rooms {
		if rm.IsActive() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// ViewQueries serves reservation views straight from the in-memory
// state, replacing the SQL read store in command tests.
type ViewQueries struct {
	state *State
}

func NewViewQueries(state *State) *ViewQueries { return &ViewQueries{state: state} }

func (q *ViewQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, ok := q.state.Reservations[id]
	if !ok {
		return nil, queries.ErrReservationNotFound
	}
	view := &queries.ReservationView{
		ID:            row.ID,
		RoomID:        row.RoomID,
		TimeSlotID:    row.TimeSlotID,
		CustomerName:  row.Customer.Name(),
		CustomerEmail: row.Customer.Email(),
		CustomerPhone: row.Customer.Phone(),
		NumPeople:     row.NumPeople,
		TotalPrice:    row.TotalPrice.String(),
		Status:        row.Status.String(),
		CreatedAt:     row.CreatedAt,
		ExpiresAt:     row.ExpiresAt,
	}
	if rm, ok := q.state.Rooms[row.RoomID]; ok {
		view.RoomName = rm.Name()
	}
	if slot, ok := q.state.Slots[row.TimeSlotID]; ok {
		view.SlotDate = slot.Date.String()
		view.SlotTime = slot.Time.String()
	}
	return view, nil
}

func (q *ViewQueries) List(context.Context, queries.ReservationFilters, queries.Page) (*queries.PagedReservations, error) {
	return &queries.PagedReservations{}, nil
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []events.ReservationEvent
}

func NewRecordingPublisher() *RecordingPublisher { return &RecordingPublisher{} }

func (p *RecordingPublisher) Publish(_ context.Context, event events.ReservationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

func (p *RecordingPublisher) Close() {}

// RecordingCache counts invalidations and never hits.
type RecordingCache struct {
	mu          sync.Mutex
	Invalidated []uuid.UUID
}

func NewRecordingCache() *RecordingCache { return &RecordingCache{} }

func (c *RecordingCache) Get(context.Context, uuid.UUID, catalog.Date, catalog.Date) ([]*queries.SlotView, bool) {
	return nil, false
}

func (c *RecordingCache) Set(context.Context, uuid.UUID, catalog.Date, catalog.Date, []*queries.SlotView) {
}

func (c *RecordingCache) Invalidate(_ context.Context, roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, roomID)
}
