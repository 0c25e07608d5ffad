package queries

import (
	"context"
	"log/slog"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomQueries interface {
	ListRooms(ctx context.Context) ([]*RoomView, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error)
	GetRoomBySlug(ctx context.Context, slug string) (*RoomView, error)
	// ListAvailability is a snapshot read. A listed slot can be taken
	// by the time a hold is attempted; creation re-checks under lock.
	ListAvailability(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*SlotView, error)
}

type RoomReadStore interface {
	FindAll(ctx context.Context) ([]*RoomView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindBySlug(ctx context.Context, slug string) (*RoomView, error)
	FindSlots(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*SlotView, error)
}

// AvailabilityCache fronts the slot listing with a short-TTL cache.
// Both sides are best-effort: a cache failure falls through to the
// database and is only logged.
type AvailabilityCache interface {
	Get(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*SlotView, bool)
	Set(ctx context.Context, roomID uuid.UUID, from, to catalog.Date, slots []*SlotView)
	Invalidate(ctx context.Context, roomID uuid.UUID)
}

type roomQueriesImpl struct {
	readStore RoomReadStore
	cache     AvailabilityCache
}

func NewRoomQueries(readStore RoomReadStore, cache AvailabilityCache) RoomQueries {
	return &roomQueriesImpl{
		readStore: readStore,
		cache:     cache,
	}
}

func (q *roomQueriesImpl) ListRooms(ctx context.Context) ([]*RoomView, error) {
	return q.readStore.FindAll(ctx)
}

func (q *roomQueriesImpl) GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) GetRoomBySlug(ctx context.Context, slug string) (*RoomView, error) {
	view, err := q.readStore.FindBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) ListAvailability(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*SlotView, error) {
	if slots, ok := q.cache.Get(ctx, roomID, from, to); ok {
		return slots, nil
	}

	slots, err := q.readStore.FindSlots(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	q.cache.Set(ctx, roomID, from, to, slots)
	slog.Debug("availability cache refreshed", "room_id", roomID.String(), "slots", len(slots))
	return slots, nil
}
