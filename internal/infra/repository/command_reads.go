package repository

import (
	"context"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/room"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the non-locking lookups commands run before or
// outside their transactions. Inside a transaction the same queries
// see the transaction's snapshot.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, slug, short_description, full_description,
		        base_price, is_active, created_at
		 FROM rooms WHERE id = $1`,
		pgconv.UUIDToPgtype(id))

	var (
		roomID     pgtype.UUID
		name, slug string
		shortDesc  string
		fullDesc   string
		basePrice  pgtype.Numeric
		isActive   bool
		createdAt  pgtype.Timestamptz
	)
	if err := row.Scan(&roomID, &name, &slug, &shortDesc, &fullDesc, &basePrice, &isActive, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	price, err := pgconv.DecimalFromPgtype(basePrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room base price", err)
	}

	return room.ReconstructRoom(
		uuid.UUID(roomID.Bytes),
		name, slug, shortDesc, fullDesc,
		price,
		isActive,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *CommandReads) SlotByRoomDateTime(ctx context.Context, roomID uuid.UUID, date catalog.Date, at catalog.TimeOfDay) (*catalog.TimeSlot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM time_slots WHERE room_id = $1 AND date = $2 AND time = $3`,
		pgconv.UUIDToPgtype(roomID),
		pgconv.DateToPgtype(date.Time()),
		pgconv.ClockToPgtype(at.Seconds()))

	slot, err := scanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("time slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find time slot", err)
	}
	return slot, nil
}

// ExpiredPendingIDs is the sweeper's scan query. It takes no locks;
// each id is re-verified under lock before anything is cancelled.
func (r *CommandReads) ExpiredPendingIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM reservations WHERE status = 'pending' AND expires_at < $1 ORDER BY expires_at`,
		pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired holds", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation id", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list expired holds", err)
	}
	return ids, nil
}

func (r *CommandReads) ActiveRoomIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM rooms WHERE is_active ORDER BY created_at`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active rooms", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room id", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list active rooms", err)
	}
	return ids, nil
}
