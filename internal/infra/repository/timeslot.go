package repository

import (
	"context"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type TimeSlotRepository struct {
	db db.DBTX
}

func NewTimeSlotRepository(dbtx db.DBTX) *TimeSlotRepository {
	return &TimeSlotRepository{db: dbtx}
}

const slotColumns = `id, room_id, date, time, status, created_at`

func scanSlot(row pgx.Row) (*catalog.TimeSlot, error) {
	var (
		id, roomID pgtype.UUID
		date       pgtype.Date
		at         pgtype.Time
		status     string
		createdAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &roomID, &date, &at, &status, &createdAt); err != nil {
		return nil, err
	}

	return catalog.ReconstructTimeSlot(
		uuid.UUID(id.Bytes),
		uuid.UUID(roomID.Bytes),
		catalog.DateOf(pgconv.DateFromPgtype(date)),
		catalog.TimeOfDayFromSeconds(pgconv.ClockFromPgtype(at)),
		catalog.SlotStatus(status),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *TimeSlotRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*catalog.TimeSlot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM time_slots WHERE id = $1 FOR UPDATE`,
		pgconv.UUIDToPgtype(id))

	slot, err := scanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("time slot not found", err, infra.KindNotFound)
		}
		return nil, classifyWriteErr("failed to lock time slot", err)
	}
	return slot, nil
}

// LockPair locks both slots in a single statement. ORDER BY id makes
// every transaction acquire the two row locks in the same order, which
// rules out lock-order deadlocks between concurrent reschedules.
func (r *TimeSlotRepository) LockPair(ctx context.Context, a, b uuid.UUID) (map[uuid.UUID]*catalog.TimeSlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+slotColumns+` FROM time_slots WHERE id IN ($1, $2) ORDER BY id FOR UPDATE`,
		pgconv.UUIDToPgtype(a), pgconv.UUIDToPgtype(b))
	if err != nil {
		return nil, classifyWriteErr("failed to lock time slot pair", err)
	}
	defer rows.Close()

	slots := make(map[uuid.UUID]*catalog.TimeSlot, 2)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, classifyWriteErr("failed to scan time slot", err)
		}
		slots[slot.ID()] = slot
	}
	if err := rows.Err(); err != nil {
		return nil, classifyWriteErr("failed to lock time slot pair", err)
	}
	return slots, nil
}

func (r *TimeSlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status catalog.SlotStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE time_slots SET status = $2 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status.String())
	if err != nil {
		return classifyWriteErr("failed to update slot status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("time slot not found", nil, infra.KindNotFound)
	}
	return nil
}

// DeleteBetween removes every slot in the date range regardless of
// status. Slot regeneration is destructive over its horizon.
func (r *TimeSlotRepository) DeleteBetween(ctx context.Context, from, to catalog.Date) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM time_slots WHERE date >= $1 AND date <= $2`,
		pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time()))
	if err != nil {
		return 0, classifyWriteErr("failed to delete time slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TimeSlotRepository) BulkCreate(ctx context.Context, slots []*catalog.TimeSlot) (int64, error) {
	rows := make([][]any, len(slots))
	for i, s := range slots {
		rows[i] = []any{
			pgconv.UUIDToPgtype(s.ID()),
			pgconv.UUIDToPgtype(s.RoomID()),
			pgconv.DateToPgtype(s.Date().Time()),
			pgconv.ClockToPgtype(s.StartTime().Seconds()),
			s.Status().String(),
		}
	}

	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"time_slots"},
		[]string{"id", "room_id", "date", "time", "status"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, classifyWriteErr("failed to bulk insert time slots", err)
	}
	return n, nil
}
