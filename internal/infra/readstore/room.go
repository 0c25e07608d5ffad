package readstore

import (
	"context"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

const roomViewSQL = `
SELECT id, name, slug, short_description, full_description,
       base_price, is_active, created_at
FROM rooms
`

func (r *RoomReadStore) FindAll(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, roomViewSQL+`WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	return views, nil
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := r.db.QueryRow(ctx, roomViewSQL+`WHERE id = $1`, pgconv.UUIDToPgtype(id))
	return wrapRoomScan(scanRoomView(row))
}

func (r *RoomReadStore) FindBySlug(ctx context.Context, slug string) (*queries.RoomView, error) {
	row := r.db.QueryRow(ctx, roomViewSQL+`WHERE slug = $1`, slug)
	return wrapRoomScan(scanRoomView(row))
}

func wrapRoomScan(view *queries.RoomView, err error) (*queries.RoomView, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return view, nil
}

func (r *RoomReadStore) FindSlots(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, date, time, status
		 FROM time_slots
		 WHERE room_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date, time`,
		pgconv.UUIDToPgtype(roomID),
		pgconv.DateToPgtype(from.Time()),
		pgconv.DateToPgtype(to.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		var (
			id, rid pgtype.UUID
			date    pgtype.Date
			at      pgtype.Time
			status  string
		)
		if err := rows.Scan(&id, &rid, &date, &at, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		views = append(views, &queries.SlotView{
			ID:     uuid.UUID(id.Bytes),
			RoomID: uuid.UUID(rid.Bytes),
			Date:   pgconv.DateFromPgtype(date).Format("2006-01-02"),
			Time:   formatClock(at),
			Status: status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	return views, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var (
		id                  pgtype.UUID
		name, slug          string
		shortDesc, fullDesc string
		price               pgtype.Numeric
		isActive            bool
		createdAt           pgtype.Timestamptz
	)
	err := row.Scan(&id, &name, &slug, &shortDesc, &fullDesc, &price, &isActive, &createdAt)
	if err != nil {
		return nil, err
	}

	amount, err := pgconv.DecimalFromPgtype(price)
	if err != nil {
		return nil, err
	}

	return &queries.RoomView{
		ID:               uuid.UUID(id.Bytes),
		Name:             name,
		Slug:             slug,
		ShortDescription: shortDesc,
		FullDescription:  fullDesc,
		BasePrice:        amount.StringFixed(2),
		IsActive:         isActive,
		CreatedAt:        pgconv.TimeFromPgtype(createdAt),
	}, nil
}
