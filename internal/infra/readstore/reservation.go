package readstore

import (
	"context"
	"fmt"
	"strings"

	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewSQL = `
SELECT r.id, r.room_id, rm.name, r.time_slot_id, ts.date, ts.time,
       r.customer_name, r.customer_email, r.customer_phone,
       r.num_people, r.total_price, r.status, r.created_at, r.expires_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
JOIN time_slots ts ON ts.id = r.time_slot_id
`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewSQL+`WHERE r.id = $1`, pgconv.UUIDToPgtype(id))

	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

// Search builds the admin listing. Any row that fails to scan aborts
// the whole query; partial results would hide data problems.
func (r *ReservationReadStore) Search(ctx context.Context, filters queries.ReservationFilters, limit, offset int) ([]*queries.ReservationView, int64, error) {
	where, args := buildReservationFilters(filters)

	var total int64
	countSQL := `SELECT count(*) FROM reservations r JOIN time_slots ts ON ts.id = r.time_slot_id` + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reservations", err)
	}

	listSQL := fmt.Sprintf("%s%s ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d",
		reservationViewSQL, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to search reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to search reservations", err)
	}
	return views, total, nil
}

func buildReservationFilters(filters queries.ReservationFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filters.RoomID != nil {
		args = append(args, pgconv.UUIDToPgtype(*filters.RoomID))
		conds = append(conds, fmt.Sprintf("r.room_id = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(r.customer_name ILIKE $%d OR r.customer_email ILIKE $%d OR r.customer_phone ILIKE $%d)", n, n, n))
	}
	if filters.DateFrom != nil {
		args = append(args, pgconv.DateToPgtype(filters.DateFrom.Time()))
		conds = append(conds, fmt.Sprintf("ts.date >= $%d", len(args)))
	}
	if filters.DateTo != nil {
		args = append(args, pgconv.DateToPgtype(filters.DateTo.Time()))
		conds = append(conds, fmt.Sprintf("ts.date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		id, roomID, slotID   pgtype.UUID
		roomName             string
		slotDate             pgtype.Date
		slotTime             pgtype.Time
		name, email, phone   string
		numPeople            int32
		price                pgtype.Numeric
		status               string
		createdAt, expiresAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &roomID, &roomName, &slotID, &slotDate, &slotTime,
		&name, &email, &phone, &numPeople, &price, &status, &createdAt, &expiresAt)
	if err != nil {
		return nil, err
	}

	amount, err := pgconv.DecimalFromPgtype(price)
	if err != nil {
		return nil, err
	}

	return &queries.ReservationView{
		ID:            uuid.UUID(id.Bytes),
		RoomID:        uuid.UUID(roomID.Bytes),
		RoomName:      roomName,
		TimeSlotID:    uuid.UUID(slotID.Bytes),
		SlotDate:      pgconv.DateFromPgtype(slotDate).Format("2006-01-02"),
		SlotTime:      formatClock(slotTime),
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		NumPeople:     int(numPeople),
		TotalPrice:    amount.StringFixed(2),
		Status:        status,
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		ExpiresAt:     pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

func formatClock(t pgtype.Time) string {
	secs := pgconv.ClockFromPgtype(t)
	return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
}
