package repository

import (
	"context"

	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const createReservationSQL = `
INSERT INTO reservations (
	id, room_id, time_slot_id, customer_name, customer_email,
	customer_phone, num_people, total_price, status, created_at, expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	price, err := pgconv.DecimalToPgtype(res.TotalPrice().Amount())
	if err != nil {
		return infra.WrapRepoErr("invalid reservation price", err)
	}

	_, err = r.db.Exec(ctx, createReservationSQL,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.RoomID()),
		pgconv.UUIDToPgtype(res.TimeSlotID()),
		res.Customer().Name(),
		res.Customer().Email(),
		res.Customer().Phone(),
		int32(res.NumPeople()),
		price,
		res.Status().String(),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.ExpiresAt()),
	)
	if err != nil {
		return classifyWriteErr("failed to create reservation", err)
	}
	return nil
}

const findReservationForUpdateSQL = `
SELECT id, room_id, time_slot_id, customer_name, customer_email,
       customer_phone, num_people, total_price, status, created_at, expires_at
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (r *ReservationRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, findReservationForUpdateSQL, pgconv.UUIDToPgtype(id))

	var (
		resID, roomID, slotID pgtype.UUID
		name, email, phone    string
		numPeople             int32
		price                 pgtype.Numeric
		status                string
		createdAt, expiresAt  pgtype.Timestamptz
	)
	err := row.Scan(&resID, &roomID, &slotID, &name, &email, &phone,
		&numPeople, &price, &status, &createdAt, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, classifyWriteErr("failed to lock reservation", err)
	}

	amount, err := pgconv.DecimalFromPgtype(price)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt reservation price", err)
	}
	money, err := reservation.NewMoney(amount)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt reservation price", err)
	}

	return reservation.ReconstructReservation(
		uuid.UUID(resID.Bytes),
		uuid.UUID(roomID.Bytes),
		uuid.UUID(slotID.Bytes),
		reservation.ReconstructCustomer(name, email, phone),
		int(numPeople),
		money,
		reservation.Status(status),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(expiresAt),
	), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status.String())
	if err != nil {
		return classifyWriteErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) UpdateSlot(ctx context.Context, id, slotID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET time_slot_id = $2 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), pgconv.UUIDToPgtype(slotID))
	if err != nil {
		return classifyWriteErr("failed to move reservation slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdatePartySize persists the size and the recomputed price together.
func (r *ReservationRepository) UpdatePartySize(ctx context.Context, id uuid.UUID, numPeople int, totalPrice reservation.Money) error {
	price, err := pgconv.DecimalToPgtype(totalPrice.Amount())
	if err != nil {
		return infra.WrapRepoErr("invalid reservation price", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET num_people = $2, total_price = $3 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), int32(numPeople), price)
	if err != nil {
		return classifyWriteErr("failed to update party size", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
