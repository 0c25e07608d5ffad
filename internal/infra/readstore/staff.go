package readstore

import (
	"context"

	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type StaffReadStore struct {
	db db.DBTX
}

func NewStaffReadStore(dbtx db.DBTX) *StaffReadStore {
	return &StaffReadStore{db: dbtx}
}

func (r *StaffReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StaffView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, role, is_active FROM staff_users WHERE id = $1`,
		pgconv.UUIDToPgtype(id))

	view, _, err := scanStaff(row, false)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff user", err)
	}
	return view, nil
}

func (r *StaffReadStore) FindByEmail(ctx context.Context, email string) (*queries.StaffView, string, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, role, is_active, password_hash FROM staff_users WHERE email = $1`,
		email)

	view, hash, err := scanStaff(row, true)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("staff user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find staff user by email", err)
	}
	return view, hash, nil
}

func scanStaff(row interface{ Scan(...any) error }, withHash bool) (*queries.StaffView, string, error) {
	var (
		id       pgtype.UUID
		email    string
		role     string
		isActive bool
		hash     string
	)

	dest := []any{&id, &email, &role, &isActive}
	if withHash {
		dest = append(dest, &hash)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, "", err
	}

	return &queries.StaffView{
		ID:       uuid.UUID(id.Bytes),
		Email:    email,
		Role:     role,
		IsActive: isActive,
	}, hash, nil
}
