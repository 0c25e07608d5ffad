package repository

import (
	"context"
	"time"

	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type StaffRepository struct {
	db db.DBTX
}

func NewStaffRepository(dbtx db.DBTX) *StaffRepository {
	return &StaffRepository{db: dbtx}
}

func (r *StaffRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE staff_users SET last_login_at = $2 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), pgconv.TimeToPgtype(at))
	if err != nil {
		return classifyWriteErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("staff user not found", nil, infra.KindNotFound)
	}
	return nil
}
