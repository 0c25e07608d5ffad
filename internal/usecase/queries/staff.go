package queries

import (
	"context"

	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrStaffNotFound = errs.New("staff user not found")
	ErrStaffInactive = errs.New("staff user inactive")
)

type StaffQueries interface {
	GetCurrentStaff(ctx context.Context, staffID uuid.UUID) (*StaffView, error)
}

type StaffReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StaffView, error)
	// FindByEmail also returns the password hash for credential checks
	FindByEmail(ctx context.Context, email string) (*StaffView, string, error)
}

type staffQueriesImpl struct {
	readStore StaffReadStore
}

func NewStaffQueries(readStore StaffReadStore) StaffQueries {
	return &staffQueriesImpl{readStore: readStore}
}

func (q *staffQueriesImpl) GetCurrentStaff(ctx context.Context, staffID uuid.UUID) (*StaffView, error) {
	view, err := q.readStore.FindByID(ctx, staffID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if !view.IsActive {
		return nil, ErrStaffInactive
	}
	return view, nil
}
