package queries

import (
	"context"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// ReservationFilters narrows the admin listing. Zero values mean no
// filter on that dimension.
type ReservationFilters struct {
	Status   string
	RoomID   *uuid.UUID
	Search   string
	DateFrom *catalog.Date
	DateTo   *catalog.Date
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filters ReservationFilters, page Page) (*PagedReservations, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// Search runs newest-first and fails outright on any scan error;
	// it never substitutes placeholder rows for unreadable data.
	Search(ctx context.Context, filters ReservationFilters, limit, offset int) ([]*ReservationView, int64, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, filters ReservationFilters, page Page) (*PagedReservations, error) {
	items, total, err := q.readStore.Search(ctx, filters, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &PagedReservations{
		Items:   items,
		Total:   total,
		Page:    page.Number,
		PerPage: page.PerPage,
	}, nil
}
