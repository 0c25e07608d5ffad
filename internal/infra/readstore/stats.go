package readstore

import (
	"context"
	"time"

	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/db"
	"escape-rooms-backend/internal/pkg/pgconv"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(dbtx db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: dbtx}
}

const statsSQL = `
SELECT
	count(*),
	count(*) FILTER (WHERE r.status = 'pending'),
	count(*) FILTER (WHERE r.status = 'paid'),
	count(*) FILTER (WHERE r.status = 'cancelled'),
	COALESCE(sum(r.total_price) FILTER (WHERE r.status = 'paid'), 0),
	count(*) FILTER (WHERE r.status <> 'cancelled' AND ts.date = $1),
	count(*) FILTER (WHERE r.status <> 'cancelled' AND ts.date >= $2 AND ts.date <= $3),
	count(*) FILTER (WHERE r.status <> 'cancelled' AND ts.date >= $4 AND ts.date <= $5)
FROM reservations r
JOIN time_slots ts ON ts.id = r.time_slot_id
`

// Aggregate computes the admin dashboard numbers in one round trip.
// The week runs Monday through Sunday; the month is the calendar month.
func (r *StatsReadStore) Aggregate(ctx context.Context, now time.Time) (*queries.StatsView, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := today.AddDate(0, 0, 1-weekday)
	weekEnd := weekStart.AddDate(0, 0, 6)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	row := r.db.QueryRow(ctx, statsSQL,
		pgconv.DateToPgtype(today),
		pgconv.DateToPgtype(weekStart), pgconv.DateToPgtype(weekEnd),
		pgconv.DateToPgtype(monthStart), pgconv.DateToPgtype(monthEnd))

	var (
		view    queries.StatsView
		revenue pgtype.Numeric
	)
	err := row.Scan(&view.TotalReservations, &view.Pending, &view.Paid, &view.Cancelled,
		&revenue, &view.Today, &view.ThisWeek, &view.ThisMonth)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate stats", err)
	}

	amount, err := pgconv.DecimalFromPgtype(revenue)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt revenue value", err)
	}
	view.Revenue = amount.StringFixed(2)

	return &view, nil
}
