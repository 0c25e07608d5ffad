package queries

import (
	"context"
	"time"
)

type StatsQueries interface {
	// Overview aggregates counts by status, paid revenue, and
	// today/this-week/this-month counts keyed on the slot date.
	Overview(ctx context.Context, now time.Time) (*StatsView, error)
}

type StatsReadStore interface {
	Aggregate(ctx context.Context, now time.Time) (*StatsView, error)
}

type statsQueriesImpl struct {
	readStore StatsReadStore
}

func NewStatsQueries(readStore StatsReadStore) StatsQueries {
	return &statsQueriesImpl{readStore: readStore}
}

func (q *statsQueriesImpl) Overview(ctx context.Context, now time.Time) (*StatsView, error) {
	return q.readStore.Aggregate(ctx, now)
}
