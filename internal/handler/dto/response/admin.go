package response

import (
	"time"

	"escape-rooms-backend/internal/sweeper"
	"escape-rooms-backend/internal/usecase/queries"
)

type StatsResponse struct {
	TotalReservations int64  `json:"totalReservations"`
	Pending           int64  `json:"pending"`
	Paid              int64  `json:"paid"`
	Cancelled         int64  `json:"cancelled"`
	Revenue           string `json:"revenue"`
	Today             int64  `json:"today"`
	ThisWeek          int64  `json:"thisWeek"`
	ThisMonth         int64  `json:"thisMonth"`
}

type SweepResponse struct {
	Scanned    int       `json:"scanned"`
	Cancelled  int       `json:"cancelled"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Errors     []string  `json:"errors,omitempty"`
	DryRun     bool      `json:"dryRun"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
}

func FromStatsView(rm *queries.StatsView) *StatsResponse {
	return &StatsResponse{
		TotalReservations: rm.TotalReservations,
		Pending:           rm.Pending,
		Paid:              rm.Paid,
		Cancelled:         rm.Cancelled,
		Revenue:           rm.Revenue,
		Today:             rm.Today,
		ThisWeek:          rm.ThisWeek,
		ThisMonth:         rm.ThisMonth,
	}
}

func FromSweepReport(report *sweeper.Report) *SweepResponse {
	return &SweepResponse{
		Scanned:    report.Scanned,
		Cancelled:  report.Cancelled,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		Errors:     report.Errors,
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt,
		DurationMs: report.Duration.Milliseconds(),
	}
}
