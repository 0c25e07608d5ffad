package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total holds successfully created",
		},
	)

	reservationStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_status_changes_total",
			Help: "Total reservation status transitions",
		},
		[]string{"to"},
	)

	sweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "Total expiry sweep runs",
		},
		[]string{"dry_run"},
	)

	sweepCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_cancelled_total",
			Help: "Total holds cancelled by the sweeper",
		},
	)

	sweepFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_failed_total",
			Help: "Total per-item failures during sweeps",
		},
	)

	sweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of expiry sweep runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	slotsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "time_slots_generated_total",
			Help: "Total time slots written by catalog regeneration",
		},
	)
)

func ReservationCreated() {
	reservationsCreated.Inc()
}

func ReservationStatusChanged(to string) {
	reservationStatusChanges.WithLabelValues(to).Inc()
}

func SweepCompleted(duration time.Duration, cancelled, failed int, dryRun bool) {
	label := "false"
	if dryRun {
		label = "true"
	}
	sweepRuns.WithLabelValues(label).Inc()
	sweepDuration.Observe(duration.Seconds())
	if !dryRun {
		sweepCancelled.Add(float64(cancelled))
		sweepFailed.Add(float64(failed))
	}
}

func SlotsGenerated(count int64) {
	slotsGenerated.Add(float64(count))
}
