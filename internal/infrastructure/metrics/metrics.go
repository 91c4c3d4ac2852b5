package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors of the matching and notification core.
type Metrics struct {
	EventsHandled        *prometheus.CounterVec
	NotificationsCreated *prometheus.CounterVec
	MatchRuns            *prometheus.CounterVec
	MatchEmits           *prometheus.CounterVec
	EventDuration        *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. A nil reg skips
// registration, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: "notifier",
			Name:      "events_total",
			Help:      "Notification events handled, by action and outcome.",
		}, []string{"action", "outcome"}),
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: "notifier",
			Name:      "notifications_created_total",
			Help:      "Notification rows written, by type.",
		}, []string{"type"}),
		MatchRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: "matcher",
			Name:      "runs_total",
			Help:      "Matcher runs, by outcome.",
		}, []string{"outcome"}),
		MatchEmits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobboard",
			Subsystem: "matcher",
			Name:      "emits_total",
			Help:      "job_match events emitted by the matcher, by outcome.",
		}, []string{"outcome"}),
		EventDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobboard",
			Subsystem: "notifier",
			Name:      "event_duration_seconds",
			Help:      "Time spent handling one notification event.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.EventsHandled,
			m.NotificationsCreated,
			m.MatchRuns,
			m.MatchEmits,
			m.EventDuration,
		)
	}
	return m
}
