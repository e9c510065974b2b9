package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CampaignsDispatched counts campaigns that finished a dispatch pass,
	// labeled by whether the conditional commit won.
	CampaignsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailpulse_campaigns_dispatched_total",
			Help: "Campaigns that completed a dispatch pass",
		},
		[]string{"outcome"}, // committed or lost_race
	)

	// EmailsSent counts individual provider calls by result.
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailpulse_emails_total",
			Help: "Per-recipient delivery attempts",
		},
		[]string{"status"}, // sent or failed
	)

	// DispatchDuration tracks how long a full campaign pass takes.
	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailpulse_dispatch_duration_seconds",
			Help:    "Duration of a full campaign dispatch pass in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)

// RecordDispatch records the outcome and duration of one campaign pass.
func RecordDispatch(outcome string, seconds float64) {
	CampaignsDispatched.WithLabelValues(outcome).Inc()
	DispatchDuration.Observe(seconds)
}

// RecordEmail records one per-recipient delivery attempt.
func RecordEmail(status string) {
	EmailsSent.WithLabelValues(status).Inc()
}
