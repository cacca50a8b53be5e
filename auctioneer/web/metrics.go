// Package web exposes the operational HTTP surface: Prometheus metrics and
// liveness/readiness probes. The Discord side of the bot never touches this
// listener.
package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the auction lifecycle.
type Metrics struct {
	BidsAccepted       prometheus.Counter
	BidsRejected       *prometheus.CounterVec
	AuctionsCreated    prometheus.Counter
	AuctionsCompleted  prometheus.Counter
	RemindersSent      *prometheus.CounterVec
	SettlementFailures *prometheus.CounterVec
	ActiveAuctions     prometheus.Gauge
	SweepDuration      *prometheus.HistogramVec
}

// NewMetrics registers all instruments against the given registry. Passing a
// fresh registry keeps parallel test instances from colliding.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BidsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "auctioneer_bids_accepted_total",
			Help: "Bids validated and recorded as the new high bid",
		}),

		BidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auctioneer_bids_rejected_total",
			Help: "Bids rejected, by reason",
		}, []string{"reason"}),

		AuctionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "auctioneer_auctions_created_total",
			Help: "Auctions opened via /auction start or /auction register",
		}),

		AuctionsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "auctioneer_auctions_completed_total",
			Help: "Auctions settled after the expiry window",
		}),

		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auctioneer_reminders_sent_total",
			Help: "Expiry reminders posted to auction threads, by threshold",
		}, []string{"threshold"}),

		SettlementFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auctioneer_settlement_failures_total",
			Help: "Settlement steps that failed and were skipped over",
		}, []string{"step"}),

		ActiveAuctions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "auctioneer_active_auctions",
			Help: "Active auctions as of the last completion sweep",
		}),

		SweepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auctioneer_sweep_duration_seconds",
			Help:    "Wall time of each scheduler sweep",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		}, []string{"sweep"}),
	}
}
