package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the delivery counters exposed on /metrics.
type Metrics struct {
	TxsTotal        *prometheus.CounterVec
	TxLatency       *prometheus.HistogramVec
	LeaderboardSize prometheus.Gauge
	Height          prometheus.Gauge
}

// NewMetrics registers the application metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TxsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "snake_txs_total",
			Help: "The total number of delivered transactions by message type and result",
		}, []string{"msg", "result"}),
		TxLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snake_tx_latency_seconds",
			Help:    "Latency of transaction delivery including the commit",
			Buckets: prometheus.DefBuckets,
		}, []string{"msg"}),
		LeaderboardSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "snake_leaderboard_entries",
			Help: "The number of entries currently on the leaderboard",
		}),
		Height: f.NewGauge(prometheus.GaugeOpts{
			Name: "snake_height",
			Help: "The latest committed store version",
		}),
	}
}
