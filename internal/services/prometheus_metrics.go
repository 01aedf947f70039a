package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transfersTotal       *prometheus.CounterVec
	transferDuration     prometheus.Histogram
	transferAmount       prometheus.Histogram
	cashbackAwardedTotal prometheus.Counter
	accountsOpenedTotal  *prometheus.CounterVec
	accountsDeletedTotal prometheus.Counter
	usersCreatedTotal    prometheus.Counter
	usersDeletedTotal    prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Total number of transfers by outcome",
			},
			[]string{"status"},
		),
		transferDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_duration_milliseconds",
				Help:    "Transfer pipeline duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_amount",
				Help:    "Transfer amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		cashbackAwardedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cashback_awarded_total",
				Help: "Total number of transfers that awarded cashback",
			},
		),
		accountsOpenedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_opened_total",
				Help: "Total number of bank accounts opened by instrument kind",
			},
			[]string{"instrument"},
		),
		accountsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_deleted_total",
				Help: "Total number of bank accounts deleted",
			},
		),
		usersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "users_created_total",
				Help: "Total number of users created",
			},
		),
		usersDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "users_deleted_total",
				Help: "Total number of users deleted",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transfers_total":
		if status := tags["status"]; status != "" {
			m.transfersTotal.WithLabelValues(status).Inc()
		}
	case "cashback_awarded":
		m.cashbackAwardedTotal.Inc()
	case "accounts_opened":
		if instrument := tags["instrument"]; instrument != "" {
			m.accountsOpenedTotal.WithLabelValues(instrument).Inc()
		}
	case "accounts_deleted":
		m.accountsDeletedTotal.Inc()
	case "users_created":
		m.usersCreatedTotal.Inc()
	case "users_deleted":
		m.usersDeletedTotal.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transfer_duration":
		m.transferDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transfer_amount":
		m.transferAmount.Observe(value)
	}
}
