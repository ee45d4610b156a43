// Package metrics expõe as métricas Prometheus do serviço.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campaign_advisor"

var (
	// HTTPRequestsTotal usa o padrão da rota (ex.: /v1/recommendations/:id/apply) como label
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds by method and route",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"method", "route"},
	)

	// SyncPassesTotal conta os ciclos de sincronização por origem e resultado
	SyncPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "passes_total",
			Help:      "Total number of campaign sync passes by trigger and status",
		},
		[]string{"trigger", "status"},
	)

	SyncPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "pass_duration_seconds",
			Help:      "Duration of campaign sync passes in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	CampaignsUpsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "campaigns_upserted_total",
			Help:      "Total number of campaigns written by the sync pipeline",
		},
	)

	// SyncFailuresTotal conta falhas isoladas por escopo (identity, account)
	SyncFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "failures_total",
			Help:      "Total number of isolated sync failures by scope",
		},
		[]string{"scope"},
	)

	AdsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "google_ads",
			Name:      "requests_total",
			Help:      "Total number of Google Ads API requests by status code",
		},
		[]string{"status_code"},
	)

	// ProviderCallsTotal conta chamadas aos provedores de IA por resultado
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "provider_calls_total",
			Help:      "Total number of AI provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "provider_latency_seconds",
			Help:      "Latency of AI provider calls in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	ConsensusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "consensus_total",
			Help:      "Total number of consensus requests by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterDBStats expõe as estatísticas do pool de conexões do banco
func RegisterDBStats(db *sql.DB, name string) error {
	return prometheus.Register(collectors.NewDBStatsCollector(db, name))
}
