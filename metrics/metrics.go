package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Sale lifecycle metrics
	VentesCreatedTotal    prometheus.Counter
	VentesAnnuleesTotal   prometheus.Counter
	VentesSupprimeesTotal prometheus.Counter

	// Stock metrics
	StockAlertsTotal prometheus.Counter

	// Payment metrics
	PaiementsTotal *prometheus.CounterVec
)

// Init registers all metrics under the configured prefix. Must be called
// once before the HTTP server starts.
func Init(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	VentesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_ventes_created_total",
			Help: "Total number of sales created",
		},
	)

	VentesAnnuleesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_ventes_annulees_total",
			Help: "Total number of sales cancelled",
		},
	)

	VentesSupprimeesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_ventes_supprimees_total",
			Help: "Total number of in-progress sales deleted",
		},
	)

	StockAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_stock_alerts_total",
			Help: "Total number of low-stock alerts broadcast",
		},
	)

	PaiementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_paiements_total",
			Help: "Total number of payments recorded",
		},
		[]string{"type"},
	)
}
