package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Receipt metrics
	ReceiptsCreated   prometheus.Counter
	ReceiptsConfirmed prometheus.Counter
	ReceiptsDeleted   prometheus.Counter

	// Payment metrics
	PaymentsApplied prometheus.Counter
	PaymentAmount   *prometheus.HistogramVec
	PaymentErrors   *prometheus.CounterVec

	// Register metrics
	DeliveriesExecuted *prometheus.CounterVec
	DeliveryAmount     *prometheus.HistogramVec

	// Portability metrics
	ExportsTotal prometheus.Counter
	ImportsTotal *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns  *prometheus.CounterVec
	ReconciliationDrift prometheus.Gauge

	// Tenant balance cache metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ReceiptsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_receipts_created_total",
			Help: "Total number of receipts created",
		}),
		ReceiptsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_receipts_confirmed_total",
			Help: "Total number of receipts confirmed",
		}),
		ReceiptsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_receipts_deleted_total",
			Help: "Total number of receipts deleted",
		}),

		PaymentsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_payments_applied_total",
			Help: "Total number of payments applied",
		}),
		PaymentAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rentas_payment_amount",
				Help:    "Payment amounts per instrument",
				Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method"},
		),
		PaymentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_payment_errors_total",
				Help: "Total number of payment rejections by type",
			},
			[]string{"error_type"},
		),

		DeliveriesExecuted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_deliveries_total",
				Help: "Total number of register deliveries",
			},
			[]string{"currency", "delivery_type"},
		),
		DeliveryAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rentas_delivery_amount",
				Help:    "Delivery amounts per currency",
				Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"currency"},
		),

		ExportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_exports_total",
			Help: "Total number of backup exports",
		}),
		ImportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_imports_total",
				Help: "Total number of backup imports by outcome",
			},
			[]string{"status"},
		),

		ReconciliationRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_reconciliation_runs_total",
				Help: "Total number of reconciliation passes by outcome",
			},
			[]string{"clean"},
		),
		ReconciliationDrift: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rentas_reconciliation_discrepancies",
			Help: "Discrepancies found by the last reconciliation pass",
		}),

		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_balance_cache_hits_total",
			Help: "Total tenant balance cache hits",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentas_balance_cache_misses_total",
			Help: "Total tenant balance cache misses",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentas_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rentas_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
