package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Deposits          prometheus.Counter
	Withdrawals       prometheus.Counter
	Transfers         prometheus.Counter
	Charges           prometheus.Counter
	Reversals         prometheus.Counter
	TransactionAmount prometheus.Histogram
	TransactionErrors *prometheus.CounterVec

	// Conversion metrics
	Conversions         prometheus.Counter
	ConversionReversals prometheus.Counter
	ConversionFees      *prometheus.CounterVec

	// Account metrics
	AccountsOpened    prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_deposits_total",
			Help: "Total number of completed deposits",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_withdrawals_total",
			Help: "Total number of completed withdrawals",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_transfers_total",
			Help: "Total number of completed transfers",
		}),
		Charges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_charges_total",
			Help: "Total number of completed purchase charges",
		}),
		Reversals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_reversals_total",
			Help: "Total number of transaction reversals",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),

		// Conversion metrics
		Conversions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_conversions_total",
			Help: "Total number of completed conversions",
		}),
		ConversionReversals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_conversion_reversals_total",
			Help: "Total number of conversion reversals",
		}),
		ConversionFees: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_conversion_fees_total",
				Help: "Accumulated conversion fees by currency",
			},
			[]string{"currency"},
		),

		// Account metrics
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincore_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincore_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fincore_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_outbox_errors_total",
			Help: "Total outbox publish errors",
		}),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
