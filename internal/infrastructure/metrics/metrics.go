package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesCreated prometheus.Counter
	ExpensesDeleted prometheus.Counter
	ExpenseTotal    prometheus.Histogram
	Resplits        *prometheus.CounterVec

	// Payment metrics
	PaymentsRecorded *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram
	CheckoutsCreated prometheus.Counter
	Notifications    *prometheus.CounterVec
	Overpayments     prometheus.Counter

	// Roster metrics
	ParticipantsCreated prometheus.Counter
	ParticipantsRemoved prometheus.Counter

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

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Expense metrics
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_expenses_created_total",
			Help: "Total number of expenses created",
		}),
		ExpensesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_expenses_deleted_total",
			Help: "Total number of expenses deleted",
		}),
		ExpenseTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripledger_expense_total_amount",
			Help:    "Expense totals in smallest currency units",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
		}),
		Resplits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_resplits_total",
				Help: "Total number of expense re-splits by trigger",
			},
			[]string{"trigger"},
		),

		// Payment metrics
		PaymentsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_payments_recorded_total",
				Help: "Total number of payments recorded by method",
			},
			[]string{"method"},
		),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripledger_payment_amount",
			Help:    "Payment amounts in smallest currency units",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		}),
		CheckoutsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_checkouts_created_total",
			Help: "Total number of payment orders created",
		}),
		Notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_gateway_notifications_total",
				Help: "Total gateway notifications by outcome",
			},
			[]string{"outcome"},
		),
		Overpayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_overpayments_total",
			Help: "Total notifications that paid more than was owed",
		}),

		// Roster metrics
		ParticipantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_participants_created_total",
			Help: "Total number of participants created",
		}),
		ParticipantsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_participants_removed_total",
			Help: "Total number of participants removed",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_db_queries_total",
				Help: "Total database queries by operation",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripledger_db_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tripledger_db_connections",
			Help: "Current database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_db_errors_total",
				Help: "Total database errors by type",
			},
			[]string{"error_type"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_redis_operations_total",
				Help: "Total Redis operations by type",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_redis_errors_total",
				Help: "Total Redis errors by operation",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_rate_limit_hits_total",
				Help: "Total rate limit rejections by endpoint",
			},
			[]string{"endpoint"},
		),
	}
}
