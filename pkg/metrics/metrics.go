// Package metrics provides Prometheus instrumentation for the shop backend.
//
// It pre-defines the standard HTTP metrics plus the billing and inventory
// counters the operators dashboard on, and gives helpers to register custom
// metrics.
//
// Wire it up once in the HTTP kernel:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clothshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "clothshop",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

// ─────────────────────────────────────────────
// Billing / inventory metrics
// ─────────────────────────────────────────────

var (
	// BillsCreated counts committed bills.
	BillsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clothshop",
		Subsystem: "billing",
		Name:      "bills_created_total",
		Help:      "Total number of successfully committed bills.",
	})

	// BillAmount observes the final amount of each committed bill.
	BillAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clothshop",
		Subsystem: "billing",
		Name:      "bill_final_amount",
		Help:      "Final amount of committed bills.",
		Buckets:   []float64{100, 500, 1_000, 2_500, 5_000, 10_000, 25_000},
	})

	// BillNumberRetries counts bill-number collisions that forced a regenerate.
	BillNumberRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clothshop",
		Subsystem: "billing",
		Name:      "bill_number_retries_total",
		Help:      "Bill number candidates discarded due to collision.",
	})

	// OrdersRejected counts failed order attempts by reason.
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "billing",
			Name:      "orders_rejected_total",
			Help:      "Order attempts rejected before commit.",
		},
		[]string{"reason"}, // "item_not_found" | "insufficient_stock" | "validation" | "number_exhausted"
	)

	// StockUnitsSold counts stock units decremented by committed bills.
	StockUnitsSold = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clothshop",
		Subsystem: "inventory",
		Name:      "stock_units_sold_total",
		Help:      "Stock units decremented by committed bills.",
	})

	// LowStockItems is the number of items at or below their threshold,
	// refreshed by the scheduled low-stock sweep.
	LowStockItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "clothshop",
		Subsystem: "inventory",
		Name:      "low_stock_items",
		Help:      "Items currently at or below their low-stock threshold.",
	})

	// DeliveryJobs counts bill delivery (email) job outcomes.
	DeliveryJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "delivery",
			Name:      "jobs_total",
			Help:      "Bill delivery jobs by outcome.",
		},
		[]string{"status"}, // "sent" | "failed"
	)

	// CacheHits / CacheMisses track cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)

	// QueueJobsProcessed counts processed queue jobs by status.
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clothshop",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"status"}, // "success" | "failed"
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by the application.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		BillsCreated,
		BillAmount,
		BillNumberRetries,
		OrdersRejected,
		StockUnitsSold,
		LowStockItems,
		DeliveryJobs,
		CacheHits,
		CacheMisses,
		QueueJobsProcessed,
	)
}

// Register lets you add a prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware returns an http.Handler middleware that records Prometheus
// metrics for every request: duration histogram, total counter, in-flight gauge.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// ─────────────────────────────────────────────
// /metrics endpoint handler
// ─────────────────────────────────────────────

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
// Mount it on GET /metrics in your router.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// RecordQueueJob records a queue job result.
func RecordQueueJob(status string) {
	QueueJobsProcessed.WithLabelValues(status).Inc()
}
