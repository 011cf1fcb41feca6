package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Histogram bucket definitions.
var (
	httpDurationBuckets  = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	computeBuckets       = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	fetchDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	bodySizeBuckets      = []float64{100, 1024, 10240, 102400, 1048576}
)

// Metrics holds all Prometheus metric instruments for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestSizeBytes  *prometheus.HistogramVec
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Calculation metrics
	CalculationsTotal      *prometheus.CounterVec
	CalculationDuration    *prometheus.HistogramVec
	InputValidationErrors  *prometheus.CounterVec
	EvaluationsTotal       *prometheus.CounterVec
	EvaluationSyntaxErrors prometheus.Counter

	// Conversion and rate metrics
	ConversionsTotal     *prometheus.CounterVec
	RateRefreshTotal     *prometheus.CounterVec
	RateRefreshDuration  *prometheus.HistogramVec
	RateSnapshotAge      prometheus.GaugeFunc
	RateBreakerState     *prometheus.GaugeVec
	RateCacheHitsTotal   prometheus.Counter
	RateCacheMissesTotal prometheus.Counter
	StaleQuotesTotal     prometheus.Counter

	// History metrics
	HistoryOperationsTotal *prometheus.CounterVec
	HistoryEvictionsTotal  prometheus.Counter

	// Catalogue metrics
	CatalogueReloadTotal *prometheus.CounterVec
	CalculatorsLoaded    prometheus.Gauge
	SearchDuration       prometheus.Histogram
}

// MetricsOptions configures optional instruments that need external state,
// such as the rate snapshot age gauge.
type MetricsOptions struct {
	// RateSnapshotAge reports the age of the current rate snapshot in
	// seconds. Nil disables the gauge.
	RateSnapshotAge func() float64
}

// InitMetrics creates and registers all Prometheus metric instruments.
func InitMetrics(reg prometheus.Registerer, opts MetricsOptions) *Metrics {
	m := &Metrics{
		// HTTP
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calchub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPRequestSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calchub_http_request_size_bytes",
			Help:    "HTTP request body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPResponseSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calchub_http_response_size_bytes",
			Help:    "HTTP response body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),

		// Calculations
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_calculations_total",
			Help: "Total number of calculator runs.",
		}, []string{"calculator", "status"}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calchub_calculation_duration_seconds",
			Help:    "Calculator compute duration in seconds.",
			Buckets: computeBuckets,
		}, []string{"calculator"}),
		InputValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_input_validation_errors_total",
			Help: "Total number of rejected calculator inputs.",
		}, []string{"calculator"}),
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_evaluations_total",
			Help: "Total number of expression evaluations.",
		}, []string{"mode", "status"}),
		EvaluationSyntaxErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calchub_evaluation_syntax_errors_total",
			Help: "Total number of expressions rejected for syntax errors.",
		}),

		// Conversions and rates
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_conversions_total",
			Help: "Total number of currency conversions.",
		}, []string{"status"}),
		RateRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_rate_refresh_total",
			Help: "Total number of rate refresh attempts per source.",
		}, []string{"source", "status"}),
		RateRefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calchub_rate_refresh_duration_seconds",
			Help:    "Rate source fetch duration in seconds.",
			Buckets: fetchDurationBuckets,
		}, []string{"source"}),
		RateBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calchub_rate_breaker_state",
			Help: "Rate source circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"source"}),
		RateCacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calchub_rate_cache_hits_total",
			Help: "Total rate snapshot cache hits.",
		}),
		RateCacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calchub_rate_cache_misses_total",
			Help: "Total rate snapshot cache misses.",
		}),
		StaleQuotesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calchub_stale_quotes_total",
			Help: "Total quotes served from a stale snapshot.",
		}),

		// History
		HistoryOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_history_operations_total",
			Help: "Total number of history store operations.",
		}, []string{"operation", "status"}),
		HistoryEvictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calchub_history_evictions_total",
			Help: "Total history entries evicted by the per-owner cap.",
		}),

		// Catalogue
		CatalogueReloadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calchub_catalogue_reload_total",
			Help: "Total catalogue reloads.",
		}, []string{"status"}),
		CalculatorsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "calchub_calculators_loaded",
			Help: "Number of calculators in the active catalogue.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "calchub_search_duration_seconds",
			Help:    "Catalogue search duration in seconds.",
			Buckets: computeBuckets,
		}),
	}

	collectors := []prometheus.Collector{
		// HTTP
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSizeBytes,
		m.HTTPResponseSizeBytes,
		// Calculations
		m.CalculationsTotal,
		m.CalculationDuration,
		m.InputValidationErrors,
		m.EvaluationsTotal,
		m.EvaluationSyntaxErrors,
		// Conversions and rates
		m.ConversionsTotal,
		m.RateRefreshTotal,
		m.RateRefreshDuration,
		m.RateBreakerState,
		m.RateCacheHitsTotal,
		m.RateCacheMissesTotal,
		m.StaleQuotesTotal,
		// History
		m.HistoryOperationsTotal,
		m.HistoryEvictionsTotal,
		// Catalogue
		m.CatalogueReloadTotal,
		m.CalculatorsLoaded,
		m.SearchDuration,
	}

	if opts.RateSnapshotAge != nil {
		m.RateSnapshotAge = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "calchub_rate_snapshot_age_seconds",
			Help: "Age of the current rate snapshot in seconds.",
		}, opts.RateSnapshotAge)
		collectors = append(collectors, m.RateSnapshotAge)
	}

	reg.MustRegister(collectors...)

	return m
}

// --- Recording helpers ---

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(method, pathPattern string, status int, duration time.Duration, reqSize, respSize int) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(duration.Seconds())
	m.HTTPRequestSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(reqSize))
	m.HTTPResponseSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(respSize))
}

// RecordCalculation records a calculator run.
func (m *Metrics) RecordCalculation(slug, status string, duration time.Duration) {
	m.CalculationsTotal.WithLabelValues(slug, status).Inc()
	m.CalculationDuration.WithLabelValues(slug).Observe(duration.Seconds())
}

// RecordInputValidationError records rejected calculator inputs.
func (m *Metrics) RecordInputValidationError(slug string) {
	m.InputValidationErrors.WithLabelValues(slug).Inc()
}

// RecordEvaluation records an expression evaluation.
func (m *Metrics) RecordEvaluation(mode, status string) {
	m.EvaluationsTotal.WithLabelValues(mode, status).Inc()
	if status == "syntax_error" {
		m.EvaluationSyntaxErrors.Inc()
	}
}

// RecordConversion records a currency conversion.
func (m *Metrics) RecordConversion(status string) {
	m.ConversionsTotal.WithLabelValues(status).Inc()
}

// RecordRateRefresh records a refresh attempt against a rate source.
func (m *Metrics) RecordRateRefresh(source, status string, duration time.Duration) {
	m.RateRefreshTotal.WithLabelValues(source, status).Inc()
	m.RateRefreshDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// SetRateBreakerState sets the circuit breaker state for a rate source.
// State: 0=closed, 1=half-open, 2=open.
func (m *Metrics) SetRateBreakerState(source string, state float64) {
	m.RateBreakerState.WithLabelValues(source).Set(state)
}

// RecordRateCacheHit records a rate snapshot cache hit.
func (m *Metrics) RecordRateCacheHit() {
	m.RateCacheHitsTotal.Inc()
}

// RecordRateCacheMiss records a rate snapshot cache miss.
func (m *Metrics) RecordRateCacheMiss() {
	m.RateCacheMissesTotal.Inc()
}

// RecordStaleQuote records a quote served from a stale snapshot.
func (m *Metrics) RecordStaleQuote() {
	m.StaleQuotesTotal.Inc()
}

// RecordHistoryOperation records a history store operation.
func (m *Metrics) RecordHistoryOperation(operation, status string) {
	m.HistoryOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordHistoryEvictions records entries evicted by the per-owner cap.
func (m *Metrics) RecordHistoryEvictions(n int) {
	if n > 0 {
		m.HistoryEvictionsTotal.Add(float64(n))
	}
}

// RecordCatalogueReload records a catalogue reload.
func (m *Metrics) RecordCatalogueReload(status string) {
	m.CatalogueReloadTotal.WithLabelValues(status).Inc()
}

// SetCalculatorsLoaded sets the number of calculators in the active catalogue.
func (m *Metrics) SetCalculatorsLoaded(count int) {
	m.CalculatorsLoaded.Set(float64(count))
}

// RecordSearch records a catalogue search.
func (m *Metrics) RecordSearch(duration time.Duration) {
	m.SearchDuration.Observe(duration.Seconds())
}

// --- HTTP Middleware ---

// MetricsMiddleware returns HTTP middleware that records request metrics using
// chi's route pattern (not the actual URL path) to avoid label cardinality
// explosion.
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		pathPattern := routePattern(r)
		reqSize := 0
		if r.ContentLength > 0 {
			reqSize = int(r.ContentLength)
		}

		m.RecordHTTPRequest(r.Method, pathPattern, sw.status, duration, reqSize, sw.bytes)
	})
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// routePattern extracts chi's route pattern from the request context.
// Falls back to the raw URL path if no pattern is found.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	pattern := strings.Join(rctx.RoutePatterns, "")
	// chi route patterns have trailing /*, remove it.
	pattern = strings.TrimSuffix(pattern, "/*")
	if pattern == "" {
		return r.URL.Path
	}
	return pattern
}

// metricsResponseWriter wraps http.ResponseWriter to capture status and bytes.
type metricsResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
