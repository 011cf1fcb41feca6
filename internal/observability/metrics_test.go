package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := InitMetrics(reg, MetricsOptions{})
	return m, reg
}

func TestInitMetrics_registersAllMetrics(t *testing.T) {
	m, reg := newTestMetrics(t)
	if m == nil {
		t.Fatal("InitMetrics returned nil")
	}

	expected := []string{
		"calchub_http_requests_total",
		"calchub_http_request_duration_seconds",
		"calchub_http_request_size_bytes",
		"calchub_http_response_size_bytes",
		"calchub_calculations_total",
		"calchub_calculation_duration_seconds",
		"calchub_input_validation_errors_total",
		"calchub_evaluations_total",
		"calchub_evaluation_syntax_errors_total",
		"calchub_conversions_total",
		"calchub_rate_refresh_total",
		"calchub_rate_refresh_duration_seconds",
		"calchub_rate_breaker_state",
		"calchub_rate_cache_hits_total",
		"calchub_rate_cache_misses_total",
		"calchub_stale_quotes_total",
		"calchub_history_operations_total",
		"calchub_history_evictions_total",
		"calchub_catalogue_reload_total",
		"calchub_calculators_loaded",
		"calchub_search_duration_seconds",
	}

	// Record a value for each metric so they appear in Gather.
	m.RecordHTTPRequest("GET", "/test", 200, time.Millisecond, 0, 100)
	m.RecordCalculation("emi-calculator", "success", time.Millisecond)
	m.RecordInputValidationError("emi-calculator")
	m.RecordEvaluation("deg", "success")
	m.RecordEvaluation("rad", "syntax_error")
	m.RecordConversion("success")
	m.RecordRateRefresh("fiat", "success", 200*time.Millisecond)
	m.SetRateBreakerState("fiat", 0)
	m.RecordRateCacheHit()
	m.RecordRateCacheMiss()
	m.RecordStaleQuote()
	m.RecordHistoryOperation("add", "success")
	m.RecordHistoryEvictions(2)
	m.RecordCatalogueReload("success")
	m.SetCalculatorsLoaded(99)
	m.RecordSearch(time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not registered", name)
		}
	}
}

func TestInitMetrics_snapshotAgeGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := InitMetrics(reg, MetricsOptions{
		RateSnapshotAge: func() float64 { return 42.5 },
	})

	val := testutil.ToFloat64(m.RateSnapshotAge)
	if val != 42.5 {
		t.Errorf("snapshot age = %v, want 42.5", val)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHTTPRequest("GET", "/api/v1/calculators/{slug}", 200, 50*time.Millisecond, 0, 1024)
	m.RecordHTTPRequest("GET", "/api/v1/calculators/{slug}", 200, 100*time.Millisecond, 0, 2048)
	m.RecordHTTPRequest("POST", "/api/v1/evaluate", 500, 200*time.Millisecond, 512, 256)

	// Verify counter values.
	val := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/calculators/{slug}", "200"))
	if val != 2 {
		t.Errorf("GET requests = %v, want 2", val)
	}
	val = testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/evaluate", "500"))
	if val != 1 {
		t.Errorf("POST requests = %v, want 1", val)
	}
}

func TestRecordCalculation(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordCalculation("emi-calculator", "success", 150*time.Microsecond)
	m.RecordCalculation("emi-calculator", "failure", 50*time.Microsecond)

	success := testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("emi-calculator", "success"))
	if success != 1 {
		t.Errorf("success count = %v, want 1", success)
	}
	failure := testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("emi-calculator", "failure"))
	if failure != 1 {
		t.Errorf("failure count = %v, want 1", failure)
	}
}

func TestRecordInputValidationError(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordInputValidationError("gst-calculator")
	m.RecordInputValidationError("gst-calculator")

	val := testutil.ToFloat64(m.InputValidationErrors.WithLabelValues("gst-calculator"))
	if val != 2 {
		t.Errorf("validation errors = %v, want 2", val)
	}
}

func TestRecordEvaluation(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordEvaluation("deg", "success")
	m.RecordEvaluation("deg", "syntax_error")
	m.RecordEvaluation("rad", "syntax_error")

	success := testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("deg", "success"))
	if success != 1 {
		t.Errorf("deg success = %v, want 1", success)
	}
	syntaxErrs := testutil.ToFloat64(m.EvaluationSyntaxErrors)
	if syntaxErrs != 2 {
		t.Errorf("syntax errors = %v, want 2", syntaxErrs)
	}
}

func TestRecordConversion(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordConversion("success")
	m.RecordConversion("unsupported_unit")

	val := testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("success"))
	if val != 1 {
		t.Errorf("success conversions = %v, want 1", val)
	}
	val = testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("unsupported_unit"))
	if val != 1 {
		t.Errorf("unsupported conversions = %v, want 1", val)
	}
}

func TestRecordRateRefresh(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordRateRefresh("fiat", "success", 100*time.Millisecond)
	m.RecordRateRefresh("crypto", "failure", 2*time.Second)

	val := testutil.ToFloat64(m.RateRefreshTotal.WithLabelValues("fiat", "success"))
	if val != 1 {
		t.Errorf("fiat refresh = %v, want 1", val)
	}
	val = testutil.ToFloat64(m.RateRefreshTotal.WithLabelValues("crypto", "failure"))
	if val != 1 {
		t.Errorf("crypto refresh = %v, want 1", val)
	}
}

func TestSetRateBreakerState(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.SetRateBreakerState("fiat", 0)
	val := testutil.ToFloat64(m.RateBreakerState.WithLabelValues("fiat"))
	if val != 0 {
		t.Errorf("breaker state = %v, want 0 (closed)", val)
	}

	m.SetRateBreakerState("fiat", 2)
	val = testutil.ToFloat64(m.RateBreakerState.WithLabelValues("fiat"))
	if val != 2 {
		t.Errorf("breaker state = %v, want 2 (open)", val)
	}
}

func TestRecordRateCache(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordRateCacheHit()
	m.RecordRateCacheHit()
	m.RecordRateCacheMiss()

	hits := testutil.ToFloat64(m.RateCacheHitsTotal)
	if hits != 2 {
		t.Errorf("cache hits = %v, want 2", hits)
	}
	misses := testutil.ToFloat64(m.RateCacheMissesTotal)
	if misses != 1 {
		t.Errorf("cache misses = %v, want 1", misses)
	}
}

func TestRecordStaleQuote(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordStaleQuote()
	val := testutil.ToFloat64(m.StaleQuotesTotal)
	if val != 1 {
		t.Errorf("stale quotes = %v, want 1", val)
	}
}

func TestRecordHistoryOperation(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHistoryOperation("add", "success")
	m.RecordHistoryOperation("clear", "failure")

	val := testutil.ToFloat64(m.HistoryOperationsTotal.WithLabelValues("add", "success"))
	if val != 1 {
		t.Errorf("add success = %v, want 1", val)
	}
	val = testutil.ToFloat64(m.HistoryOperationsTotal.WithLabelValues("clear", "failure"))
	if val != 1 {
		t.Errorf("clear failure = %v, want 1", val)
	}
}

func TestRecordHistoryEvictions(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHistoryEvictions(3)
	m.RecordHistoryEvictions(0)
	m.RecordHistoryEvictions(-1)

	val := testutil.ToFloat64(m.HistoryEvictionsTotal)
	if val != 3 {
		t.Errorf("evictions = %v, want 3", val)
	}
}

func TestRecordCatalogueReload(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordCatalogueReload("success")
	m.RecordCatalogueReload("failure")

	success := testutil.ToFloat64(m.CatalogueReloadTotal.WithLabelValues("success"))
	if success != 1 {
		t.Errorf("reload success = %v, want 1", success)
	}
	failure := testutil.ToFloat64(m.CatalogueReloadTotal.WithLabelValues("failure"))
	if failure != 1 {
		t.Errorf("reload failure = %v, want 1", failure)
	}
}

func TestSetCalculatorsLoaded(t *testing.T) {
	m, _ := newTestMetrics(t)

	count := 99
	m.SetCalculatorsLoaded(count)
	val := testutil.ToFloat64(m.CalculatorsLoaded)
	if val != float64(count) {
		t.Errorf("calculators loaded = %v, want 99", val)
	}

	m.SetCalculatorsLoaded(100)
	val = testutil.ToFloat64(m.CalculatorsLoaded)
	if val != 100 {
		t.Errorf("calculators loaded = %v, want 100", val)
	}
}

func TestRecordSearch(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordSearch(2 * time.Millisecond)

	count := testutil.CollectAndCount(m.SearchDuration)
	if count == 0 {
		t.Error("expected search duration histogram to have observations")
	}
}

func TestMetricsMiddleware_recordsRequestMetrics(t *testing.T) {
	m, _ := newTestMetrics(t)

	// Build a chi router so route patterns are captured.
	r := chi.NewRouter()
	r.Use(m.MetricsMiddleware)
	r.Get("/api/v1/calculators/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calculators/emi-calculator", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Verify metrics were recorded with the route pattern, not the actual path.
	val := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/calculators/{slug}", "200"))
	if val != 1 {
		t.Errorf("requests total = %v, want 1", val)
	}
}

func TestMetricsMiddleware_capturesResponseSize(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.MetricsMiddleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("healthy"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Response size should have been recorded.
	count := testutil.CollectAndCount(m.HTTPResponseSizeBytes)
	if count == 0 {
		t.Error("expected response size histogram to have observations")
	}
}

func TestMetricsMiddleware_capturesStatusCode(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.MetricsMiddleware)
	r.Post("/api/v1/calculators/{slug}/calculate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculators/sip-calculator/calculate", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	val := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/calculators/{slug}/calculate", "400"))
	if val != 1 {
		t.Errorf("400 requests = %v, want 1", val)
	}
}

func TestMetricsMiddleware_fallsBackToPath(t *testing.T) {
	m, _ := newTestMetrics(t)

	// Use middleware directly without chi router.
	handler := m.MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/raw/path", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Without chi, should fall back to raw path.
	val := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/raw/path", "200"))
	if val != 1 {
		t.Errorf("raw path requests = %v, want 1", val)
	}
}

func TestHandler_servesMetrics(t *testing.T) {
	handler := Handler()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	// Prometheus handler should return at least go runtime metrics.
	if !strings.Contains(body, "go_") {
		t.Error("metrics response should contain go runtime metrics")
	}
}

func TestHistogramBuckets(t *testing.T) {
	// Verify bucket configurations are correct.
	if len(httpDurationBuckets) != 11 {
		t.Errorf("httpDurationBuckets length = %d, want 11", len(httpDurationBuckets))
	}
	if len(computeBuckets) != 9 {
		t.Errorf("computeBuckets length = %d, want 9", len(computeBuckets))
	}
	if len(bodySizeBuckets) != 5 {
		t.Errorf("bodySizeBuckets length = %d, want 5", len(bodySizeBuckets))
	}

	// Verify buckets are sorted ascending.
	for i := 1; i < len(httpDurationBuckets); i++ {
		if httpDurationBuckets[i] <= httpDurationBuckets[i-1] {
			t.Errorf("httpDurationBuckets not sorted at index %d", i)
		}
	}
}
