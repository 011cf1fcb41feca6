// Package integration provides a reusable test harness for end-to-end
// testing of the CalcHub API server. It starts a full HTTP server over the
// real catalogue with scripted rate sources and an in-memory or file-backed
// history store.
package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/catalog"
	"github.com/easycalchub/calchub/internal/config"
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/internal/history"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/internal/openapi"
	"github.com/easycalchub/calchub/internal/present"
	"github.com/easycalchub/calchub/internal/rates"
	"github.com/easycalchub/calchub/internal/transport"
)

// TestHarness encapsulates a fully wired server instance for integration
// testing. Internal components are exposed for advanced test scenarios.
type TestHarness struct {
	t      *testing.T
	server *httptest.Server

	Registry *catalog.Registry
	History  *history.Service
	Rates    *rates.Service
	Fiat     *ScriptedFiat
	Crypto   *ScriptedCrypto
	Document *openapi.Document

	cfg *config.Config
}

// HarnessOption configures the test harness.
type HarnessOption func(*harnessConfig)

type harnessConfig struct {
	authEnabled     bool
	historyFile     string
	handlerTimeout  time.Duration
	ratesDisabled   bool
	rateMaxAge      time.Duration
	skipInitialSeed bool
}

// WithAuth enables the JWT layer against the harness token issuer.
func WithAuth() HarnessOption {
	return func(c *harnessConfig) {
		c.authEnabled = true
	}
}

// WithHistoryFile backs history with the given file instead of memory.
// Reusing a path across two harnesses exercises persistence.
func WithHistoryFile(path string) HarnessOption {
	return func(c *harnessConfig) {
		c.historyFile = path
	}
}

// WithHandlerTimeout sets the per-request handler timeout.
func WithHandlerTimeout(d time.Duration) HarnessOption {
	return func(c *harnessConfig) {
		c.handlerTimeout = d
	}
}

// WithoutRates starts the server with the currency features disabled.
func WithoutRates() HarnessOption {
	return func(c *harnessConfig) {
		c.ratesDisabled = true
	}
}

// WithRateMaxAge sets how old the rate snapshot may grow before the
// readiness probe degrades.
func WithRateMaxAge(d time.Duration) HarnessOption {
	return func(c *harnessConfig) {
		c.rateMaxAge = d
	}
}

// WithoutInitialRates skips the initial rate seed so tests can start from
// an empty snapshot.
func WithoutInitialRates() HarnessOption {
	return func(c *harnessConfig) {
		c.skipInitialSeed = true
	}
}

// repoRoot resolves the repository root from this source file, so fixture
// paths work regardless of the test working directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate caller")
	}
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// NewTestHarness creates and starts a full server instance. The server is
// automatically cleaned up when the test completes.
func NewTestHarness(t *testing.T, opts ...HarnessOption) *TestHarness {
	t.Helper()

	hc := &harnessConfig{
		handlerTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(hc)
	}

	root := repoRoot(t)

	taxes, err := engine.LoadTaxTable(filepath.Join(root, "configs", "tax_regimes.yaml"))
	if err != nil {
		t.Fatalf("load tax regimes: %v", err)
	}
	registry, err := catalog.NewRegistry(catalog.Definitions(taxes))
	if err != nil {
		t.Fatalf("build catalogue: %v", err)
	}

	doc, err := openapi.Load(context.Background(), filepath.Join(root, "api", "openapi.yaml"))
	if err != nil {
		t.Fatalf("load OpenAPI document: %v", err)
	}

	var store history.Store
	if hc.historyFile != "" {
		store = history.NewFileStore(hc.historyFile, zap.NewNop())
	} else {
		store = history.NewMemoryStore()
	}
	historySvc := history.NewService(store, zap.NewNop(), nil)

	h := &TestHarness{
		t:        t,
		Registry: registry,
		History:  historySvc,
		Document: doc,
	}

	if !hc.ratesDisabled {
		h.Fiat = NewScriptedFiat(map[string]float64{"INR": 83, "EUR": 0.92, "GBP": 0.79})
		h.Crypto = NewScriptedCrypto(map[string]float64{"BTC": 60000, "ETH": 3000})
		h.Rates = rates.NewService(h.Fiat, h.Crypto, zap.NewNop(), rates.Options{
			MaxAge: hc.rateMaxAge,
		})
		if !hc.skipInitialSeed {
			if err := h.Rates.Refresh(context.Background()); err != nil {
				t.Fatalf("seed rates: %v", err)
			}
		}
	}

	cfg := config.Defaults()
	cfg.Server.HandlerTimeout = hc.handlerTimeout
	cfg.Rates.Enabled = !hc.ratesDisabled
	cfg.Observability.Metrics.Enabled = false
	if hc.authEnabled {
		cfg.Auth.Enabled = true
		cfg.Auth.Issuer = harnessIssuer
		cfg.Auth.Audience = harnessAudience
		cfg.Auth.SigningKeyEnv = harnessKeyEnv
		t.Setenv(harnessKeyEnv, harnessSigningKey)
	}
	h.cfg = cfg

	readiness := observability.ReadinessChecks{
		CatalogueLoaded: func() bool { return registry.Len() > 0 },
		TaxTablesLoaded: func() bool { return len(taxes.IDs()) > 0 },
		HistoryStore:    historySvc,
	}
	if h.Rates != nil {
		readiness.RatesFresh = h.Rates.Ready
	}

	router := transport.NewRouter(transport.Dependencies{
		Config:    cfg,
		Logger:    zap.NewNop(),
		Registry:  registry,
		Formatter: present.NewFormatter(cfg.Presentation.DefaultLocale, cfg.Presentation.CurrencySymbol),
		History:   historySvc,
		Rates:     h.Rates,
		Metrics:   observability.InitMetrics(prometheus.NewRegistry(), observability.MetricsOptions{}),
		Ready:     observability.HandleReady(readiness),
		OpenAPI:   doc.Handler(),
	})

	h.server = httptest.NewServer(router)
	t.Cleanup(h.server.Close)
	return h
}

// URL returns the base URL of the running test server.
func (h *TestHarness) URL() string {
	return h.server.URL
}

// Response bundles the status, headers, and decoded body of a test request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

func (h *TestHarness) do(method, path, body string, headers map[string]string) Response {
	h.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.server.URL+path, reader)
	if err != nil {
		h.t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.server.Client().Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		h.t.Fatalf("read response: %v", err)
	}
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// GET performs a GET request against the test server.
func (h *TestHarness) GET(path string, headers map[string]string) Response {
	return h.do(http.MethodGet, path, "", headers)
}

// POST performs a POST request with a JSON body against the test server.
func (h *TestHarness) POST(path, body string, headers map[string]string) Response {
	return h.do(http.MethodPost, path, body, headers)
}

// DELETE performs a DELETE request against the test server.
func (h *TestHarness) DELETE(path string, headers map[string]string) Response {
	return h.do(http.MethodDelete, path, "", headers)
}

// DecodeJSON asserts the response status and decodes its body into out.
func (h *TestHarness) DecodeJSON(resp Response, wantStatus int, out any) {
	h.t.Helper()
	if resp.Status != wantStatus {
		h.t.Fatalf("status = %d, want %d, body = %s", resp.Status, wantStatus, resp.Body)
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		h.t.Fatalf("decode response: %v, body = %s", err, resp.Body)
	}
}

// ErrorCode asserts the response status and returns the error envelope code.
func (h *TestHarness) ErrorCode(resp Response, wantStatus int) string {
	h.t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	h.DecodeJSON(resp, wantStatus, &body)
	if body.Error.Code == "" {
		h.t.Fatalf("response has no error code: %s", resp.Body)
	}
	return body.Error.Code
}

// SessionHeaders returns request headers scoping history to a session.
func SessionHeaders(session string) map[string]string {
	return map[string]string{"X-Session-Id": session}
}
