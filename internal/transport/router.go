package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/catalog"
	"github.com/easycalchub/calchub/internal/config"
	"github.com/easycalchub/calchub/internal/history"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/internal/present"
	"github.com/easycalchub/calchub/internal/rates"
)

// Dependencies holds all injected dependencies for the HTTP transport layer.
// Rates may be nil when the live rates feature is disabled; the currency
// endpoints then answer 503.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Registry  *catalog.Registry
	Formatter *present.Formatter
	History   *history.Service
	Rates     *rates.Service
	Metrics   *observability.Metrics
	Ready     http.HandlerFunc
	OpenAPI   http.HandlerFunc
}

// NewRouter creates a chi.Router with the full middleware pipeline and all
// route registrations. Health, readiness, metrics, and the OpenAPI document
// bypass authentication and request logging.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to all routes including health.
	r.Use(Recovery(deps.Logger))
	r.Use(CORS(deps.Config.Server.CORS))
	r.Use(RequestID)
	r.Use(SecurityHeaders)
	if deps.Config.Observability.Tracing.Enabled {
		r.Use(observability.TracingMiddleware)
	}

	// Public routes.
	r.Get("/health", observability.HandleHealth())
	if deps.Ready != nil {
		r.Get("/ready", deps.Ready)
	}
	if deps.Config.Observability.Metrics.Enabled {
		path := deps.Config.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, observability.Handler())
	}
	if deps.OpenAPI != nil {
		r.Get("/openapi.json", deps.OpenAPI)
	}

	// API routes — full middleware chain.
	r.Group(func(r chi.Router) {
		if deps.Config.Auth.Enabled {
			r.Use(JWTAuthenticator(deps.Config.Auth))
		}
		r.Use(BuildRequestContext(deps.Config.Auth.SessionHeader))
		r.Use(HandlerTimeout(deps.Config.Server.HandlerTimeout))
		r.Use(RequestLogging(deps.Logger))
		if deps.Metrics != nil {
			r.Use(deps.Metrics.MetricsMiddleware)
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/categories", handleCategories(deps.Registry))
			r.Get("/calculators", handleListCalculators(deps.Registry, deps.Metrics))
			r.Get("/calculators/{slug}", handleGetCalculator(deps.Registry))
			r.Post("/calculators/{slug}/calculate", handleCalculate(deps.Registry, deps.Formatter, deps.Logger, deps.Metrics))
			r.Post("/evaluate", handleEvaluate(deps.Metrics))
			r.Post("/convert", handleConvert(deps.Rates, deps.Metrics))
			r.Get("/rates", handleRates(deps.Rates, deps.Metrics))

			r.Get("/history", handleListHistory(deps.History, deps.Metrics))
			r.Post("/history", handleAddHistory(deps.History, deps.Metrics))
			r.Delete("/history", handleClearHistory(deps.History, deps.Metrics))
			r.Get("/history/{id}/restore", handleRestoreHistory(deps.History, deps.Metrics))
		})
	})

	return r
}
