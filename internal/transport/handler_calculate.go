package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/catalog"
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/internal/present"
	"github.com/easycalchub/calchub/model"
)

// calculateRequest is the body for POST /api/v1/calculators/{slug}/calculate.
type calculateRequest struct {
	Inputs model.Inputs `json:"inputs"`
}

func handleCalculate(reg *catalog.Registry, fmtr *present.Formatter, log *zap.Logger, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		def, ok := reg.Get(slug)
		if !ok {
			WriteNotFound(w, "calculator not found: "+slug)
			return
		}

		var req calculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteBadRequest(w, "request body must be valid JSON")
			return
		}

		ctx, span := observability.StartSpan(r.Context(), "calculator.compute",
			observability.AttrCalculator.String(def.Slug),
		)

		start := time.Now()
		result, calcErr := engine.Calculate(def, req.Inputs)
		elapsed := time.Since(start)

		if calcErr != nil {
			observability.EndSpanWithError(span, calcErr)
			if metrics != nil {
				metrics.RecordInputValidationError(def.Slug)
				metrics.RecordCalculation(def.Slug, "failure", elapsed)
			}
			observability.RequestLogger(ctx, log).Debug("calculation rejected",
				zap.String("calculator", def.Slug),
				zap.Int("field_errors", len(calcErr.Details)),
			)
			WriteError(w, calcErr)
			return
		}
		span.End()

		if metrics != nil {
			metrics.RecordCalculation(def.Slug, "success", elapsed)
		}

		locale := requestLocale(r)
		WriteJSON(w, http.StatusOK, fmtr.Render(result, locale))
	}
}

// requestLocale resolves the formatting locale from the query string, falling
// back to the negotiated request context locale. Empty means the formatter's
// configured default.
func requestLocale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	if rctx := model.RequestContextFrom(r.Context()); rctx != nil {
		return rctx.Locale
	}
	return ""
}
