package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/easycalchub/calchub/internal/catalog"
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

// categoryGroup is one category with its calculator summaries, in display order.
type categoryGroup struct {
	Name        string          `json:"name"`
	Calculators []model.Summary `json:"calculators"`
}

func handleCategories(reg *catalog.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		infos := reg.Categories()
		groups := make([]categoryGroup, 0, len(infos))
		for _, info := range infos {
			defs := reg.Category(info.Name)
			summaries := make([]model.Summary, 0, len(defs))
			for _, def := range defs {
				summaries = append(summaries, def.Summarize())
			}
			groups = append(groups, categoryGroup{Name: info.Name, Calculators: summaries})
		}
		WriteJSON(w, http.StatusOK, map[string]any{"categories": groups})
	}
}

func handleListCalculators(reg *catalog.Registry, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")

		start := time.Now()
		results := reg.Search(q, category)
		if metrics != nil {
			metrics.RecordSearch(time.Since(start))
		}

		WriteJSON(w, http.StatusOK, map[string]any{"calculators": results})
	}
}

// calculatorView is the detail payload: the definition plus the live input
// values, which are the defaults overlaid with any shareable query
// parameters (?principal=2500000&tenure=20).
type calculatorView struct {
	*model.CalculatorDefinition
	Values model.Inputs `json:"values"`
}

func handleGetCalculator(reg *catalog.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		def, ok := reg.Get(slug)
		if !ok {
			WriteNotFound(w, "calculator not found: "+slug)
			return
		}

		sess := engine.NewSession(def)
		for id, v := range engine.DecodeQuery(def, r.URL.Query()) {
			// Malformed shared values fall back to the input's default.
			_ = sess.Set(id, v)
		}
		WriteJSON(w, http.StatusOK, calculatorView{
			CalculatorDefinition: def,
			Values:               sess.Values(),
		})
	}
}
