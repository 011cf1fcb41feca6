package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easycalchub/calchub/internal/history"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

func historyFilter(r *http.Request) history.Filter {
	return history.Filter{
		Kind: r.URL.Query().Get("type"),
		Slug: r.URL.Query().Get("calculator"),
	}
}

func handleListHistory(svc *history.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := model.MustRequestContext(r.Context()).Owner()
		entries, err := svc.List(r.Context(), owner, historyFilter(r))
		if err != nil {
			if metrics != nil {
				metrics.RecordHistoryOperation("list", "failure")
			}
			WriteError(w, err)
			return
		}
		if metrics != nil {
			metrics.RecordHistoryOperation("list", "success")
		}
		WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
	}
}

func handleAddHistory(svc *history.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry model.HistoryEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			WriteBadRequest(w, "request body must be valid JSON")
			return
		}

		owner := model.MustRequestContext(r.Context()).Owner()
		stored, err := svc.Add(r.Context(), owner, entry)
		if err != nil {
			if metrics != nil {
				metrics.RecordHistoryOperation("add", "failure")
			}
			WriteError(w, err)
			return
		}
		if metrics != nil {
			metrics.RecordHistoryOperation("add", "success")
		}
		WriteJSON(w, http.StatusCreated, stored)
	}
}

func handleClearHistory(svc *history.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := model.MustRequestContext(r.Context()).Owner()
		if err := svc.Clear(r.Context(), owner, historyFilter(r)); err != nil {
			if metrics != nil {
				metrics.RecordHistoryOperation("clear", "failure")
			}
			WriteError(w, err)
			return
		}
		if metrics != nil {
			metrics.RecordHistoryOperation("clear", "success")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRestoreHistory(svc *history.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := model.MustRequestContext(r.Context()).Owner()
		restored, err := svc.Restore(r.Context(), owner, chi.URLParam(r, "id"))
		if err != nil {
			if metrics != nil {
				metrics.RecordHistoryOperation("restore", "failure")
			}
			WriteError(w, err)
			return
		}
		if metrics != nil {
			metrics.RecordHistoryOperation("restore", "success")
		}
		WriteJSON(w, http.StatusOK, restored)
	}
}
