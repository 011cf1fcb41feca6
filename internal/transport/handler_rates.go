package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/internal/rates"
	"github.com/easycalchub/calchub/model"
)

// convertRequest is the body for POST /api/v1/convert.
type convertRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// conversionResponse carries the converted amount and the applied quote.
type conversionResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Converted float64 `json:"converted"`
	rates.Quote
}

func handleRates(svc *rates.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			WriteError(w, model.NewRateUnavailableError("?", "?"))
			return
		}

		from := strings.ToUpper(r.URL.Query().Get("from"))
		to := strings.ToUpper(r.URL.Query().Get("to"))
		if from == "" {
			WriteBadRequest(w, "from is required")
			return
		}

		// No target currency means all quotes for the base.
		if to == "" {
			quotes, err := svc.Quotes(from)
			if err != nil {
				WriteError(w, err)
				return
			}
			WriteJSON(w, http.StatusOK, map[string]any{"base": from, "quotes": quotes})
			return
		}

		quote, err := svc.Rate(from, to)
		if err != nil {
			WriteError(w, err)
			return
		}
		if quote.Stale && metrics != nil {
			metrics.RecordStaleQuote()
		}
		WriteJSON(w, http.StatusOK, quote)
	}
}

func handleConvert(svc *rates.Service, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			WriteError(w, model.NewRateUnavailableError("?", "?"))
			return
		}

		var req convertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteBadRequest(w, "request body must be valid JSON")
			return
		}
		req.From = strings.ToUpper(req.From)
		req.To = strings.ToUpper(req.To)
		if req.From == "" || req.To == "" {
			WriteBadRequest(w, "from and to are required")
			return
		}

		converted, quote, err := svc.Convert(req.Amount, req.From, req.To)
		if err != nil {
			if metrics != nil {
				metrics.RecordConversion("failure")
			}
			WriteError(w, err)
			return
		}

		if metrics != nil {
			metrics.RecordConversion("success")
			if quote.Stale {
				metrics.RecordStaleQuote()
			}
		}

		WriteJSON(w, http.StatusOK, conversionResponse{
			From:      req.From,
			To:        req.To,
			Amount:    req.Amount,
			Converted: converted,
			Quote:     quote,
		})
	}
}
