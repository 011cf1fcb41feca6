package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/easycalchub/calchub/internal/expr"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

// evaluateRequest is the body for POST /api/v1/evaluate.
type evaluateRequest struct {
	Expression string `json:"expression"`
	Mode       string `json:"mode"`
}

// evaluateResponse carries the evaluated value and its display form.
type evaluateResponse struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
	Display    string  `json:"display"`
}

func handleEvaluate(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteBadRequest(w, "request body must be valid JSON")
			return
		}
		if strings.TrimSpace(req.Expression) == "" {
			WriteBadRequest(w, "expression is required")
			return
		}

		mode := req.Mode
		if mode == "" {
			mode = "deg"
		}

		value, err := expr.Evaluate(req.Expression, expr.ParseMode(mode))
		if err != nil {
			if metrics != nil {
				metrics.RecordEvaluation(mode, "syntax_error")
			}
			WriteError(w, model.NewExpressionSyntaxError(err.Error()))
			return
		}

		if metrics != nil {
			metrics.RecordEvaluation(mode, "success")
		}

		WriteJSON(w, http.StatusOK, evaluateResponse{
			Expression: req.Expression,
			Value:      value,
			Display:    strconv.FormatFloat(value, 'f', -1, 64),
		})
	}
}
