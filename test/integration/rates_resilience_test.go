package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/easycalchub/calchub/model"
)

type quoteBody struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Rate  float64 `json:"rate"`
	Stale bool    `json:"stale"`
}

func TestRatesResilience_staleAfterSourceFailure(t *testing.T) {
	h := NewTestHarness(t)

	var fresh quoteBody
	h.DecodeJSON(h.GET("/api/v1/rates?from=USD&to=INR", nil), http.StatusOK, &fresh)
	if fresh.Stale {
		t.Fatal("quote stale before any failure")
	}

	// The fiat source goes down; the next refresh keeps the last known
	// value but flags it.
	h.Fiat.Fail()
	if err := h.Rates.Refresh(context.Background()); err == nil {
		t.Fatal("refresh succeeded with failing source")
	}

	var stale quoteBody
	h.DecodeJSON(h.GET("/api/v1/rates?from=USD&to=INR", nil), http.StatusOK, &stale)
	if !stale.Stale {
		t.Error("quote not flagged stale after source failure")
	}
	if stale.Rate != fresh.Rate {
		t.Errorf("stale rate = %v, want last known %v", stale.Rate, fresh.Rate)
	}

	// Crypto pairs ride a separate source and stay fresh.
	var crypto quoteBody
	h.DecodeJSON(h.GET("/api/v1/rates?from=BTC&to=USD", nil), http.StatusOK, &crypto)
	if crypto.Stale {
		t.Error("crypto quote flagged stale by a fiat failure")
	}
}

func TestRatesResilience_breakerStopsHammeringSource(t *testing.T) {
	h := NewTestHarness(t)
	h.Fiat.Fail()

	// Three consecutive failures trip the breaker.
	for i := 0; i < 3; i++ {
		h.Rates.Refresh(context.Background())
	}
	callsWhenTripped := h.Fiat.Calls()

	// Further refreshes are rejected by the breaker without a fetch.
	h.Rates.Refresh(context.Background())
	h.Rates.Refresh(context.Background())

	if got := h.Fiat.Calls(); got != callsWhenTripped {
		t.Errorf("source calls = %d after trip, want %d", got, callsWhenTripped)
	}
}

func TestRatesResilience_recoveryClearsStaleFlag(t *testing.T) {
	h := NewTestHarness(t)

	h.Fiat.Fail()
	h.Rates.Refresh(context.Background())

	h.Fiat.Recover()
	h.Fiat.SetRate("INR", 84)
	if err := h.Rates.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh after recovery: %v", err)
	}

	var quote quoteBody
	h.DecodeJSON(h.GET("/api/v1/rates?from=USD&to=INR", nil), http.StatusOK, &quote)
	if quote.Stale {
		t.Error("quote still stale after recovery")
	}
	if quote.Rate != 84 {
		t.Errorf("rate = %v, want refreshed 84", quote.Rate)
	}
}

func TestRatesResilience_readinessDegradesOnOldSnapshot(t *testing.T) {
	h := NewTestHarness(t, WithRateMaxAge(time.Nanosecond))

	// The seed snapshot is already older than the max age.
	time.Sleep(time.Millisecond)

	resp := h.GET("/ready", nil)
	if resp.Status != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503 with an aged snapshot", resp.Status)
	}
}

func TestRatesResilience_emptySnapshotAnswers503(t *testing.T) {
	h := NewTestHarness(t, WithoutInitialRates())

	code := h.ErrorCode(h.GET("/api/v1/rates?from=USD&to=INR", nil), http.StatusServiceUnavailable)
	if code != model.ErrRateUnavailable {
		t.Errorf("code = %q", code)
	}
}

func TestRatesResilience_disabledFeature(t *testing.T) {
	h := NewTestHarness(t, WithoutRates())

	code := h.ErrorCode(h.GET("/api/v1/rates?from=USD&to=INR", nil), http.StatusServiceUnavailable)
	if code != model.ErrRateUnavailable {
		t.Errorf("code = %q", code)
	}

	// The rest of the API is unaffected.
	resp := h.GET("/api/v1/categories", nil)
	if resp.Status != http.StatusOK {
		t.Errorf("categories status = %d with rates disabled", resp.Status)
	}
}
