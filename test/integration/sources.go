package integration

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedFiat is a controllable stand-in for the fiat rate source. Tests
// flip it between healthy and failing to exercise staleness and breaker
// behavior.
type ScriptedFiat struct {
	mu      sync.Mutex
	rates   map[string]float64
	failing bool
	calls   int
}

// NewScriptedFiat creates a fiat source serving fixed units-per-USD rates.
func NewScriptedFiat(rates map[string]float64) *ScriptedFiat {
	return &ScriptedFiat{rates: rates}
}

// Fetch implements the fiat source interface.
func (s *ScriptedFiat) Fetch(context.Context, string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failing {
		return nil, fmt.Errorf("scripted fiat source failure")
	}
	out := make(map[string]float64, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out, nil
}

// Fail makes subsequent fetches return errors.
func (s *ScriptedFiat) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

// Recover makes subsequent fetches succeed again.
func (s *ScriptedFiat) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = false
}

// SetRate changes one served rate.
func (s *ScriptedFiat) SetRate(code string, perUSD float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[code] = perUSD
}

// Calls reports how many fetches reached the source.
func (s *ScriptedFiat) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ScriptedCrypto is the crypto-source counterpart of ScriptedFiat.
type ScriptedCrypto struct {
	mu      sync.Mutex
	prices  map[string]float64
	failing bool
	calls   int
}

// NewScriptedCrypto creates a crypto source serving fixed USD prices.
func NewScriptedCrypto(prices map[string]float64) *ScriptedCrypto {
	return &ScriptedCrypto{prices: prices}
}

// Fetch implements the crypto source interface.
func (s *ScriptedCrypto) Fetch(context.Context) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failing {
		return nil, fmt.Errorf("scripted crypto source failure")
	}
	out := make(map[string]float64, len(s.prices))
	for k, v := range s.prices {
		out[k] = v
	}
	return out, nil
}

// Fail makes subsequent fetches return errors.
func (s *ScriptedCrypto) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

// Recover makes subsequent fetches succeed again.
func (s *ScriptedCrypto) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = false
}

// Calls reports how many fetches reached the source.
func (s *ScriptedCrypto) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
