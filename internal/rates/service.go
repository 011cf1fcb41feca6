// Package rates serves live fiat and crypto exchange rates. Every pair is
// derived by pivoting through USD, so one fiat fetch and one crypto fetch
// cover the full matrix. A failed refresh never blanks a rate: the last
// known value keeps serving with a stale flag.
package rates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

type fiatFetcher interface {
	Fetch(ctx context.Context, base string) (map[string]float64, error)
}

type cryptoFetcher interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// Quote is one derived exchange rate.
type Quote struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale"`
}

// snapshot holds the USD value of one unit of each tracked currency.
// Snapshots are replaced whole so readers never see a half-applied refresh.
type snapshot struct {
	usd         map[string]float64
	fetchedAt   time.Time
	fiatStale   bool
	cryptoStale bool
}

// Service derives cross rates from the two upstream sources and keeps them
// fresh in the background.
type Service struct {
	fiat          fiatFetcher
	crypto        cryptoFetcher
	fiatBreaker   *Breaker
	cryptoBreaker *Breaker
	cache         *Cache
	interval      time.Duration
	maxAge        time.Duration
	log           *zap.Logger
	metrics       *observability.Metrics

	mu   sync.RWMutex
	snap snapshot
}

// Options tune the service. Zero values pick the defaults.
type Options struct {
	PollInterval time.Duration          // default 60s
	MaxAge       time.Duration          // rate age before Ready degrades, default 5m
	Cache        *Cache                 // optional redis tier
	Metrics      *observability.Metrics // optional instruments
}

// NewService creates a rates service over the given sources.
func NewService(fiat fiatFetcher, crypto cryptoFetcher, log *zap.Logger, opts Options) *Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 60 * time.Second
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 5 * time.Minute
	}
	return &Service{
		fiat:          fiat,
		crypto:        crypto,
		fiatBreaker:   NewBreaker(3, 30*time.Second),
		cryptoBreaker: NewBreaker(3, 30*time.Second),
		cache:         opts.Cache,
		interval:      opts.PollInterval,
		maxAge:        opts.MaxAge,
		log:           log,
		metrics:       opts.Metrics,
		snap:          snapshot{usd: map[string]float64{"USD": 1}},
	}
}

// Start seeds the snapshot and polls until ctx is cancelled. An initial
// fetch failure falls back to the cache tier when one is configured.
func (s *Service) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("initial rate fetch incomplete", zap.Error(err))
		s.seedFromCache(ctx)
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn("rate refresh incomplete", zap.Error(err))
				}
			}
		}
	}()
}

// Refresh fetches both sources and swaps in a new snapshot. A source that
// fails, or whose breaker is open, keeps its previous values flagged stale.
func (s *Service) Refresh(ctx context.Context) error {
	fiatRates, fiatErr := s.fetchFiat(ctx)
	cryptoPrices, cryptoErr := s.fetchCrypto(ctx)

	s.mu.Lock()
	next := snapshot{
		usd:         make(map[string]float64, len(s.snap.usd)),
		fetchedAt:   time.Now().UTC(),
		fiatStale:   fiatErr != nil,
		cryptoStale: cryptoErr != nil,
	}
	for code, v := range s.snap.usd {
		next.usd[code] = v
	}
	next.usd["USD"] = 1
	if fiatErr == nil {
		for code, perUSD := range fiatRates {
			next.usd[code] = 1 / perUSD
		}
	}
	if cryptoErr == nil {
		for code, usd := range cryptoPrices {
			next.usd[code] = usd
		}
	}
	if fiatErr != nil && cryptoErr != nil {
		// Both sources failed: keep the old timestamp so readiness can
		// degrade once the snapshot is genuinely old.
		next.fetchedAt = s.snap.fetchedAt
	}
	s.snap = next
	s.mu.Unlock()

	if fiatErr == nil || cryptoErr == nil {
		s.saveToCache(ctx)
	}
	if fiatErr != nil {
		return fmt.Errorf("fiat: %w", fiatErr)
	}
	if cryptoErr != nil {
		return fmt.Errorf("crypto: %w", cryptoErr)
	}
	return nil
}

func (s *Service) fetchFiat(ctx context.Context) (map[string]float64, error) {
	if err := s.fiatBreaker.Allow(); err != nil {
		s.observeBreaker("fiat", s.fiatBreaker)
		return nil, err
	}
	start := time.Now()
	rates, err := s.fiat.Fetch(ctx, "USD")
	if err != nil {
		s.fiatBreaker.RecordFailure()
		s.observeRefresh("fiat", "failure", time.Since(start), s.fiatBreaker)
		return nil, err
	}
	s.fiatBreaker.RecordSuccess()
	s.observeRefresh("fiat", "success", time.Since(start), s.fiatBreaker)
	return rates, nil
}

func (s *Service) fetchCrypto(ctx context.Context) (map[string]float64, error) {
	if err := s.cryptoBreaker.Allow(); err != nil {
		s.observeBreaker("crypto", s.cryptoBreaker)
		return nil, err
	}
	start := time.Now()
	prices, err := s.crypto.Fetch(ctx)
	if err != nil {
		s.cryptoBreaker.RecordFailure()
		s.observeRefresh("crypto", "failure", time.Since(start), s.cryptoBreaker)
		return nil, err
	}
	s.cryptoBreaker.RecordSuccess()
	s.observeRefresh("crypto", "success", time.Since(start), s.cryptoBreaker)
	return prices, nil
}

func (s *Service) observeRefresh(source, status string, d time.Duration, b *Breaker) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRateRefresh(source, status, d)
	s.metrics.SetRateBreakerState(source, breakerGauge(b.State()))
}

func (s *Service) observeBreaker(source string, b *Breaker) {
	if s.metrics == nil {
		return
	}
	s.metrics.SetRateBreakerState(source, breakerGauge(b.State()))
}

// breakerGauge maps breaker states onto the gauge convention
// 0=closed, 1=half-open, 2=open.
func breakerGauge(state BreakerState) float64 {
	switch state {
	case BreakerHalfOpen:
		return 1
	case BreakerOpen:
		return 2
	default:
		return 0
	}
}

// Rate derives the from→to rate through the USD pivot.
func (s *Service) Rate(from, to string) (Quote, error) {
	if !IsSupported(from) {
		return Quote{}, model.NewUnsupportedUnitError(from)
	}
	if !IsSupported(to) {
		return Quote{}, model.NewUnsupportedUnitError(to)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fromUSD, okFrom := s.snap.usd[from]
	toUSD, okTo := s.snap.usd[to]
	if !okFrom || !okTo || fromUSD <= 0 || toUSD <= 0 {
		return Quote{}, model.NewRateUnavailableError(from, to)
	}
	return Quote{
		From:      from,
		To:        to,
		Rate:      fromUSD / toUSD,
		FetchedAt: s.snap.fetchedAt,
		Stale:     s.staleFor(from) || s.staleFor(to),
	}, nil
}

// Convert applies the derived rate to an amount.
func (s *Service) Convert(amount float64, from, to string) (float64, Quote, error) {
	q, err := s.Rate(from, to)
	if err != nil {
		return 0, Quote{}, err
	}
	return amount * q.Rate, q, nil
}

// Quotes returns every supported rate against a base, for the rate board.
func (s *Service) Quotes(base string) ([]Quote, error) {
	if !IsSupported(base) {
		return nil, model.NewUnsupportedUnitError(base)
	}
	var out []Quote
	for _, code := range SupportedCodes() {
		if code == base {
			continue
		}
		q, err := s.Rate(base, code)
		if err != nil {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, model.NewRateUnavailableError(base, "*")
	}
	return out, nil
}

// Ready reports whether the snapshot is fresh enough to serve. Used by the
// readiness probe.
func (s *Service) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap.fetchedAt.IsZero() {
		return fmt.Errorf("no rates fetched yet")
	}
	if age := time.Since(s.snap.fetchedAt); age > s.maxAge {
		return fmt.Errorf("rates are %s old", age.Truncate(time.Second))
	}
	return nil
}

// SnapshotAge reports how old the current snapshot is. A zero snapshot
// reports an age of zero. Exposed as a gauge for alerting on stuck sources.
func (s *Service) SnapshotAge() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap.fetchedAt.IsZero() {
		return 0
	}
	return time.Since(s.snap.fetchedAt)
}

// staleFor must be called with the read lock held.
func (s *Service) staleFor(code string) bool {
	if _, crypto := cryptoIDs[code]; crypto {
		return s.snap.cryptoStale
	}
	if code == "USD" {
		return false
	}
	return s.snap.fiatStale
}

func (s *Service) seedFromCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	usd, fetchedAt, err := s.cache.Load(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRateCacheMiss()
		}
		s.log.Warn("rate cache unavailable", zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.RecordRateCacheHit()
	}
	s.mu.Lock()
	s.snap = snapshot{usd: usd, fetchedAt: fetchedAt, fiatStale: true, cryptoStale: true}
	s.mu.Unlock()
	s.log.Info("rates seeded from cache", zap.Time("fetched_at", fetchedAt))
}

func (s *Service) saveToCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.mu.RLock()
	usd := make(map[string]float64, len(s.snap.usd))
	for k, v := range s.snap.usd {
		usd[k] = v
	}
	fetchedAt := s.snap.fetchedAt
	s.mu.RUnlock()

	if err := s.cache.Save(ctx, usd, fetchedAt); err != nil {
		s.log.Warn("rate cache write failed", zap.Error(err))
	}
}
