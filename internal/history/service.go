package history

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

// Service applies history semantics on top of a Store: ULID identifiers,
// newest-first ordering, and the per-owner cap.
type Service struct {
	store   Store
	log     *zap.Logger
	metrics *observability.Metrics

	// mu serializes read-modify-write cycles so concurrent saves cannot
	// drop each other's entries.
	mu sync.Mutex
}

// NewService creates a history service over the given store. A nil metrics
// disables instrumentation.
func NewService(store Store, log *zap.Logger, metrics *observability.Metrics) *Service {
	return &Service{store: store, log: log, metrics: metrics}
}

// Add prepends an entry to the owner's history. The entry gets a ULID and a
// timestamp; anything past the cap is evicted from the tail.
func (s *Service) Add(ctx context.Context, owner string, e model.HistoryEntry) (model.HistoryEntry, error) {
	if err := validateEntry(&e); err != nil {
		return model.HistoryEntry{}, err
	}
	e.ID = ulid.Make().String()
	e.Owner = owner
	e.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, owner)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	entries := append([]model.HistoryEntry{e}, current...)
	if len(entries) > model.HistoryCap {
		if s.metrics != nil {
			s.metrics.RecordHistoryEvictions(len(entries) - model.HistoryCap)
		}
		entries = entries[:model.HistoryCap]
	}
	if err := s.store.Save(ctx, owner, entries); err != nil {
		return model.HistoryEntry{}, err
	}
	return e, nil
}

// List returns the owner's entries, newest first, narrowed by the filter.
func (s *Service) List(ctx context.Context, owner string, f Filter) ([]model.HistoryEntry, error) {
	entries, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]model.HistoryEntry, 0, len(entries))
	for i := range entries {
		if f.matches(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out, nil
}

// Clear removes the owner's entries matching the filter. A zero filter
// wipes the whole history.
func (s *Service) Clear(ctx context.Context, owner string, f Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.Load(ctx, owner)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for i := range entries {
		if !f.matches(&entries[i]) {
			kept = append(kept, entries[i])
		}
	}
	return s.store.Save(ctx, owner, kept)
}

// Restored is the state handed back when an entry is reopened. Config
// entries restore the calculator inputs verbatim; expression and currency
// entries only restore their display strings.
type Restored struct {
	Kind       string       `json:"type"`
	Slug       string       `json:"slug,omitempty"`
	Inputs     model.Inputs `json:"inputs,omitempty"`
	Expression string       `json:"expression,omitempty"`
	Result     string       `json:"result,omitempty"`
}

// Restore looks up an entry by id and returns its restorable state.
func (s *Service) Restore(ctx context.Context, owner, id string) (*Restored, error) {
	entries, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		if e.ID != id {
			continue
		}
		if e.Restorable() {
			return &Restored{Kind: e.Kind, Slug: e.Slug, Inputs: e.Inputs.Clone()}, nil
		}
		return &Restored{Kind: e.Kind, Expression: e.Expression, Result: e.Result}, nil
	}
	return nil, model.NewNotFoundError("history entry not found")
}

// Ping reports store health for readiness checks.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func validateEntry(e *model.HistoryEntry) error {
	switch e.Kind {
	case model.HistoryConfig:
		if e.Slug == "" {
			return model.NewValidationError([]model.FieldError{{
				Field: "slug", Code: "REQUIRED", Message: "config entries require a calculator slug",
			}})
		}
	case model.HistoryScientific, model.HistoryCurrency:
		if strings.TrimSpace(e.Expression) == "" {
			return model.NewValidationError([]model.FieldError{{
				Field: "expression", Code: "REQUIRED", Message: "expression entries require an expression",
			}})
		}
	default:
		return model.NewValidationError([]model.FieldError{{
			Field: "type", Code: "INVALID_OPTION", Message: "unknown history entry type",
		}})
	}
	return nil
}
