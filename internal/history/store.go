// Package history persists a per-owner log of recent calculations. The
// service owns cap and ordering semantics; stores only load and save whole
// owner lists so every backend behaves identically.
package history

import (
	"context"

	"github.com/easycalchub/calchub/model"
)

// Store persists history entries scoped to an owner.
type Store interface {
	// Load returns the owner's entries, newest first. Unknown owners
	// return an empty list, not an error.
	Load(ctx context.Context, owner string) ([]model.HistoryEntry, error)

	// Save replaces the owner's entries with the given list. The list is
	// already ordered and capped by the caller.
	Save(ctx context.Context, owner string, entries []model.HistoryEntry) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// Filter narrows List and Clear to a kind, a calculator slug, or both.
// The zero value matches everything.
type Filter struct {
	Kind string
	Slug string
}

func (f Filter) matches(e *model.HistoryEntry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Slug != "" && e.Slug != f.Slug {
		return false
	}
	return true
}
