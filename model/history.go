package model

import "time"

// History entry kinds.
const (
	HistoryConfig     = "config"
	HistoryScientific = "scientific"
	HistoryCurrency   = "currency"
)

// HistoryCap is the maximum number of entries retained per owner. Saving
// beyond the cap evicts the oldest entry.
const HistoryCap = 50

// HistoryEntry is one saved calculation. Config entries carry the slug and
// the inputs needed to restore the calculator; scientific and currency
// entries carry only the expression and result text.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Owner      string    `json:"-"`
	Kind       string    `json:"type"`
	Slug       string    `json:"slug,omitempty"`
	Title      string    `json:"title,omitempty"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Inputs     Inputs    `json:"inputs,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Restorable reports whether the entry carries enough state to reopen the
// calculator it came from.
func (e *HistoryEntry) Restorable() bool {
	return e.Kind == HistoryConfig && e.Slug != "" && len(e.Inputs) > 0
}
