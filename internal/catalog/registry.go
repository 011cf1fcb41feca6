// Package catalog holds the calculator catalogue: every definition, the
// category index, slug lookup, and ranked search.
package catalog

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/easycalchub/calchub/model"
)

// Category display order. Categories absent from a build simply drop out;
// unknown categories sort after these, alphabetically.
var categoryOrder = []string{
	"Finance",
	"Salary",
	"Business",
	"Health",
	"Utility",
	"International",
	"Education",
	"Math",
	"Exchange",
}

// snapshot is an immutable view of the catalogue indexed by slug.
type snapshot struct {
	bySlug     map[string]*model.CalculatorDefinition
	byCategory map[string][]*model.CalculatorDefinition
	categories []string
	ordered    []*model.CalculatorDefinition
	checksum   string
}

// Registry is a read-optimized, thread-safe store of calculator
// definitions. It uses atomic pointer swap for lock-free concurrent reads.
type Registry struct {
	snap atomic.Pointer[snapshot]
}

// NewRegistry creates a Registry from the given definitions.
func NewRegistry(defs []*model.CalculatorDefinition) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// Replace validates the definitions and atomically swaps the catalogue for
// a new snapshot built from them. On error the old snapshot stays live.
func (r *Registry) Replace(defs []*model.CalculatorDefinition) error {
	if err := ValidateAll(defs); err != nil {
		return err
	}

	s := &snapshot{
		bySlug:     make(map[string]*model.CalculatorDefinition, len(defs)),
		byCategory: make(map[string][]*model.CalculatorDefinition),
	}

	var checksumParts []string
	for _, def := range defs {
		s.bySlug[def.Slug] = def
		s.byCategory[def.Category] = append(s.byCategory[def.Category], def)
		checksumParts = append(checksumParts, def.Slug+"/"+def.Title)
	}

	s.categories = orderCategories(s.byCategory)
	for _, cat := range s.categories {
		// Within a category, definitions keep their registration order.
		s.ordered = append(s.ordered, s.byCategory[cat]...)
	}

	sort.Strings(checksumParts)
	combined := strings.Join(checksumParts, ":")
	s.checksum = fmt.Sprintf("%x", sha256.Sum256([]byte(combined)))

	r.snap.Store(s)
	return nil
}

func (r *Registry) current() *snapshot {
	return r.snap.Load()
}

// Get returns the definition with the given slug. Slugs arriving percent-
// encoded from a URL path are decoded and retried before giving up.
func (r *Registry) Get(slug string) (*model.CalculatorDefinition, bool) {
	s := r.current()
	if d, ok := s.bySlug[slug]; ok {
		return d, true
	}
	decoded, err := url.PathUnescape(slug)
	if err != nil || decoded == slug {
		return nil, false
	}
	d, ok := s.bySlug[decoded]
	return d, ok
}

// All returns every definition in category display order, then by
// registration order within each category.
func (r *Registry) All() []*model.CalculatorDefinition {
	s := r.current()
	out := make([]*model.CalculatorDefinition, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Category returns the definitions of one category in registration order.
func (r *Registry) Category(name string) []*model.CalculatorDefinition {
	s := r.current()
	list := s.byCategory[name]
	out := make([]*model.CalculatorDefinition, len(list))
	copy(out, list)
	return out
}

// Categories returns category names in display order, each with its count.
func (r *Registry) Categories() []CategoryInfo {
	s := r.current()
	out := make([]CategoryInfo, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, CategoryInfo{Name: cat, Count: len(s.byCategory[cat])})
	}
	return out
}

// Len returns the number of definitions in the catalogue.
func (r *Registry) Len() int {
	return len(r.current().bySlug)
}

// Checksum returns the combined checksum of the loaded catalogue.
func (r *Registry) Checksum() string {
	return r.current().checksum
}

// CategoryInfo is one row of the category index.
type CategoryInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func orderCategories(byCategory map[string][]*model.CalculatorDefinition) []string {
	rank := make(map[string]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iKnown := rank[names[i]]
		rj, jKnown := rank[names[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return names[i] < names[j]
		}
	})
	return names
}
