package catalog

import (
	"sort"
	"strings"

	"github.com/easycalchub/calchub/model"
)

// Result tiers. Lower ranks sort first.
const (
	rankExact = iota
	rankPrefix
	rankContains
)

// Search returns summaries matching the query, best matches first: exact
// title or slug matches, then prefix matches, then substring matches over
// title, slug, and description. Ties break alphabetically by title. An
// empty query returns the whole catalogue; a category restricts the search
// to it, except "All" which means no restriction. Matching is
// case-insensitive.
func (r *Registry) Search(query, category string) []model.Summary {
	var pool []*model.CalculatorDefinition
	if category != "" && !strings.EqualFold(category, "All") {
		pool = r.Category(category)
	} else {
		pool = r.All()
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]model.Summary, 0, len(pool))
		for _, def := range pool {
			out = append(out, def.Summarize())
		}
		return out
	}

	type ranked struct {
		rank    int
		summary model.Summary
	}
	var hits []ranked
	for _, def := range pool {
		rank, ok := rankMatch(def, q)
		if !ok {
			continue
		}
		hits = append(hits, ranked{rank: rank, summary: def.Summarize()})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].summary.Title < hits[j].summary.Title
	})

	out := make([]model.Summary, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.summary)
	}
	return out
}

func rankMatch(def *model.CalculatorDefinition, q string) (int, bool) {
	title := strings.ToLower(def.Title)
	slug := def.Slug
	switch {
	case title == q || slug == q:
		return rankExact, true
	case strings.HasPrefix(title, q) || strings.HasPrefix(slug, q):
		return rankPrefix, true
	case strings.Contains(title, q) || strings.Contains(slug, q) ||
		strings.Contains(strings.ToLower(def.Description), q):
		return rankContains, true
	}
	return 0, false
}
