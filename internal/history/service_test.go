package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/model"
)

func configEntry(slug string) model.HistoryEntry {
	return model.HistoryEntry{
		Kind:   model.HistoryConfig,
		Slug:   slug,
		Title:  "EMI Calculator",
		Result: "₹12,399",
		Inputs: model.Inputs{"principal": model.Number(1000000)},
	}
}

func TestService_addAssignsIDAndPrepends(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	first, err := svc.Add(ctx, "alice", configEntry("emi-calculator"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == "" {
		t.Error("entry should get an id")
	}
	if first.CreatedAt.IsZero() {
		t.Error("entry should get a timestamp")
	}

	second, err := svc.Add(ctx, "alice", configEntry("sip-calculator"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.ID == first.ID {
		t.Error("ids must be unique")
	}

	entries, err := svc.List(ctx, "alice", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Slug != "sip-calculator" {
		t.Errorf("newest entry should be first, got %q", entries[0].Slug)
	}
}

func TestService_capEvictsOldest(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	for i := 0; i < model.HistoryCap+10; i++ {
		if _, err := svc.Add(ctx, "alice", configEntry(fmt.Sprintf("calc-%d", i))); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	entries, err := svc.List(ctx, "alice", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != model.HistoryCap {
		t.Fatalf("got %d entries, want %d", len(entries), model.HistoryCap)
	}
	if entries[0].Slug != fmt.Sprintf("calc-%d", model.HistoryCap+9) {
		t.Errorf("newest should survive, got %q", entries[0].Slug)
	}
	for _, e := range entries {
		if e.Slug == "calc-0" {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestService_capEvictionsAreCounted(t *testing.T) {
	m := observability.InitMetrics(prometheus.NewRegistry(), observability.MetricsOptions{})
	svc := NewService(NewMemoryStore(), zap.NewNop(), m)
	ctx := context.Background()

	for i := 0; i < model.HistoryCap+3; i++ {
		if _, err := svc.Add(ctx, "alice", configEntry(fmt.Sprintf("calc-%d", i))); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	if got := testutil.ToFloat64(m.HistoryEvictionsTotal); got != 3 {
		t.Errorf("evictions counted = %v, want 3", got)
	}
}

func TestService_ownerScoping(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "alice", configEntry("emi-calculator")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, model.AnonymousOwner, configEntry("sip-calculator")); err != nil {
		t.Fatal(err)
	}

	entries, _ := svc.List(ctx, "alice", Filter{})
	if len(entries) != 1 || entries[0].Slug != "emi-calculator" {
		t.Errorf("alice sees %+v", entries)
	}
	entries, _ = svc.List(ctx, "bob", Filter{})
	if len(entries) != 0 {
		t.Errorf("bob should see nothing, got %d", len(entries))
	}
}

func TestService_filterAndClear(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	svc.Add(ctx, "alice", configEntry("emi-calculator"))
	svc.Add(ctx, "alice", configEntry("sip-calculator"))
	svc.Add(ctx, "alice", model.HistoryEntry{
		Kind: model.HistoryScientific, Expression: "sin(90)", Result: "1",
	})

	entries, _ := svc.List(ctx, "alice", Filter{Kind: model.HistoryScientific})
	if len(entries) != 1 || entries[0].Expression != "sin(90)" {
		t.Errorf("kind filter: got %+v", entries)
	}
	entries, _ = svc.List(ctx, "alice", Filter{Slug: "emi-calculator"})
	if len(entries) != 1 {
		t.Errorf("slug filter: got %d", len(entries))
	}

	if err := svc.Clear(ctx, "alice", Filter{Slug: "emi-calculator"}); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ = svc.List(ctx, "alice", Filter{})
	if len(entries) != 2 {
		t.Errorf("after scoped clear: got %d, want 2", len(entries))
	}

	if err := svc.Clear(ctx, "alice", Filter{}); err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	entries, _ = svc.List(ctx, "alice", Filter{})
	if len(entries) != 0 {
		t.Errorf("after full clear: got %d", len(entries))
	}
}

func TestService_restore(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	saved, _ := svc.Add(ctx, "alice", configEntry("emi-calculator"))
	expr, _ := svc.Add(ctx, "alice", model.HistoryEntry{
		Kind: model.HistoryScientific, Expression: "2^10", Result: "1024",
	})

	r, err := svc.Restore(ctx, "alice", saved.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if r.Slug != "emi-calculator" {
		t.Errorf("got slug %q", r.Slug)
	}
	if r.Inputs.Num("principal") != 1000000 {
		t.Error("inputs should restore verbatim")
	}

	r, err = svc.Restore(ctx, "alice", expr.ID)
	if err != nil {
		t.Fatalf("Restore expression: %v", err)
	}
	if r.Slug != "" || len(r.Inputs) != 0 {
		t.Error("expression entries restore display only")
	}
	if r.Expression != "2^10" || r.Result != "1024" {
		t.Errorf("got %q = %q", r.Expression, r.Result)
	}

	if _, err := svc.Restore(ctx, "bob", saved.ID); err == nil {
		t.Error("restore must be owner scoped")
	}
	var env *model.ErrorEnvelope
	if _, err := svc.Restore(ctx, "alice", "no-such-id"); !errors.As(err, &env) || env.Code != model.ErrNotFound {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestService_rejectsInvalidEntries(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop(), nil)
	ctx := context.Background()

	bad := []model.HistoryEntry{
		{Kind: model.HistoryConfig},                 // missing slug
		{Kind: model.HistoryScientific},             // missing expression
		{Kind: "bogus", Expression: "1+1"},          // unknown kind
		{Kind: model.HistoryCurrency, Result: "82"}, // missing expression
	}
	for i, e := range bad {
		if _, err := svc.Add(ctx, "alice", e); err == nil {
			t.Errorf("entry %d should be rejected", i)
		}
	}
}

func TestFileStore_roundTripAndRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	ctx := context.Background()

	store := NewFileStore(path, zap.NewNop())
	svc := NewService(store, zap.NewNop(), nil)
	if _, err := svc.Add(ctx, "alice", configEntry("emi-calculator")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A fresh store over the same file sees the persisted entries.
	reopened := NewFileStore(path, zap.NewNop())
	entries, err := reopened.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Owner != "alice" {
		t.Fatalf("reopened store: got %+v", entries)
	}

	// A corrupt file starts empty instead of failing.
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	corrupt := NewFileStore(path, zap.NewNop())
	entries, err = corrupt.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load after corrupt: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("corrupt file should start empty, got %d", len(entries))
	}

	// Writes after a corrupt read still serve from memory.
	if err := corrupt.Save(ctx, "alice", []model.HistoryEntry{configEntry("sip-calculator")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, _ = corrupt.Load(ctx, "alice")
	if len(entries) != 1 {
		t.Errorf("memory state should be authoritative, got %d", len(entries))
	}
}
