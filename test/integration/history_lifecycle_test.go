package integration

import (
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/easycalchub/calchub/model"
)

type historyList struct {
	Entries []model.HistoryEntry `json:"entries"`
}

func TestHistoryLifecycle_capEviction(t *testing.T) {
	h := NewTestHarness(t)
	session := SessionHeaders("sess-cap")

	for i := 0; i < model.HistoryCap+5; i++ {
		entry := fmt.Sprintf(`{"type": "scientific", "expression": "1+%d", "result": "%d"}`, i, 1+i)
		resp := h.POST("/api/v1/history", entry, session)
		if resp.Status != http.StatusCreated {
			t.Fatalf("add %d: status = %d", i, resp.Status)
		}
	}

	var list historyList
	h.DecodeJSON(h.GET("/api/v1/history", session), http.StatusOK, &list)
	if len(list.Entries) != model.HistoryCap {
		t.Fatalf("entries = %d, want cap of %d", len(list.Entries), model.HistoryCap)
	}

	// Newest first: the final save leads, the earliest five are evicted.
	if list.Entries[0].Expression != fmt.Sprintf("1+%d", model.HistoryCap+4) {
		t.Errorf("newest entry = %q", list.Entries[0].Expression)
	}
	oldest := list.Entries[len(list.Entries)-1]
	if oldest.Expression != "1+5" {
		t.Errorf("oldest surviving entry = %q, want 1+5", oldest.Expression)
	}
}

func TestHistoryLifecycle_filePersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	session := SessionHeaders("sess-persist")

	h1 := NewTestHarness(t, WithHistoryFile(path))
	resp := h1.POST("/api/v1/history",
		`{"type": "config", "slug": "sip-calculator", "expression": "SIP", "result": "₹1,02,340", "inputs": {"monthly": 5000}}`,
		session)
	var stored model.HistoryEntry
	h1.DecodeJSON(resp, http.StatusCreated, &stored)

	// A second harness over the same file sees the saved entry.
	h2 := NewTestHarness(t, WithHistoryFile(path))
	var list historyList
	h2.DecodeJSON(h2.GET("/api/v1/history", session), http.StatusOK, &list)
	if len(list.Entries) != 1 {
		t.Fatalf("entries after restart = %d, want 1", len(list.Entries))
	}
	if list.Entries[0].ID != stored.ID {
		t.Errorf("entry id = %q, want %q", list.Entries[0].ID, stored.ID)
	}
}

func TestHistoryLifecycle_scopedClear(t *testing.T) {
	h := NewTestHarness(t)
	session := SessionHeaders("sess-clear")

	h.POST("/api/v1/history", `{"type": "scientific", "expression": "2*3", "result": "6"}`, session)
	h.POST("/api/v1/history", `{"type": "currency", "expression": "100 USD → INR", "result": "8,300"}`, session)

	// Clearing only the currency entries keeps the scientific one.
	resp := h.DELETE("/api/v1/history?type=currency", session)
	if resp.Status != http.StatusNoContent {
		t.Fatalf("clear status = %d", resp.Status)
	}

	var list historyList
	h.DecodeJSON(h.GET("/api/v1/history", session), http.StatusOK, &list)
	if len(list.Entries) != 1 || list.Entries[0].Kind != model.HistoryScientific {
		t.Errorf("surviving entries = %+v", list.Entries)
	}
}

func TestHistoryLifecycle_expressionEntryRestoresText(t *testing.T) {
	h := NewTestHarness(t)
	session := SessionHeaders("sess-exp")

	resp := h.POST("/api/v1/history",
		`{"type": "scientific", "expression": "sin(90)", "result": "1"}`, session)
	var stored model.HistoryEntry
	h.DecodeJSON(resp, http.StatusCreated, &stored)

	var restored struct {
		Kind       string `json:"type"`
		Expression string `json:"expression"`
		Result     string `json:"result"`
		Slug       string `json:"slug"`
	}
	h.DecodeJSON(h.GET("/api/v1/history/"+stored.ID+"/restore", session), http.StatusOK, &restored)

	if restored.Expression != "sin(90)" || restored.Result != "1" {
		t.Errorf("restored = %+v", restored)
	}
	if restored.Slug != "" {
		t.Errorf("expression entry restored a slug: %q", restored.Slug)
	}
}
