package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const specPath = "../../api/openapi.yaml"

func loadTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(context.Background(), specPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return doc
}

func TestLoad_validDocument(t *testing.T) {
	doc := loadTestDocument(t)

	if doc.Title() != "CalcHub API" {
		t.Errorf("title = %q, want CalcHub API", doc.Title())
	}
	if doc.Version() == "" {
		t.Error("version should not be empty")
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(context.Background(), "testdata/does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_invalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	// Missing required info block.
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\npaths: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), path)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDocument_declaresAllRoutes(t *testing.T) {
	doc := loadTestDocument(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/categories"},
		{http.MethodGet, "/api/v1/calculators"},
		{http.MethodGet, "/api/v1/calculators/{slug}"},
		{http.MethodPost, "/api/v1/calculators/{slug}/calculate"},
		{http.MethodPost, "/api/v1/evaluate"},
		{http.MethodPost, "/api/v1/convert"},
		{http.MethodGet, "/api/v1/rates"},
		{http.MethodGet, "/api/v1/history"},
		{http.MethodPost, "/api/v1/history"},
		{http.MethodDelete, "/api/v1/history"},
		{http.MethodGet, "/api/v1/history/{id}/restore"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/ready"},
	}

	for _, route := range routes {
		if !doc.HasOperation(route.method, route.path) {
			t.Errorf("document missing %s %s", route.method, route.path)
		}
	}
}

func TestDocument_operationIDs(t *testing.T) {
	doc := loadTestDocument(t)

	ids := doc.OperationIDs()
	if len(ids) == 0 {
		t.Fatal("expected operation IDs")
	}

	want := map[string]bool{
		"listCategories":  false,
		"listCalculators": false,
		"getCalculator":   false,
		"calculate":       false,
		"evaluate":        false,
		"convert":         false,
		"getRates":        false,
		"listHistory":     false,
		"addHistory":      false,
		"clearHistory":    false,
		"restoreHistory":  false,
	}
	for _, id := range ids {
		if _, ok := want[id]; ok {
			want[id] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Errorf("missing operation ID %q", id)
		}
	}

	// Sorted ascending.
	for i := 1; i < len(ids); i++ {
		if ids[i] < ids[i-1] {
			t.Errorf("operation IDs not sorted at index %d", i)
		}
	}
}

func TestDocument_hasOperation_unknown(t *testing.T) {
	doc := loadTestDocument(t)

	if doc.HasOperation(http.MethodGet, "/api/v1/unknown") {
		t.Error("unknown path should not be declared")
	}
	if doc.HasOperation(http.MethodPatch, "/api/v1/history") {
		t.Error("undeclared method should not be reported")
	}
}

func TestDocument_handler(t *testing.T) {
	doc := loadTestDocument(t)

	rec := httptest.NewRecorder()
	doc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if _, ok := body["paths"]; !ok {
		t.Error("response should contain a paths object")
	}
}
