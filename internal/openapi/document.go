// Package openapi loads and validates the service's own OpenAPI document and
// serves it over HTTP for API consumers.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a loaded and validated OpenAPI description of the HTTP API.
type Document struct {
	doc  *openapi3.T
	body []byte
}

// Load parses the OpenAPI document at the given path and validates it.
// The JSON rendering is cached so the HTTP handler does not re-marshal
// on every request.
func Load(ctx context.Context, path string) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: loading %s: %w", path, err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validating %s: %w", path, err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encoding %s: %w", path, err)
	}

	return &Document{doc: doc, body: body}, nil
}

// Title returns the API title from the info block.
func (d *Document) Title() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Title
}

// Version returns the API version from the info block.
func (d *Document) Version() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Version
}

// OperationIDs returns all operation IDs declared in the document, sorted.
func (d *Document) OperationIDs() []string {
	var ids []string
	for _, pathItem := range d.doc.Paths.Map() {
		for _, op := range pathItem.Operations() {
			if op.OperationID != "" {
				ids = append(ids, op.OperationID)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// HasOperation reports whether the document declares the given method and
// path template, e.g. ("POST", "/api/v1/evaluate").
func (d *Document) HasOperation(method, pathTemplate string) bool {
	pathItem := d.doc.Paths.Value(pathTemplate)
	if pathItem == nil {
		return false
	}
	_, ok := pathItem.Operations()[method]
	return ok
}

// Handler serves the document as application/json.
func (d *Document) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(d.body)
	}
}
