// Package testsupport carries fixture helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-fieldscope/pkg/openapi"
	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// MustSchema builds a unit schema, failing the test on definition defects.
func MustSchema(t *testing.T, unit string, fields []schema.FieldDefinition) *schema.Schema {
	t.Helper()

	s, err := schema.New(unit, fields)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return s
}

// Config parses a JSON literal into a configuration map. Numbers follow
// encoding/json semantics and arrive as float64.
func Config(t *testing.T, literal string) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal([]byte(literal), &out); err != nil {
		t.Fatalf("parse config literal: %v", err)
	}
	return out
}

// CatalogFS builds an in-memory document filesystem for catalog tests,
// keyed by file name.
func CatalogFS(documents map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(documents))
	for name, body := range documents {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

// LoadDocument reads an OpenAPI fixture from disk and wraps it in a Document
// with a file source, so parser tests see the same origin metadata the
// loader would attach.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("wrap fixture %s: %v", path, err)
	}
	return doc
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
