// Package catalog loads unit schemas from declarative JSON or YAML
// documents. A document either declares one unit (`unit` plus `fields`) or
// several (`units`), and a catalog may span any number of files; unit names
// must be unique across all of them.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// ErrDuplicateUnit reports a unit name declared by more than one catalog
// document.
var ErrDuplicateUnit = errors.New("catalog: duplicate unit")

// Store is an immutable set of unit schemas produced by LoadFS or LoadFile.
// It is safe for concurrent use.
type Store struct {
	schemas map[string]*schema.Schema
	sources map[string]string
}

// Schema returns the schema registered for the unit type.
func (s *Store) Schema(unit string) (*schema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	found, ok := s.schemas[unit]
	return found, ok
}

// Units returns the registered unit names, sorted.
func (s *Store) Units() []string {
	if s == nil {
		return nil
	}
	units := make([]string, 0, len(s.schemas))
	for unit := range s.schemas {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}

// Len returns the number of registered units.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.schemas)
}

// Source returns the document location that declared the unit.
func (s *Store) Source(unit string) (string, bool) {
	if s == nil {
		return "", false
	}
	location, ok := s.sources[unit]
	return location, ok
}

type settings struct {
	extensions map[string]bool
}

// Option adjusts how the catalog walks and decodes documents.
type Option func(*settings)

// WithExtensions replaces the file extensions LoadFS accepts. Defaults to
// .json, .yaml, and .yml.
func WithExtensions(exts ...string) Option {
	return func(cfg *settings) {
		cfg.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.extensions[ext] = true
		}
	}
}

func newSettings(options ...Option) settings {
	cfg := settings{
		extensions: map[string]bool{".json": true, ".yaml": true, ".yml": true},
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// LoadFS walks the filesystem and builds a Store from every schema document
// it finds. Definition defects, duplicate unit names, and undecodable
// documents abort the load with the offending file named; a catalog without
// a single unit is also an error.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("catalog: filesystem is required")
	}
	cfg := newSettings(options...)
	store := newStore()

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !cfg.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		return store.add(document{location: path, raw: raw})
	})
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, errors.New("catalog: no schema documents found")
	}
	return store, nil
}

// LoadFile builds a Store from a single document on disk.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	store := newStore()
	if err := store.add(document{location: path, raw: raw}); err != nil {
		return nil, err
	}
	return store, nil
}

func newStore() *Store {
	return &Store{
		schemas: make(map[string]*schema.Schema),
		sources: make(map[string]string),
	}
}

func (s *Store) add(doc document) error {
	payload, err := decode(doc)
	if err != nil {
		return err
	}
	for _, unit := range payload.units() {
		if previous, dup := s.sources[unit.Unit]; dup {
			return fmt.Errorf("%w: %q in %s already declared in %s",
				ErrDuplicateUnit, unit.Unit, doc.location, previous)
		}
		sanitizeFields(unit.Fields)
		built, err := schema.New(unit.Unit, unit.Fields)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", doc.location, err)
		}
		s.schemas[unit.Unit] = built
		s.sources[unit.Unit] = doc.location
	}
	return nil
}
