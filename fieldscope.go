// Package fieldscope resolves field visibility for configuration objects,
// normalizes stored shapes, and validates configurations against declared
// unit schemas. Schemas come from three suppliers: built in code, loaded
// from declarative catalog documents, or derived from OpenAPI operations.
package fieldscope

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/goliatone/go-fieldscope/pkg/catalog"
	"github.com/goliatone/go-fieldscope/pkg/normalize"
	pkgopenapi "github.com/goliatone/go-fieldscope/pkg/openapi"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/validation"
	"github.com/goliatone/go-fieldscope/pkg/visibility"
)

// ErrUnknownUnit reports an operation against a unit type no configured
// schema declares.
var ErrUnknownUnit = errors.New("fieldscope: unknown unit")

type stagedCatalog struct {
	fsys    fs.FS
	options []catalog.Option
}

type config struct {
	schemas   []*schema.Schema
	catalogs  []stagedCatalog
	documents []pkgopenapi.Document
	parser    pkgopenapi.Parser
	registry  *normalize.Registry
}

// Option customises the engine configuration.
type Option func(*config)

// WithSchemas registers schemas built in code.
func WithSchemas(schemas ...*schema.Schema) Option {
	return func(cfg *config) {
		cfg.schemas = append(cfg.schemas, schemas...)
	}
}

// WithCatalog stages a filesystem of declarative schema documents to load
// through pkg/catalog.
func WithCatalog(fsys fs.FS, options ...catalog.Option) Option {
	return func(cfg *config) {
		cfg.catalogs = append(cfg.catalogs, stagedCatalog{fsys: fsys, options: options})
	}
}

// WithDocument stages an OpenAPI document; its operations are derived into
// unit schemas during New.
func WithDocument(docs ...pkgopenapi.Document) Option {
	return func(cfg *config) {
		cfg.documents = append(cfg.documents, docs...)
	}
}

// WithParser injects a custom OpenAPI parser for staged documents.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(cfg *config) {
		cfg.parser = parser
	}
}

// WithFixup registers a normalization fixup under a family tag. Later
// registrations for the same tag win.
func WithFixup(tag string, fixup normalize.Fixup) Option {
	return func(cfg *config) {
		cfg.registry.Register(tag, fixup)
	}
}

// WithComparator replaces the default comparator fixup with one built from
// the supplied options.
func WithComparator(options ...normalize.ComparatorOption) Option {
	return func(cfg *config) {
		cfg.registry.Register(normalize.DefaultComparatorTag, normalize.NewComparator(options...))
	}
}

// Engine holds the configured unit schemas and the fixup registry. It is
// immutable after New and safe for concurrent use.
type Engine struct {
	schemas  map[string]*schema.Schema
	units    []string
	registry *normalize.Registry
}

// New builds an Engine from the staged schema sources. Every unit name must
// be unique across sources, every family tag must have a registered fixup,
// and at least one schema must be configured.
func New(options ...Option) (*Engine, error) {
	cfg := &config{registry: normalize.NewRegistry()}
	cfg.registry.Register(normalize.DefaultComparatorTag, normalize.NewComparator())
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.parser == nil {
		cfg.parser = NewParser()
	}

	engine := &Engine{
		schemas:  make(map[string]*schema.Schema),
		registry: cfg.registry,
	}

	for _, s := range cfg.schemas {
		if s == nil {
			return nil, errors.New("fieldscope: nil schema supplied")
		}
		if err := engine.add(s); err != nil {
			return nil, err
		}
	}
	for _, staged := range cfg.catalogs {
		store, err := catalog.LoadFS(staged.fsys, staged.options...)
		if err != nil {
			return nil, err
		}
		for _, unit := range store.Units() {
			loaded, _ := store.Schema(unit)
			if err := engine.add(loaded); err != nil {
				return nil, err
			}
		}
	}
	for _, doc := range cfg.documents {
		derived, err := cfg.parser.Schemas(context.Background(), doc)
		if err != nil {
			return nil, err
		}
		for _, s := range derived {
			if err := engine.add(s); err != nil {
				return nil, err
			}
		}
	}

	if len(engine.schemas) == 0 {
		return nil, errors.New("fieldscope: no unit schemas configured")
	}

	sort.Strings(engine.units)
	for _, unit := range engine.units {
		if err := engine.registry.CheckCoverage(engine.schemas[unit]); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

func (e *Engine) add(s *schema.Schema) error {
	if _, dup := e.schemas[s.Unit()]; dup {
		return fmt.Errorf("fieldscope: unit %q configured twice", s.Unit())
	}
	e.schemas[s.Unit()] = s
	e.units = append(e.units, s.Unit())
	return nil
}

func (e *Engine) lookup(unit string) (*schema.Schema, error) {
	s, ok := e.schemas[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return s, nil
}

// Units returns the configured unit names, sorted.
func (e *Engine) Units() []string {
	return append([]string(nil), e.units...)
}

// Schema returns the schema registered for the unit type.
func (e *Engine) Schema(unit string) (*schema.Schema, bool) {
	s, ok := e.schemas[unit]
	return s, ok
}

// Resolve computes the visibility resolution of a configuration against the
// unit's schema.
func (e *Engine) Resolve(unit string, config map[string]any) (*visibility.Resolution, error) {
	s, err := e.lookup(unit)
	if err != nil {
		return nil, err
	}
	return visibility.Resolve(config, s), nil
}

// Normalize runs the unit's family fixups over the configuration and
// returns the repaired copy together with waived requirement paths. The
// input is never mutated.
func (e *Engine) Normalize(unit string, config map[string]any) (normalize.Outcome, error) {
	s, err := e.lookup(unit)
	if err != nil {
		return normalize.Outcome{}, err
	}
	res := visibility.Resolve(config, s)
	return normalize.Apply(config, s, res, e.registry), nil
}

// Validate resolves visibility, normalizes, and checks the configuration,
// returning blocking errors and advisory findings in declaration order.
func (e *Engine) Validate(unit string, config map[string]any) (validation.Result, error) {
	s, err := e.lookup(unit)
	if err != nil {
		return validation.Result{}, err
	}
	return validation.Validate(config, s, e.registry), nil
}
