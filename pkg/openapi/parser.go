package openapi

import (
	"context"

	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// Parser derives unit schemas from an OpenAPI document: one schema per
// operation that declares a request body, with object properties flattened
// to dotted field paths.
type Parser interface {
	Schemas(ctx context.Context, doc Document) ([]*schema.Schema, error)
}

// ParserOptions exposes parsing toggles.
type ParserOptions struct {
	// ResolveReferences controls whether the parser eagerly resolves $ref
	// pointers and validates the document. Defaults to true.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths or without any
	// derivable unit. Defaults to false.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for documents that yield no units.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/openapi call this helper to
// stay consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: false,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
