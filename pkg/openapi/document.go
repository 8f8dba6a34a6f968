package openapi

import "errors"

// Document pairs a raw OpenAPI payload with the Source it was fetched from.
// Parsers consume this wrapper instead of kin-openapi structs so the public
// surface stays decoupled from the parsing library.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps a fetched payload. Both a source and a non-empty payload
// are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin the document was fetched from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location names the origin, or returns the empty string for the zero
// Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
