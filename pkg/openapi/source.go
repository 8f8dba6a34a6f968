package openapi

import "path/filepath"

// Source identifies where an OpenAPI document originates. Loaders switch on
// the kind to pick a fetch strategy; the location is the path or URL the
// strategy consumes, and it names the document in errors.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// source is the one concrete Source implementation. Each constructor fixes
// the kind, so a Source never carries a kind/location pair the loader cannot
// serve.
type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }

func (s source) Location() string { return s.location }

// SourceFromFile returns a Source for a document on the local disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source naming an entry inside the loader's
// configured fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL returns a Source for a document served over HTTP. The URL is
// not parsed here; a malformed one surfaces as a load error.
func SourceFromURL(raw string) Source {
	return source{kind: SourceKindURL, location: raw}
}
