package validation

import "fmt"

// ErrorKind classifies one validation finding.
type ErrorKind string

const (
	// MissingRequired flags a visible, required path with no resolvable
	// value. Recoverable by supplying the value.
	MissingRequired ErrorKind = "missing-required"
	// TypeMismatch flags a resolvable value whose runtime shape contradicts
	// the field's declared kind. Recoverable by correcting the value.
	TypeMismatch ErrorKind = "type-mismatch"
	// SetWhileHidden flags a stored value at a currently hidden path, stale
	// data left behind by a discriminator change. Advisory only.
	SetWhileHidden ErrorKind = "set-while-hidden"
	// UnknownPath marks a rule referencing a path the schema never declares.
	// Schema construction rejects such definitions outright, so Validate
	// never emits this kind; it exists for callers that surface definition
	// defects through the same reporting channel.
	UnknownPath ErrorKind = "unknown-path"
)

// Blocking reports whether findings of this kind flip a result invalid.
func (k ErrorKind) Blocking() bool {
	switch k {
	case MissingRequired, TypeMismatch, UnknownPath:
		return true
	}
	return false
}

// Error is one finding at one path.
type Error struct {
	Path    string    `json:"path"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error renders the finding for log lines and wrapped errors.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Blocking reports whether the finding blocks validity.
func (e Error) Blocking() bool {
	return e.Kind.Blocking()
}

// Result is the verdict for one configuration against one schema: a single
// valid flag plus every finding in schema declaration order.
type Result struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors,omitempty"`
}

// Blocking returns the findings that make the result invalid.
func (r Result) Blocking() []Error {
	var out []Error
	for _, e := range r.Errors {
		if e.Blocking() {
			out = append(out, e)
		}
	}
	return out
}

// Advisories returns the non-blocking findings.
func (r Result) Advisories() []Error {
	var out []Error
	for _, e := range r.Errors {
		if !e.Blocking() {
			out = append(out, e)
		}
	}
	return out
}
