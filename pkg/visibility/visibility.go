// Package visibility decides which schema fields are active for a given
// configuration object and which of those carry an effective requirement.
//
// Resolution is a single pass. Every rule reads the raw configuration as
// supplied by the caller; a field hidden by its own rule still contributes
// its raw value to other fields' rules, and outcomes are never fed back
// into further evaluation.
package visibility

import (
	"github.com/goliatone/go-fieldscope/pkg/rules"
	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// Visible reports whether the field is active for the configuration. A
// field with no rule is always visible. A show set gates visibility on a
// match, a hide set vetoes it on a match, and when both are present the
// show set must match while the hide set must not.
func Visible(config map[string]any, field schema.FieldDefinition) bool {
	rule := field.Rule
	if rule == nil {
		return true
	}
	if rule.Show != nil && !rules.Matches(config, rule.Show) {
		return false
	}
	if rule.Hide != nil && rules.Matches(config, rule.Hide) {
		return false
	}
	return true
}

// Resolution captures the outcome of resolving a schema against one
// configuration: per-path visibility and effective requirement, in field
// declaration order. Paths outside the schema report not visible and not
// required.
type Resolution struct {
	visible  map[string]bool
	required map[string]bool
	order    []string
}

// Resolve evaluates every field's rule against the configuration in one
// pass. A field is effectively required only when it is both declared
// required and visible, so the required set is always a subset of the
// visible set.
func Resolve(config map[string]any, s *schema.Schema) *Resolution {
	fields := s.Fields()
	res := &Resolution{
		visible:  make(map[string]bool, len(fields)),
		required: make(map[string]bool, len(fields)),
		order:    make([]string, 0, len(fields)),
	}
	for _, field := range fields {
		on := Visible(config, field)
		res.visible[field.Path] = on
		res.required[field.Path] = on && field.Required
		res.order = append(res.order, field.Path)
	}
	return res
}

// Visible reports whether the path resolved visible.
func (r *Resolution) Visible(path string) bool {
	return r.visible[path]
}

// Required reports whether the path carries an effective requirement.
func (r *Resolution) Required(path string) bool {
	return r.required[path]
}

// VisiblePaths returns the visible paths in schema declaration order.
func (r *Resolution) VisiblePaths() []string {
	out := make([]string, 0, len(r.order))
	for _, path := range r.order {
		if r.visible[path] {
			out = append(out, path)
		}
	}
	return out
}

// RequiredPaths returns the effectively required paths in schema
// declaration order.
func (r *Resolution) RequiredPaths() []string {
	out := make([]string, 0, len(r.order))
	for _, path := range r.order {
		if r.required[path] {
			out = append(out, path)
		}
	}
	return out
}

// Len returns the number of fields the resolution covers.
func (r *Resolution) Len() int {
	return len(r.order)
}
