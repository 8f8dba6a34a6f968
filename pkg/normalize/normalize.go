// Package normalize repairs family-specific configuration shape after a
// discriminator choice. Fixups are keyed by family tag in a registry built
// once at schema load, and every fixup must be idempotent: applying it to
// its own output changes nothing.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/visibility"
)

// Fixup repairs one field family. It receives the configuration as it
// stands, the family it is registered for, and the visibility resolution
// computed from the raw input. It returns the configuration to carry
// forward, which must be the input object itself when nothing changed and
// a copy when something did, plus the paths whose requirement the repair
// waives for this resolution.
type Fixup interface {
	Apply(config map[string]any, family schema.Family, res *visibility.Resolution) (map[string]any, []string)
}

// FixupFunc adapts a function into a Fixup.
type FixupFunc func(config map[string]any, family schema.Family, res *visibility.Resolution) (map[string]any, []string)

// Apply delegates to the underlying function.
func (fn FixupFunc) Apply(config map[string]any, family schema.Family, res *visibility.Resolution) (map[string]any, []string) {
	return fn(config, family, res)
}

// Registry maps family tags to fixups. Build it before publishing a schema
// for resolution; Register is not safe to call concurrently with Lookup.
type Registry struct {
	fixups map[string]Fixup
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fixups: make(map[string]Fixup)}
}

// Register binds a fixup to a family tag, replacing any previous binding.
// An empty tag or nil fixup is ignored.
func (r *Registry) Register(tag string, fixup Fixup) {
	if tag == "" || fixup == nil {
		return
	}
	if r.fixups == nil {
		r.fixups = make(map[string]Fixup)
	}
	r.fixups[tag] = fixup
}

// Lookup returns the fixup bound to the tag.
func (r *Registry) Lookup(tag string) (Fixup, bool) {
	if r == nil || r.fixups == nil {
		return nil, false
	}
	fixup, ok := r.fixups[tag]
	return fixup, ok
}

// Tags returns the registered family tags, sorted.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}
	tags := make([]string, 0, len(r.fixups))
	for tag := range r.fixups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of registered fixups.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fixups)
}

// CheckCoverage verifies that every family tag the schema declares has a
// registered fixup. Call it when the schema is loaded so a missing strategy
// surfaces once, not per configuration.
func (r *Registry) CheckCoverage(s *schema.Schema) error {
	if s == nil {
		return nil
	}
	missing := make([]string, 0)
	seen := make(map[string]bool)
	for _, family := range s.Families() {
		if seen[family.Tag] {
			continue
		}
		seen[family.Tag] = true
		if _, ok := r.Lookup(family.Tag); !ok {
			missing = append(missing, family.Tag)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("normalize: unit %q declares family tag(s) with no registered fixup: %s",
		s.Unit(), strings.Join(missing, ", "))
}

// Outcome is the result of a normalization pass: the effective
// configuration plus the requirement waivers the fixups granted.
type Outcome struct {
	// Config is the effective configuration. It is the caller's input
	// object when no fixup changed anything, otherwise a copy.
	Config map[string]any

	waived map[string]bool
}

// Waived reports whether a fixup lifted the requirement at path for this
// resolution.
func (o Outcome) Waived(path string) bool {
	return o.waived[path]
}

// WaivedPaths returns the waived paths, sorted.
func (o Outcome) WaivedPaths() []string {
	if len(o.waived) == 0 {
		return nil
	}
	paths := make([]string, 0, len(o.waived))
	for path := range o.waived {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Apply runs the registered fixup of every family the schema declares, in
// family declaration order, threading the configuration through. Families
// whose tag has no registered fixup are skipped; CheckCoverage exists to
// catch that at load time. The input configuration is never mutated.
func Apply(config map[string]any, s *schema.Schema, res *visibility.Resolution, reg *Registry) Outcome {
	out := Outcome{Config: config}
	if s == nil {
		return out
	}
	for _, family := range s.Families() {
		fixup, ok := reg.Lookup(family.Tag)
		if !ok {
			continue
		}
		next, waived := fixup.Apply(out.Config, family, res)
		if next != nil {
			out.Config = next
		}
		for _, path := range waived {
			if out.waived == nil {
				out.waived = make(map[string]bool)
			}
			out.waived[path] = true
		}
	}
	return out
}
