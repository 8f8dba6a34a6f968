// Package schema holds the immutable data model the engine resolves
// against: field definitions, visibility rules, and the per-unit Schema
// container with its authoring-time checks.
package schema

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-fieldscope/pkg/fieldpath"
)

// Schema is the ordered field list for one unit type. Build it with New; a
// Schema that came back without error is read-only and safe to share across
// arbitrarily many concurrent resolutions.
type Schema struct {
	unit     string
	fields   []FieldDefinition
	byPath   map[string]int
	families []Family
}

// Family is one normalization instance: the fields sharing a family tag and
// a parent path, in schema declaration order.
type Family struct {
	Tag    string
	Prefix string
	Fields []FieldDefinition
}

// Member returns the family field whose terminal path segment matches name.
func (f Family) Member(name string) (FieldDefinition, bool) {
	for _, field := range f.Fields {
		if _, leaf := fieldpath.Split(field.Path); leaf == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// New validates the definitions and builds the Schema. Every defect is
// collected into one DefinitionError: malformed or duplicate paths, unknown
// kinds, enum kinds without declared values, present-but-empty rule sets,
// conditions with empty value sets, and rules referencing paths the schema
// does not declare. A rule aimed at an unknown path therefore aborts loading
// here instead of surfacing per configuration.
func New(unit string, fields []FieldDefinition) (*Schema, error) {
	if unit == "" {
		return nil, errors.New("schema: unit name is required")
	}

	var issues []Issue
	byPath := make(map[string]int, len(fields))
	cloned := make([]FieldDefinition, 0, len(fields))

	for i, field := range fields {
		cloned = append(cloned, field.Clone())

		if err := fieldpath.Validate(field.Path); err != nil {
			issues = append(issues, Issue{Path: field.Path, Message: "malformed field path"})
			continue
		}
		if _, dup := byPath[field.Path]; dup {
			issues = append(issues, Issue{Path: field.Path, Message: "duplicate field path"})
			continue
		}
		byPath[field.Path] = i

		if !field.Kind.Valid() {
			issues = append(issues, Issue{Path: field.Path, Message: fmt.Sprintf("unknown kind %q", field.Kind)})
		}
		if field.Kind == KindEnum && len(field.Enum) == 0 {
			issues = append(issues, Issue{Path: field.Path, Message: "enum kind requires declared values"})
		}
		issues = append(issues, ruleIssues(field)...)
	}

	// Rule targets are checked after every declared path is known.
	for _, field := range cloned {
		if field.Rule == nil {
			continue
		}
		issues = append(issues, targetIssues(field.Path, "show", field.Rule.Show, byPath)...)
		issues = append(issues, targetIssues(field.Path, "hide", field.Rule.Hide, byPath)...)
	}

	if len(issues) > 0 {
		return nil, &DefinitionError{Unit: unit, Issues: issues}
	}

	return &Schema{
		unit:     unit,
		fields:   cloned,
		byPath:   byPath,
		families: buildFamilies(cloned),
	}, nil
}

// MustNew panics when construction fails. Useful for fixtures and tests.
func MustNew(unit string, fields []FieldDefinition) *Schema {
	s, err := New(unit, fields)
	if err != nil {
		panic(err)
	}
	return s
}

func ruleIssues(field FieldDefinition) []Issue {
	if field.Rule == nil {
		return nil
	}
	var issues []Issue
	issues = append(issues, ruleSetIssues(field.Path, "show", field.Rule.Show)...)
	issues = append(issues, ruleSetIssues(field.Path, "hide", field.Rule.Hide)...)
	return issues
}

func ruleSetIssues(fieldPath, label string, rs RuleSet) []Issue {
	if rs == nil {
		return nil
	}
	var issues []Issue
	if len(rs) == 0 {
		issues = append(issues, Issue{Path: fieldPath, Message: label + " rule is present but empty"})
		return issues
	}
	seen := make(map[string]bool, len(rs))
	for _, cond := range rs {
		if err := fieldpath.Validate(cond.Path); err != nil {
			issues = append(issues, Issue{Path: fieldPath, Message: fmt.Sprintf("%s condition has malformed path %q", label, cond.Path)})
			continue
		}
		if seen[cond.Path] {
			issues = append(issues, Issue{Path: fieldPath, Message: fmt.Sprintf("%s condition repeats path %q", label, cond.Path)})
		}
		seen[cond.Path] = true
		if len(cond.Values) == 0 {
			issues = append(issues, Issue{Path: fieldPath, Message: fmt.Sprintf("%s condition %q has no allowed values", label, cond.Path)})
		}
	}
	return issues
}

func targetIssues(fieldPath, label string, rs RuleSet, byPath map[string]int) []Issue {
	var issues []Issue
	for _, cond := range rs {
		if fieldpath.Validate(cond.Path) != nil {
			continue
		}
		if _, ok := byPath[cond.Path]; !ok {
			issues = append(issues, Issue{Path: fieldPath, Message: fmt.Sprintf("%s rule references unknown path %q", label, cond.Path)})
		}
	}
	return issues
}

func buildFamilies(fields []FieldDefinition) []Family {
	var order []string
	grouped := make(map[string]*Family)
	for _, field := range fields {
		if field.FamilyTag == "" {
			continue
		}
		prefix, _ := fieldpath.Split(field.Path)
		key := field.FamilyTag + "\x00" + prefix
		family, ok := grouped[key]
		if !ok {
			family = &Family{Tag: field.FamilyTag, Prefix: prefix}
			grouped[key] = family
			order = append(order, key)
		}
		family.Fields = append(family.Fields, field)
	}
	out := make([]Family, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out
}

// Unit returns the unit type this schema describes.
func (s *Schema) Unit() string {
	return s.unit
}

// Len returns the number of field definitions.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns the definitions in declaration order. The slice is fresh
// on every call; callers must treat the definitions as read-only.
func (s *Schema) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a definition by its path.
func (s *Schema) Field(path string) (FieldDefinition, bool) {
	idx, ok := s.byPath[path]
	if !ok {
		return FieldDefinition{}, false
	}
	return s.fields[idx], true
}

// Families returns the normalization instances in first-appearance order.
func (s *Schema) Families() []Family {
	out := make([]Family, len(s.families))
	copy(out, s.families)
	return out
}
