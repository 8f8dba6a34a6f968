package schema

// Kind tags the runtime shape a field's value must take.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindEnum    Kind = "enum"
)

// Valid reports whether the kind is one of the declared tags.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindObject, KindArray, KindEnum:
		return true
	}
	return false
}

// FieldDefinition declares one addressable configuration slot. Definitions
// are schema-time constants: once a Schema is built they are never mutated.
type FieldDefinition struct {
	// Path is the dotted address of the field's value, unique per schema.
	Path string `json:"path" yaml:"path"`
	// Kind declares the value's shape.
	Kind Kind `json:"kind" yaml:"kind"`
	// Required marks the field as mandatory while it is visible. Hidden
	// fields are never required.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	// Enum lists the closed value set for KindEnum fields.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`
	// Rule gates visibility. A nil rule means unconditionally visible.
	Rule *VisibilityRule `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	// FamilyTag groups fields that share a normalization strategy.
	FamilyTag string `json:"family,omitempty" yaml:"family,omitempty"`

	// Presentation metadata carried for catalog consumers; the engine never
	// reads these.
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Clone returns a deep copy safe to hand out without aliasing schema state.
func (f FieldDefinition) Clone() FieldDefinition {
	out := f
	if len(f.Enum) > 0 {
		out.Enum = append([]any(nil), f.Enum...)
	}
	if f.Rule != nil {
		rule := f.Rule.Clone()
		out.Rule = &rule
	}
	return out
}

// VisibilityRule pairs an optional show gate with an optional hide veto. A
// nil RuleSet means that half of the rule is absent; a present-but-empty
// RuleSet is a definition error caught by New.
type VisibilityRule struct {
	Show RuleSet `json:"show,omitempty" yaml:"show,omitempty"`
	Hide RuleSet `json:"hide,omitempty" yaml:"hide,omitempty"`
}

// Clone deep-copies both rule sets.
func (r VisibilityRule) Clone() VisibilityRule {
	return VisibilityRule{Show: r.Show.Clone(), Hide: r.Hide.Clone()}
}

// Condition allows one dependency path to hold any of its listed values.
type Condition struct {
	Path   string `json:"path" yaml:"path"`
	Values []any  `json:"values" yaml:"values"`
}

// RuleSet is the conjunction of its conditions: every path must currently
// hold one of that condition's values. The slice keeps authoring order,
// which the JSON and YAML codecs preserve.
type RuleSet []Condition

// Clone deep-copies the conditions and their value lists.
func (rs RuleSet) Clone() RuleSet {
	if rs == nil {
		return nil
	}
	out := make(RuleSet, len(rs))
	for i, cond := range rs {
		out[i] = Condition{Path: cond.Path, Values: append([]any(nil), cond.Values...)}
	}
	return out
}
