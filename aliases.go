package fieldscope

import (
	"github.com/goliatone/go-fieldscope/pkg/normalize"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/validation"
	"github.com/goliatone/go-fieldscope/pkg/visibility"
)

// Schema aliases the unit schema so everyday callers only import the root
// package.
type Schema = schema.Schema

// FieldDefinition declares one addressable configuration slot.
type FieldDefinition = schema.FieldDefinition

// Kind tags the runtime shape a field's value must take.
type Kind = schema.Kind

// VisibilityRule pairs an optional show gate with an optional hide veto.
type VisibilityRule = schema.VisibilityRule

// Condition allows one dependency path to hold any of its listed values.
type Condition = schema.Condition

// RuleSet is the conjunction of its conditions.
type RuleSet = schema.RuleSet

// Resolution is the per-field visibility and requirement outcome of one
// resolve pass.
type Resolution = visibility.Resolution

// Result collects the findings of one validation pass.
type Result = validation.Result

// Error is a single validation finding.
type Error = validation.Error

// ErrorKind classifies validation findings.
type ErrorKind = validation.ErrorKind

// Outcome carries a normalized configuration and its waived requirements.
type Outcome = normalize.Outcome

// Family is one normalization instance: the fields sharing a family tag
// and a parent path.
type Family = schema.Family

// Fixup repairs the stored values of one field family.
type Fixup = normalize.Fixup

// FixupFunc adapts a function to the Fixup interface.
type FixupFunc = normalize.FixupFunc

// ComparatorOption adjusts the comparator fixup.
type ComparatorOption = normalize.ComparatorOption

const (
	KindString  = schema.KindString
	KindNumber  = schema.KindNumber
	KindBoolean = schema.KindBoolean
	KindObject  = schema.KindObject
	KindArray   = schema.KindArray
	KindEnum    = schema.KindEnum
)

const (
	MissingRequired = validation.MissingRequired
	TypeMismatch    = validation.TypeMismatch
	SetWhileHidden  = validation.SetWhileHidden
	UnknownPath     = validation.UnknownPath
)

// DefaultComparatorTag is the family tag the built-in comparator fixup is
// registered under.
const DefaultComparatorTag = normalize.DefaultComparatorTag

// NewSchema validates the field definitions and builds a unit schema.
func NewSchema(unit string, fields []FieldDefinition) (*Schema, error) {
	return schema.New(unit, fields)
}

// MustSchema panics when the definitions are defective. Useful for schemas
// built in code at startup.
func MustSchema(unit string, fields []FieldDefinition) *Schema {
	return schema.MustNew(unit, fields)
}

// WithDiscriminator renames the comparator's operator member.
func WithDiscriminator(name string) ComparatorOption {
	return normalize.WithDiscriminator(name)
}

// WithSecondOperand renames the comparator's second operand member.
func WithSecondOperand(name string) ComparatorOption {
	return normalize.WithSecondOperand(name)
}

// WithCompanionFlag renames the comparator's single-operand flag member.
func WithCompanionFlag(name string) ComparatorOption {
	return normalize.WithCompanionFlag(name)
}

// WithUnaryOperators replaces the comparator's unary operator set.
func WithUnaryOperators(operators ...string) ComparatorOption {
	return normalize.WithUnaryOperators(operators...)
}
