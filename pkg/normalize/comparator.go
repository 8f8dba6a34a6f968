package normalize

import (
	"github.com/goliatone/go-fieldscope/pkg/fieldpath"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/visibility"
)

// DefaultComparatorTag is the family tag the comparator fixup is registered
// under when callers do not pick their own.
const DefaultComparatorTag = "comparison-operator"

// comparator repairs operator families whose shape depends on whether the
// selected operator takes one operand or two. When the discriminator holds
// a unary operator it waives the second operand's requirement and records
// the single-operand form on the family's companion flag. Operators outside
// the unary set, including unknown ones, leave the family untouched and
// surface through ordinary validation.
type comparator struct {
	discriminator string
	secondOperand string
	companion     string
	unary         map[string]bool
}

// ComparatorOption adjusts the comparator's member names and operator set.
type ComparatorOption func(*comparator)

// WithDiscriminator overrides the terminal segment naming the family's
// operator field. Default "operation".
func WithDiscriminator(name string) ComparatorOption {
	return func(c *comparator) {
		if name != "" {
			c.discriminator = name
		}
	}
}

// WithSecondOperand overrides the terminal segment naming the operand field
// a unary operator does without. Default "value2".
func WithSecondOperand(name string) ComparatorOption {
	return func(c *comparator) {
		if name != "" {
			c.secondOperand = name
		}
	}
}

// WithCompanionFlag overrides the terminal segment naming the boolean that
// records the single-operand form. Default "singleValue".
func WithCompanionFlag(name string) ComparatorOption {
	return func(c *comparator) {
		if name != "" {
			c.companion = name
		}
	}
}

// WithUnaryOperators replaces the set of operator values treated as unary.
func WithUnaryOperators(ops ...string) ComparatorOption {
	return func(c *comparator) {
		c.unary = make(map[string]bool, len(ops))
		for _, op := range ops {
			c.unary[op] = true
		}
	}
}

// NewComparator builds the operator-family fixup. Defaults cover the
// conventional comparison family: discriminator "operation", second operand
// "value2", companion flag "singleValue", and the unary set isEmpty,
// isNotEmpty, isTrue, isFalse, exists, notExists.
func NewComparator(options ...ComparatorOption) Fixup {
	c := &comparator{
		discriminator: "operation",
		secondOperand: "value2",
		companion:     "singleValue",
		unary: map[string]bool{
			"isEmpty":    true,
			"isNotEmpty": true,
			"isTrue":     true,
			"isFalse":    true,
			"exists":     true,
			"notExists":  true,
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Apply implements Fixup. The repair reads and writes stored values only;
// per the normalization contract it does not consult the resolution, so a
// family is repaired the same way whether its fields are presently visible
// or not.
func (c *comparator) Apply(config map[string]any, family schema.Family, _ *visibility.Resolution) (map[string]any, []string) {
	disc, ok := family.Member(c.discriminator)
	if !ok {
		return config, nil
	}
	value, found := fieldpath.Resolve(config, disc.Path)
	if !found {
		return config, nil
	}
	op, ok := value.(string)
	if !ok || !c.unary[op] {
		return config, nil
	}

	var waived []string
	if operand, ok := family.Member(c.secondOperand); ok {
		waived = []string{operand.Path}
	}

	flag, ok := family.Member(c.companion)
	if !ok {
		return config, waived
	}
	if current, found := fieldpath.Resolve(config, flag.Path); found && current == true {
		return config, waived
	}
	clone := fieldpath.Clone(config)
	if err := fieldpath.Set(clone, flag.Path, true); err != nil {
		return config, waived
	}
	return clone, waived
}
