// Package validation turns a schema and a candidate configuration into a
// structured verdict: which required values are missing, which values have
// the wrong shape, and which hidden paths still hold data.
package validation

import (
	"fmt"

	"github.com/goliatone/go-fieldscope/pkg/fieldpath"
	"github.com/goliatone/go-fieldscope/pkg/normalize"
	"github.com/goliatone/go-fieldscope/pkg/rules"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/visibility"
)

// Validate resolves visibility from the raw configuration, normalizes, and
// checks every field against the effective configuration. Visibility is not
// recomputed after normalization: a fixup that changes visibility outcomes
// is a schema-definition bug, not something validation compensates for.
//
// Per field, in declaration order:
//   - visible, effectively required, no resolvable value, and not waived by
//     a fixup: MissingRequired;
//   - visible with a resolvable value of the wrong shape: TypeMismatch;
//   - hidden with a resolvable value: SetWhileHidden.
//
// Hidden values are advisory regardless of their shape, so the result is
// valid exactly when no MissingRequired and no TypeMismatch was found.
func Validate(config map[string]any, s *schema.Schema, reg *normalize.Registry) Result {
	res := visibility.Resolve(config, s)
	outcome := normalize.Apply(config, s, res, reg)

	var errs []Error
	for _, field := range s.Fields() {
		value, found := fieldpath.Resolve(outcome.Config, field.Path)

		if !res.Visible(field.Path) {
			if found {
				errs = append(errs, Error{
					Path:    field.Path,
					Kind:    SetWhileHidden,
					Message: "value is set while the field is hidden",
				})
			}
			continue
		}

		if !found {
			if res.Required(field.Path) && !outcome.Waived(field.Path) {
				errs = append(errs, Error{
					Path:    field.Path,
					Kind:    MissingRequired,
					Message: "required value is missing",
				})
			}
			continue
		}

		if !shapeMatches(value, field) {
			errs = append(errs, Error{
				Path:    field.Path,
				Kind:    TypeMismatch,
				Message: mismatchMessage(value, field),
			})
		}
	}

	valid := true
	for _, e := range errs {
		if e.Blocking() {
			valid = false
			break
		}
	}
	return Result{Valid: valid, Errors: errs}
}

// shapeMatches checks the resolved value against the declared kind. Numbers
// match across integer and float representations; enums match when the
// value is a member of the declared set.
func shapeMatches(value any, field schema.FieldDefinition) bool {
	switch field.Kind {
	case schema.KindString:
		_, ok := value.(string)
		return ok
	case schema.KindNumber:
		_, ok := rules.Number(value)
		return ok
	case schema.KindBoolean:
		_, ok := value.(bool)
		return ok
	case schema.KindObject:
		_, ok := value.(map[string]any)
		return ok
	case schema.KindArray:
		_, ok := value.([]any)
		return ok
	case schema.KindEnum:
		return rules.ValueIn(value, field.Enum)
	}
	return true
}

func mismatchMessage(value any, field schema.FieldDefinition) string {
	if field.Kind == schema.KindEnum {
		return fmt.Sprintf("%v is not one of the declared values", value)
	}
	return fmt.Sprintf("expected %s, got %s", field.Kind, shapeName(value))
}

func shapeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := rules.Number(value); ok {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}
