package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldscope/pkg/fieldpath"
	"github.com/goliatone/go-fieldscope/pkg/normalize"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/validation"
)

func requestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.MustNew("http.request", []schema.FieldDefinition{
		{
			Path:     "method",
			Kind:     schema.KindEnum,
			Required: true,
			Enum:     []any{"GET", "POST", "PUT", "PATCH", "DELETE"},
		},
		{Path: "sendBody", Kind: schema.KindBoolean},
		{
			Path:     "body",
			Kind:     schema.KindObject,
			Required: true,
			Rule: &schema.VisibilityRule{
				Show: schema.RuleSet{
					{Path: "sendBody", Values: []any{true}},
					{Path: "method", Values: []any{"POST", "PUT", "PATCH"}},
				},
			},
		},
	})
}

func comparisonSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.MustNew("filter", []schema.FieldDefinition{
		{
			Path:      "operation",
			Kind:      schema.KindEnum,
			Required:  true,
			Enum:      []any{"equals", "contains", "isEmpty", "isNotEmpty"},
			FamilyTag: normalize.DefaultComparatorTag,
		},
		{Path: "value1", Kind: schema.KindString, Required: true, FamilyTag: normalize.DefaultComparatorTag},
		{Path: "value2", Kind: schema.KindString, Required: true, FamilyTag: normalize.DefaultComparatorTag},
		{Path: "singleValue", Kind: schema.KindBoolean, FamilyTag: normalize.DefaultComparatorTag},
	})
}

func comparatorRegistry() *normalize.Registry {
	reg := normalize.NewRegistry()
	reg.Register(normalize.DefaultComparatorTag, normalize.NewComparator())
	return reg
}

func errorPaths(result validation.Result) []string {
	paths := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestValidateHiddenAbsenceIsClean(t *testing.T) {
	t.Parallel()

	s := requestSchema(t)
	result := validation.Validate(map[string]any{"method": "GET"}, s, nil)

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", result.Errors)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	t.Parallel()

	s := requestSchema(t)
	result := validation.Validate(map[string]any{"method": "POST", "sendBody": true}, s, nil)

	if result.Valid {
		t.Fatal("Valid = true, want false")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	got := result.Errors[0]
	if got.Path != "body" || got.Kind != validation.MissingRequired {
		t.Fatalf("got %+v, want MissingRequired at body", got)
	}
	if !got.Blocking() {
		t.Fatal("MissingRequired must be blocking")
	}
}

func TestValidateSetWhileHidden(t *testing.T) {
	t.Parallel()

	s := requestSchema(t)
	config := map[string]any{
		"method":   "GET",
		"sendBody": false,
		"body":     map[string]any{"left": "over"},
	}
	result := validation.Validate(config, s, nil)

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v; stale hidden data must not block", result.Errors)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	got := result.Errors[0]
	if got.Path != "body" || got.Kind != validation.SetWhileHidden {
		t.Fatalf("got %+v, want SetWhileHidden at body", got)
	}

	if len(result.Blocking()) != 0 {
		t.Fatalf("Blocking() = %v, want none", result.Blocking())
	}
	advisories := result.Advisories()
	if len(advisories) != 1 || advisories[0].Kind != validation.SetWhileHidden {
		t.Fatalf("Advisories() = %v, want the hidden finding", advisories)
	}
}

func TestValidateHiddenValueShapeIgnored(t *testing.T) {
	t.Parallel()

	s := requestSchema(t)
	config := map[string]any{
		"method":   "GET",
		"sendBody": false,
		"body":     "not an object",
	}
	result := validation.Validate(config, s, nil)

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v; hidden values are advisory whatever their shape", result.Errors)
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != validation.SetWhileHidden {
		t.Fatalf("Errors = %v, want one SetWhileHidden", result.Errors)
	}
}

func TestValidateUnaryOperatorFamily(t *testing.T) {
	t.Parallel()

	s := comparisonSchema(t)
	config := map[string]any{"operation": "isEmpty", "value1": "subject"}

	result := validation.Validate(config, s, comparatorRegistry())

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Errors = %v, want none: the second operand is waived", result.Errors)
	}
	// The input stays untouched; normalization worked on a copy.
	if _, found := fieldpath.Resolve(config, "singleValue"); found {
		t.Fatal("input configuration gained singleValue")
	}
}

func TestValidateBinaryOperatorNeedsSecondOperand(t *testing.T) {
	t.Parallel()

	s := comparisonSchema(t)
	config := map[string]any{"operation": "equals", "value1": "subject"}

	result := validation.Validate(config, s, comparatorRegistry())

	if result.Valid {
		t.Fatal("Valid = true, want false")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if got := result.Errors[0]; got.Path != "value2" || got.Kind != validation.MissingRequired {
		t.Fatalf("got %+v, want MissingRequired at value2", got)
	}
}

func TestValidateUnknownOperatorSurfaces(t *testing.T) {
	t.Parallel()

	s := comparisonSchema(t)
	config := map[string]any{"operation": "frobnicate", "value1": "subject"}

	result := validation.Validate(config, s, comparatorRegistry())

	if result.Valid {
		t.Fatal("Valid = true, want false: unknown operators are not coerced")
	}
	want := []string{"operation", "value2"}
	if diff := cmp.Diff(want, errorPaths(result)); diff != "" {
		t.Fatalf("error paths mismatch (-want +got):\n%s", diff)
	}
	if result.Errors[0].Kind != validation.TypeMismatch {
		t.Fatalf("operation finding = %+v, want TypeMismatch", result.Errors[0])
	}
	if result.Errors[1].Kind != validation.MissingRequired {
		t.Fatalf("value2 finding = %+v, want MissingRequired", result.Errors[1])
	}
}

func TestValidateWaiverDoesNotSkipShapeChecks(t *testing.T) {
	t.Parallel()

	s := comparisonSchema(t)
	config := map[string]any{"operation": "isEmpty", "value1": "subject", "value2": 7}

	result := validation.Validate(config, s, comparatorRegistry())

	if result.Valid {
		t.Fatal("Valid = true, want false: a present second operand keeps its shape check")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if got := result.Errors[0]; got.Path != "value2" || got.Kind != validation.TypeMismatch {
		t.Fatalf("got %+v, want TypeMismatch at value2", got)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		kind    schema.Kind
		enum    []any
		value   any
		wantMsg string
	}{
		{name: "number for string", kind: schema.KindString, value: 3, wantMsg: "expected string, got number"},
		{name: "string for number", kind: schema.KindNumber, value: "3", wantMsg: "expected number, got string"},
		{name: "string for boolean", kind: schema.KindBoolean, value: "true", wantMsg: "expected boolean, got string"},
		{name: "array for object", kind: schema.KindObject, value: []any{1}, wantMsg: "expected object, got array"},
		{name: "object for array", kind: schema.KindArray, value: map[string]any{}, wantMsg: "expected array, got object"},
		{name: "null for string", kind: schema.KindString, value: nil, wantMsg: "expected string, got null"},
		{name: "outside enum", kind: schema.KindEnum, enum: []any{"a", "b"}, value: "c", wantMsg: "c is not one of the declared values"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := schema.MustNew("unit", []schema.FieldDefinition{
				{Path: "field", Kind: tc.kind, Enum: tc.enum},
			})
			result := validation.Validate(map[string]any{"field": tc.value}, s, nil)

			if result.Valid {
				t.Fatal("Valid = true, want false")
			}
			if len(result.Errors) != 1 {
				t.Fatalf("Errors = %v, want exactly one", result.Errors)
			}
			got := result.Errors[0]
			if got.Kind != validation.TypeMismatch {
				t.Fatalf("Kind = %s, want TypeMismatch", got.Kind)
			}
			if got.Message != tc.wantMsg {
				t.Fatalf("Message = %q, want %q", got.Message, tc.wantMsg)
			}
		})
	}
}

func TestValidateNumberRepresentations(t *testing.T) {
	t.Parallel()

	s := schema.MustNew("unit", []schema.FieldDefinition{
		{Path: "count", Kind: schema.KindNumber, Required: true},
	})

	for _, value := range []any{3, int64(3), 3.5, json.Number("3")} {
		result := validation.Validate(map[string]any{"count": value}, s, nil)
		if !result.Valid {
			t.Fatalf("Valid = false for %T %v, errors: %v", value, value, result.Errors)
		}
	}
}

func TestValidateEnumAcceptsNumericRepresentations(t *testing.T) {
	t.Parallel()

	s := schema.MustNew("unit", []schema.FieldDefinition{
		{Path: "level", Kind: schema.KindEnum, Enum: []any{1, 2, 3}},
	})

	result := validation.Validate(map[string]any{"level": float64(2)}, s, nil)
	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v; a decoded 2.0 must match the declared 2", result.Errors)
	}
}

func TestValidateDeclarationOrder(t *testing.T) {
	t.Parallel()

	s := schema.MustNew("unit", []schema.FieldDefinition{
		{Path: "alpha", Kind: schema.KindString, Required: true},
		{Path: "beta", Kind: schema.KindNumber, Required: true},
		{Path: "gamma", Kind: schema.KindEnum, Enum: []any{"x", "y"}},
	})
	result := validation.Validate(map[string]any{"gamma": "z"}, s, nil)

	want := []string{"alpha", "beta", "gamma"}
	if diff := cmp.Diff(want, errorPaths(result)); diff != "" {
		t.Fatalf("error paths mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateErrorRendering(t *testing.T) {
	t.Parallel()

	e := validation.Error{Path: "body", Kind: validation.MissingRequired, Message: "required value is missing"}
	if got, want := e.Error(), "body: required value is missing"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
