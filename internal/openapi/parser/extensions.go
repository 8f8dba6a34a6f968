package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldscope/pkg/schema"
)

const (
	extensionUnit       = "x-unit"
	extensionVisibility = "x-visibility"
	extensionFamily     = "x-family"
)

func unitName(operation *openapi3.Operation, method, path string) string {
	if name, ok := stringExtension(operation.Extensions, extensionUnit); ok {
		return name
	}
	if operation.OperationID != "" {
		return operation.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func stringExtension(ext map[string]any, key string) (string, bool) {
	raw, ok := ext[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// visibilityRule decodes the x-visibility extension into show and hide rule
// sets. Extension maps do not preserve document order, so conditions are
// sorted by path to keep derivation deterministic.
func visibilityRule(ext map[string]any) (*schema.VisibilityRule, error) {
	raw, ok := ext[extensionVisibility]
	if !ok {
		return nil, nil
	}
	mapped, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", extensionVisibility)
	}

	rule := &schema.VisibilityRule{}
	for key, value := range mapped {
		switch key {
		case "show":
			rs, err := conditionSet(value)
			if err != nil {
				return nil, fmt.Errorf("%s.show: %w", extensionVisibility, err)
			}
			rule.Show = rs
		case "hide":
			rs, err := conditionSet(value)
			if err != nil {
				return nil, fmt.Errorf("%s.hide: %w", extensionVisibility, err)
			}
			rule.Hide = rs
		default:
			return nil, fmt.Errorf("%s: unknown key %q", extensionVisibility, key)
		}
	}
	if rule.Show == nil && rule.Hide == nil {
		return nil, fmt.Errorf("%s must declare show or hide", extensionVisibility)
	}
	return rule, nil
}

func conditionSet(value any) (schema.RuleSet, error) {
	mapped, ok := value.(map[string]any)
	if !ok || len(mapped) == 0 {
		return nil, errors.New("expected a non-empty mapping of path to values")
	}

	paths := make([]string, 0, len(mapped))
	for path := range mapped {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rs := make(schema.RuleSet, 0, len(paths))
	for _, path := range paths {
		rs = append(rs, schema.Condition{Path: path, Values: conditionValues(mapped[path])})
	}
	return rs, nil
}

// conditionValues mirrors the mapping form of the rule codecs: a list is
// taken as-is, any other value is a single-element list.
func conditionValues(value any) []any {
	if list, ok := value.([]any); ok {
		return append([]any(nil), list...)
	}
	return []any{value}
}
