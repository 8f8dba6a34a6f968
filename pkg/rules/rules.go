// Package rules evaluates visibility rule sets against configuration
// objects: AND across a rule set's conditions, OR across each condition's
// allowed values.
package rules

import (
	"encoding/json"
	"reflect"

	"github.com/goliatone/go-fieldscope/pkg/fieldpath"
	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// Matches reports whether every condition in the rule set holds: the
// condition's path must resolve and the resolved value must be a member of
// its allowed set. A path that does not resolve never matches a non-empty
// allowed set. Conditions are independent, so evaluation order is not
// observable. An empty rule set matches vacuously; schema construction
// rejects empty sets on present rules, so that case only arises for callers
// composing rule sets by hand.
func Matches(config map[string]any, ruleSet schema.RuleSet) bool {
	for _, cond := range ruleSet {
		value, found := fieldpath.Resolve(config, cond.Path)
		if !found || !ValueIn(value, cond.Values) {
			return false
		}
	}
	return true
}

// ValueIn reports membership of value in the allowed set under Equal.
func ValueIn(value any, values []any) bool {
	for _, allowed := range values {
		if Equal(value, allowed) {
			return true
		}
	}
	return false
}

// Equal compares two literal values. Numbers compare by magnitude across
// integer and float representations, so a YAML-decoded 1 matches a
// JSON-decoded 1.0. Everything else uses deep equality; booleans and
// numbers never bridge.
func Equal(a, b any) bool {
	if af, ok := Number(a); ok {
		bf, ok := Number(b)
		return ok && af == bf
	}
	if _, ok := Number(b); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Number reports whether the value carries a numeric shape, covering the
// representations JSON and YAML decoding produce.
func Number(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
