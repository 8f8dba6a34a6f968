// Package fieldpath addresses values inside nested configuration objects
// using dotted paths. A segment that parses as a non-negative integer indexes
// an ordered sequence at that position; any other segment keys into a
// mapping. Lookups never fail hard: a missing key, an out-of-range index, or
// a container of the wrong shape all mean "value currently undefined".
package fieldpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Resolve walks root along the dotted path and returns the value it lands
// on. The boolean is false when any intermediate segment is absent or
// type-incompatible, e.g. indexing a non-sequence numerically.
func Resolve(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		if idx, ok := parseIndex(segment); ok {
			seq, ok := current.([]any)
			if !ok || idx >= len(seq) {
				return nil, false
			}
			current = seq[idx]
			continue
		}
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at path, creating intermediate maps and growing slices as
// needed. Intermediates of the wrong container shape are replaced. The root
// map is mutated in place; callers wanting copy-on-write clone first.
func Set(root map[string]any, path string, value any) error {
	if root == nil {
		return errors.New("fieldpath: root map is nil")
	}
	if err := Validate(path); err != nil {
		return err
	}
	segments := strings.Split(path, ".")
	if _, ok := parseIndex(segments[0]); ok {
		return fmt.Errorf("fieldpath: path %q starts with an index segment", path)
	}
	setInMap(root, segments, value)
	return nil
}

func setInMap(node map[string]any, segments []string, value any) {
	head := segments[0]
	if len(segments) == 1 {
		node[head] = value
		return
	}
	rest := segments[1:]
	if idx, ok := parseIndex(rest[0]); ok {
		seq, _ := node[head].([]any)
		node[head] = setInSlice(seq, idx, rest, value)
		return
	}
	child, ok := node[head].(map[string]any)
	if !ok || child == nil {
		child = make(map[string]any)
		node[head] = child
	}
	setInMap(child, rest, value)
}

// setInSlice handles segments[0] as an already-parsed index and returns the
// slice because growth may reallocate it.
func setInSlice(seq []any, idx int, segments []string, value any) []any {
	if len(seq) <= idx {
		seq = append(seq, make([]any, idx+1-len(seq))...)
	}
	if len(segments) == 1 {
		seq[idx] = value
		return seq
	}
	rest := segments[1:]
	if nextIdx, ok := parseIndex(rest[0]); ok {
		child, _ := seq[idx].([]any)
		seq[idx] = setInSlice(child, nextIdx, rest, value)
		return seq
	}
	child, ok := seq[idx].(map[string]any)
	if !ok || child == nil {
		child = make(map[string]any)
		seq[idx] = child
	}
	setInMap(child, rest, value)
	return seq
}

// Clone returns a deep copy of the configuration tree. Maps and slices are
// duplicated recursively; scalar leaves are shared.
func Clone(root map[string]any) map[string]any {
	if root == nil {
		return nil
	}
	out := make(map[string]any, len(root))
	for k, v := range root {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = cloneValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneValue(v)
		}
		return clone
	default:
		return typed
	}
}

// Validate rejects paths that do not conform to the dotted grammar.
func Validate(path string) error {
	if path == "" {
		return errors.New("fieldpath: empty path")
	}
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return fmt.Errorf("fieldpath: empty segment in %q", path)
		}
	}
	return nil
}

// Split returns the parent path and the final segment. The parent is empty
// for single-segment paths.
func Split(path string) (parent, leaf string) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// Join concatenates non-empty segments with dots.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ".")
}

func parseIndex(segment string) (int, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
