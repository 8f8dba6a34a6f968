package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rule sets serialize as ordered mappings from dependency path to allowed
// values. encoding/json and Go maps both drop object order, so the codecs
// below read mapping keys in document order; a sequence of {path, values}
// objects is accepted as an equivalent long form. Scalars are lifted into
// single-element value lists.

// UnmarshalJSON accepts the mapping form, the condition-list form, or null.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		*rs = nil
		return nil
	}
	switch trimmed[0] {
	case 'n':
		*rs = nil
		return nil
	case '[':
		var conditions []Condition
		if err := json.Unmarshal(data, &conditions); err != nil {
			return fmt.Errorf("schema: parse rule list: %w", err)
		}
		*rs = RuleSet(conditions)
		return nil
	case '{':
		return rs.unmarshalJSONMapping(data)
	}
	return errors.New("schema: rule must be a mapping or a condition list")
}

func (rs *RuleSet) unmarshalJSONMapping(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("schema: parse rule: %w", err)
	}
	out := RuleSet{}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return fmt.Errorf("schema: parse rule: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("schema: rule key %v is not a string", keyToken)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("schema: parse rule condition %q: %w", key, err)
		}
		out = append(out, Condition{Path: key, Values: valueList(value)})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("schema: parse rule: %w", err)
	}
	*rs = out
	return nil
}

// MarshalJSON emits the mapping form with conditions in rule-set order.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cond := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cond.Path)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal rule path %q: %w", cond.Path, err)
		}
		values, err := json.Marshal(cond.Values)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal rule values for %q: %w", cond.Path, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON. Mapping order
// comes straight from the document via the node API.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(RuleSet, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			var value any
			if err := valueNode.Decode(&value); err != nil {
				return fmt.Errorf("schema: parse rule condition %q: %w", keyNode.Value, err)
			}
			out = append(out, Condition{Path: keyNode.Value, Values: valueList(value)})
		}
		*rs = out
		return nil
	case yaml.SequenceNode:
		var conditions []Condition
		if err := node.Decode(&conditions); err != nil {
			return fmt.Errorf("schema: parse rule list: %w", err)
		}
		*rs = RuleSet(conditions)
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*rs = nil
			return nil
		}
	}
	return errors.New("schema: rule must be a mapping or a condition list")
}

// MarshalYAML emits the mapping form as an explicit node to keep order.
func (rs RuleSet) MarshalYAML() (any, error) {
	if rs == nil {
		return nil, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, cond := range rs {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: cond.Path}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(cond.Values); err != nil {
			return nil, fmt.Errorf("schema: marshal rule values for %q: %w", cond.Path, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func valueList(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case nil:
		return nil
	default:
		return []any{typed}
	}
}
