package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// document is one loaded catalog file: its location inside the source
// filesystem and the raw bytes.
type document struct {
	location string
	raw      []byte
}

// unitPayload is one unit declaration inside a document.
type unitPayload struct {
	Unit   string                   `json:"unit" yaml:"unit"`
	Fields []schema.FieldDefinition `json:"fields" yaml:"fields"`
}

// documentPayload accepts both document forms: a single unit at the top
// level, or a list of units.
type documentPayload struct {
	Unit   string                   `json:"unit" yaml:"unit"`
	Fields []schema.FieldDefinition `json:"fields" yaml:"fields"`
	Units  []unitPayload            `json:"units" yaml:"units"`
}

func (p documentPayload) units() []unitPayload {
	if len(p.Units) > 0 {
		return p.Units
	}
	return []unitPayload{{Unit: p.Unit, Fields: p.Fields}}
}

// decode picks the codec from the document's file extension.
func decode(doc document) (documentPayload, error) {
	var payload documentPayload
	if len(doc.raw) == 0 {
		return payload, fmt.Errorf("catalog: %s: document is empty", doc.location)
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(doc.location)); ext {
	case ".json":
		err = json.Unmarshal(doc.raw, &payload)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(doc.raw, &payload)
	default:
		return payload, fmt.Errorf("catalog: %s: unsupported extension %q", doc.location, ext)
	}
	if err != nil {
		return payload, fmt.Errorf("catalog: parse %s: %w", doc.location, err)
	}
	if len(payload.Units) > 0 && (payload.Unit != "" || len(payload.Fields) > 0) {
		return payload, fmt.Errorf("catalog: %s: document mixes single-unit and multi-unit forms", doc.location)
	}
	return payload, nil
}
