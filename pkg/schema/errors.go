package schema

import (
	"fmt"
	"strings"
)

// Issue is one authoring defect found while building a Schema. Path names
// the offending field; it is empty for schema-wide defects.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// DefinitionError aggregates every defect found in a schema definition.
type DefinitionError struct {
	Unit   string
	Issues []Issue
}

func (e *DefinitionError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("schema: unit %q has %d definition issue(s): %s",
		e.Unit, len(e.Issues), strings.Join(parts, "; "))
}
