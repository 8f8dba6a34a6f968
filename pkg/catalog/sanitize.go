package catalog

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fieldscope/pkg/schema"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeFields strips markup from the presentation metadata catalog
// documents carry, so stored labels and descriptions are plain text no
// matter where the document came from.
func sanitizeFields(fields []schema.FieldDefinition) {
	for i := range fields {
		fields[i].Label = sanitizeText(fields[i].Label)
		fields[i].Description = sanitizeText(fields[i].Description)
	}
}

func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := sanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func sanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
