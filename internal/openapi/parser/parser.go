package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-fieldscope/pkg/openapi"
	"github.com/goliatone/go-fieldscope/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Schemas derives one unit schema per operation that declares an object
// request body. The unit name comes from the x-unit extension, falling back
// to operationId and then to "method:path". Paths are walked in sorted
// order so the derived slice is deterministic.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) ([]*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if !p.options.AllowPartialDocuments {
			return nil, errors.New("openapi parser: document does not contain any paths")
		}
	}

	if err := p.resolveReferences(ctx, spec); err != nil {
		return nil, err
	}

	var schemas []*schema.Schema
	derived := make(map[string]string)
	if spec.Paths != nil {
		items := spec.Paths.Map()
		paths := make([]string, 0, len(items))
		for path := range items {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			item := items[path]
			if item == nil {
				continue
			}
			operations := []struct {
				method    string
				operation *openapi3.Operation
			}{
				{"GET", item.Get},
				{"PUT", item.Put},
				{"POST", item.Post},
				{"DELETE", item.Delete},
				{"PATCH", item.Patch},
				{"HEAD", item.Head},
				{"OPTIONS", item.Options},
				{"TRACE", item.Trace},
			}
			for _, entry := range operations {
				built, err := p.deriveUnit(ctx, entry.method, path, entry.operation)
				if err != nil {
					return nil, err
				}
				if built == nil {
					continue
				}
				origin := entry.method + " " + path
				if previous, dup := derived[built.Unit()]; dup {
					return nil, fmt.Errorf("openapi parser: unit %q from %s already derived from %s",
						built.Unit(), origin, previous)
				}
				derived[built.Unit()] = origin
				schemas = append(schemas, built)
			}
		}
	}

	if len(schemas) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no unit schemas derived")
	}

	return schemas, nil
}

func (p *Parser) resolveReferences(ctx context.Context, spec *openapi3.T) error {
	if !p.options.ResolveReferences {
		return nil
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi parser: validate: %w", err)
	}
	return nil
}

// deriveUnit builds a unit schema from one operation, or nil when the
// operation carries no object request body to derive fields from.
func (p *Parser) deriveUnit(ctx context.Context, method, path string, operation *openapi3.Operation) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if operation == nil {
		return nil, nil
	}

	body := requestBodySchema(operation.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return nil, nil
	}

	fields, err := collectFields("", body, make(map[*openapi3.Schema]bool))
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
	}

	built, err := schema.New(unitName(operation, method, path), fields)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
	}
	return built, nil
}

var mediaTypePreference = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok {
			return schemaValue(mt.Schema)
		}
	}
	for _, mt := range content {
		return schemaValue(mt.Schema)
	}
	return nil
}

func schemaValue(ref *openapi3.SchemaRef) *openapi3.Schema {
	if ref == nil {
		return nil
	}
	return ref.Value
}

// collectFields flattens object properties into dotted field paths,
// recursing into nested objects. Properties at each level are visited in
// sorted name order. The visiting set breaks reference cycles: a schema
// already on the current branch contributes no further fields.
func collectFields(prefix string, src *openapi3.Schema, visiting map[*openapi3.Schema]bool) ([]schema.FieldDefinition, error) {
	if visiting[src] {
		return nil, nil
	}
	visiting[src] = true
	defer delete(visiting, src)

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	var fields []schema.FieldDefinition
	for _, name := range names {
		property := schemaValue(src.Properties[name])
		if property == nil {
			continue
		}
		fieldPath := name
		if prefix != "" {
			fieldPath = prefix + "." + name
		}

		field, ok, err := buildField(fieldPath, property, required[name])
		if err != nil {
			return nil, err
		}
		if ok {
			fields = append(fields, field)
		}

		if field.Kind == schema.KindObject && len(property.Properties) > 0 {
			nested, err := collectFields(fieldPath, property, visiting)
			if err != nil {
				return nil, err
			}
			fields = append(fields, nested...)
		}
	}
	return fields, nil
}

func buildField(path string, src *openapi3.Schema, required bool) (schema.FieldDefinition, bool, error) {
	kind := kindOf(src)
	if kind == "" {
		return schema.FieldDefinition{}, false, nil
	}

	field := schema.FieldDefinition{
		Path:        path,
		Kind:        kind,
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
		Default:     src.Default,
	}
	if kind == schema.KindEnum {
		field.Enum = append([]any(nil), src.Enum...)
	}
	if tag, ok := stringExtension(src.Extensions, extensionFamily); ok {
		field.FamilyTag = tag
	}

	rule, err := visibilityRule(src.Extensions)
	if err != nil {
		return schema.FieldDefinition{}, false, fmt.Errorf("field %s: %w", path, err)
	}
	field.Rule = rule
	return field, true, nil
}

// kindOf maps the OpenAPI type to a field kind. Enumerated schemas become
// kind enum regardless of their declared type; properties without a
// mappable type contribute no field.
func kindOf(src *openapi3.Schema) schema.Kind {
	if len(src.Enum) > 0 {
		return schema.KindEnum
	}
	switch firstSchemaType(src.Type) {
	case "string":
		return schema.KindString
	case "integer", "number":
		return schema.KindNumber
	case "boolean":
		return schema.KindBoolean
	case "object":
		return schema.KindObject
	case "array":
		return schema.KindArray
	}
	if len(src.Properties) > 0 {
		return schema.KindObject
	}
	return ""
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
