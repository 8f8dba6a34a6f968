package openapi_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-fieldscope"
	"github.com/goliatone/go-fieldscope/pkg/schema"
	"github.com/goliatone/go-fieldscope/pkg/testsupport"
)

func TestParserSchemasPetstore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "petstore.yaml"))
	parser := fieldscope.NewParser()

	got, err := parser.Schemas(ctx, doc)
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("derived %d units, want 2", len(got))
	}

	order := got[0]
	if order.Unit() != "placeOrder" {
		t.Fatalf("first unit = %q, want placeOrder", order.Unit())
	}
	wantOrderFields := []schema.FieldDefinition{
		{Path: "giftWrap", Kind: schema.KindBoolean},
		{Path: "note", Kind: schema.KindString, Rule: &schema.VisibilityRule{
			Show: schema.RuleSet{{Path: "giftWrap", Values: []any{true}}},
		}},
		{Path: "petId", Kind: schema.KindNumber, Required: true},
		{Path: "quantity", Kind: schema.KindNumber, Required: true},
	}
	if diff := testsupport.CompareGolden(wantOrderFields, order.Fields()); diff != "" {
		t.Fatalf("placeOrder fields mismatch (-want +got):\n%s", diff)
	}

	pet := got[1]
	if pet.Unit() != "petstore.pet" {
		t.Fatalf("second unit = %q, want petstore.pet", pet.Unit())
	}
	wantPetFields := []schema.FieldDefinition{
		{Path: "exotic", Kind: schema.KindBoolean},
		{Path: "name", Kind: schema.KindString, Required: true, Label: "Name"},
		{Path: "permit", Kind: schema.KindObject, Rule: &schema.VisibilityRule{
			Show: schema.RuleSet{{Path: "exotic", Values: []any{true}}},
		}},
		{Path: "permit.issued", Kind: schema.KindString},
		{Path: "permit.number", Kind: schema.KindString, Required: true},
		{Path: "species", Kind: schema.KindEnum, Required: true, Enum: []any{"cat", "dog", "bird"}},
	}
	if diff := testsupport.CompareGolden(wantPetFields, pet.Fields()); diff != "" {
		t.Fatalf("petstore.pet fields mismatch (-want +got):\n%s", diff)
	}
}
