package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
)

const relationshipExtensionKey = "x-relationships"

const (
	relationshipTypeAttr       = "type"
	relationshipTargetAttr     = "target"
	relationshipForeignKeyAttr = "foreignKey"
	relationshipCardAttr       = "cardinality"
)

var relationshipKeyLookup = map[string]string{
	"type":        relationshipTypeAttr,
	"kind":        relationshipTypeAttr,
	"target":      relationshipTargetAttr,
	"foreignkey":  relationshipForeignKeyAttr,
	"foreignid":   relationshipForeignKeyAttr,
	"cardinality": relationshipCardAttr,
}

// LoadOpenAPI parses an OpenAPI document and derives one Resource per
// component schema. Associations come from the x-relationships vendor
// extension declared on properties; the foreign key defaults to
// "<relation>_id" when the extension omits it.
func LoadOpenAPI(ctx context.Context, raw []byte) ([]Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("schema: openapi document declares no component schemas")
	}

	resources := make([]Resource, 0, len(doc.Components.Schemas))
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		resource, err := resourceFromSchema(name, ref.Value)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	if len(resources) == 0 {
		return nil, errors.New("schema: no resources extracted from openapi document")
	}
	return resources, nil
}

func resourceFromSchema(name string, node *openapi3.Schema) (Resource, error) {
	resource := Resource{
		Name:         name,
		IDField:      "id",
		Associations: make(map[string]Association),
	}

	for propName, propRef := range node.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		ext, ok := propRef.Value.Extensions[relationshipExtensionKey]
		if !ok {
			continue
		}
		assoc, ok, err := associationFromExtension(name, propName, ext)
		if err != nil {
			return Resource{}, err
		}
		if ok {
			resource.Associations[propName] = assoc
		}
	}
	return resource, nil
}

func associationFromExtension(resource, relation string, value any) (Association, bool, error) {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return Association{}, false, nil
	}

	attrs := make(map[string]string)
	for key, val := range raw {
		canonical, ok := relationshipKeyLookup[normaliseKey(key)]
		if !ok {
			continue
		}
		if str, ok := val.(string); ok && str != "" {
			attrs[canonical] = str
		}
	}

	target := strings.TrimSpace(attrs[relationshipTargetAttr])
	if target == "" {
		return Association{}, false, &Error{Resource: resource, Relation: relation, Reason: "x-relationships entry is missing a target"}
	}

	cardinality := strings.ToLower(strings.TrimSpace(attrs[relationshipCardAttr]))
	if cardinality == "" {
		cardinality = deriveCardinality(attrs[relationshipTypeAttr])
	}

	assoc := Association{
		Name:        relation,
		Target:      target,
		OwnerKey:    strings.TrimSpace(attrs[relationshipForeignKeyAttr]),
		Cardinality: cardinality,
	}
	if assoc.OwnerKey == "" {
		assoc.OwnerKey = defaultOwnerKey(relation)
	}
	return assoc, true, nil
}

func normaliseKey(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			builder.WriteRune(unicode.ToLower(r))
		}
	}
	return builder.String()
}

func deriveCardinality(relType string) string {
	switch strings.ToLower(strings.TrimSpace(relType)) {
	case "belongsto", "hasone":
		return CardinalityOne
	case "hasmany":
		return CardinalityMany
	default:
		return ""
	}
}
