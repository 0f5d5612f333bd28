package schema

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const adminDoc = `{
  "openapi": "3.0.0",
  "info": {"title": "admin", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "posts": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "user": {
            "type": "integer",
            "x-relationships": {
              "type": "belongsTo",
              "target": "users",
              "foreignKey": "user_id"
            }
          },
          "category": {
            "type": "integer",
            "x-relationships": {
              "kind": "belongsTo",
              "target": "categories"
            }
          }
        }
      }
    }
  }
}`

func TestLoadOpenAPI(t *testing.T) {
	resources, err := LoadOpenAPI(context.Background(), []byte(adminDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(resources) != 1 {
		t.Fatalf("resources: want 1, got %d", len(resources))
	}

	res := resources[0]
	if res.Name != "posts" {
		t.Fatalf("resource name: want %q, got %q", "posts", res.Name)
	}

	want := map[string]Association{
		"user": {
			Name:        "user",
			Target:      "users",
			OwnerKey:    "user_id",
			Cardinality: CardinalityOne,
		},
		"category": {
			Name:        "category",
			Target:      "categories",
			OwnerKey:    "category_id",
			Cardinality: CardinalityOne,
		},
	}
	if diff := cmp.Diff(want, res.Associations); diff != "" {
		t.Fatalf("associations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOpenAPI_MissingTarget(t *testing.T) {
	doc := `{
  "openapi": "3.0.0",
  "info": {"title": "admin", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "posts": {
        "type": "object",
        "properties": {
          "user": {
            "type": "integer",
            "x-relationships": {"type": "belongsTo"}
          }
        }
      }
    }
  }
}`

	if _, err := LoadOpenAPI(context.Background(), []byte(doc)); err == nil {
		t.Fatal("expected error for x-relationships without target")
	}
}

func TestLoadOpenAPI_EmptyDocument(t *testing.T) {
	if _, err := LoadOpenAPI(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
