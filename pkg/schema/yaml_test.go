package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const yamlDoc = `
resources:
  - name: posts
    relations:
      user:
        target: users
        owner_key: user_id
      category:
        target: categories
  - name: comments
    id_field: comment_id
    relations:
      post:
        target: posts
`

func TestLoadYAML(t *testing.T) {
	resources, err := LoadYAML([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("resources: want 2, got %d", len(resources))
	}

	posts := resources[0]
	want := map[string]Association{
		"user":     {Name: "user", Target: "users", OwnerKey: "user_id"},
		"category": {Name: "category", Target: "categories", OwnerKey: "category_id"},
	}
	if diff := cmp.Diff(want, posts.Associations); diff != "" {
		t.Fatalf("posts associations mismatch (-want +got):\n%s", diff)
	}

	comments := resources[1]
	if comments.IDField != "comment_id" {
		t.Fatalf("id field: want %q, got %q", "comment_id", comments.IDField)
	}
}

func TestLoadYAML_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "no resources", doc: "resources: []"},
		{name: "missing name", doc: "resources:\n  - relations: {}"},
		{name: "missing target", doc: "resources:\n  - name: posts\n    relations:\n      user: {}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadYAML([]byte(tc.doc)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}
