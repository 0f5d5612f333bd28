// Package schema describes admin resources and the to-one associations the
// relation field resolves against. Descriptors are plain values; loaders can
// hydrate them from OpenAPI component schemas or explicit YAML documents.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Cardinality values recognised on associations. The relation field only
// operates on to-one associations; to-many declarations are preserved so
// registries can reject them with a useful message.
const (
	CardinalityOne  = "one"
	CardinalityMany = "many"
)

// Association is the derived metadata for a named relation: the collection the
// relation points into and the local attribute holding the foreign key.
type Association struct {
	Name        string
	Target      string
	OwnerKey    string
	Cardinality string
}

// ToOne reports whether the association is usable by a to-one relation field.
func (a Association) ToOne() bool {
	return a.Cardinality == "" || a.Cardinality == CardinalityOne
}

// Resource describes one admin resource: its collection name, identifier
// attribute, and declared associations keyed by relation name.
type Resource struct {
	Name         string
	IDField      string
	Associations map[string]Association
}

// Association resolves the named relation into its metadata. Unknown names
// fail with *Error; a misconfigured field is a programming error and callers
// are expected to propagate it, not swallow it.
func (r Resource) Association(name string) (Association, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Association{}, &Error{Resource: r.Name, Reason: "relation name is required"}
	}
	assoc, ok := r.Associations[name]
	if !ok {
		return Association{}, unknownRelation(r.Name, name)
	}
	if assoc.OwnerKey == "" {
		assoc.OwnerKey = defaultOwnerKey(name)
	}
	if assoc.Name == "" {
		assoc.Name = name
	}
	return assoc, nil
}

// RelationNames returns the declared relation names in sorted order.
func (r Resource) RelationNames() []string {
	names := make([]string, 0, len(r.Associations))
	for name := range r.Associations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultOwnerKey(relation string) string {
	return relation + "_id"
}

// Registry tracks resources by name so association lookups can be validated
// once at registration time instead of at arbitrary render time.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]Resource
}

// NewRegistry constructs an empty resource registry.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]Resource)}
}

// Register validates and stores a resource. Resources with a blank name or
// associations pointing at an empty target are rejected.
func (reg *Registry) Register(res Resource) error {
	if reg == nil {
		return fmt.Errorf("schema: registry is nil")
	}
	if strings.TrimSpace(res.Name) == "" {
		return &Error{Reason: "resource name is required"}
	}
	for name, assoc := range res.Associations {
		if strings.TrimSpace(assoc.Target) == "" {
			return &Error{Resource: res.Name, Relation: name, Reason: "association target is required"}
		}
	}
	if res.IDField == "" {
		res.IDField = "id"
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.resources[res.Name] = res
	return nil
}

// Resource looks up a registered resource by name.
func (reg *Registry) Resource(name string) (Resource, bool) {
	if reg == nil {
		return Resource{}, false
	}
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	res, ok := reg.resources[name]
	return res, ok
}

// Describe resolves an association through the registry, combining the
// resource lookup and relation lookup into one call.
func (reg *Registry) Describe(resource, relation string) (Association, error) {
	res, ok := reg.Resource(resource)
	if !ok {
		return Association{}, &Error{Resource: resource, Reason: "resource is not registered"}
	}
	return res.Association(relation)
}
