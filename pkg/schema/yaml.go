package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Resources []yamlResource `yaml:"resources"`
}

type yamlResource struct {
	Name      string                     `yaml:"name"`
	IDField   string                     `yaml:"id_field"`
	Relations map[string]yamlAssociation `yaml:"relations"`
}

type yamlAssociation struct {
	Target      string `yaml:"target"`
	OwnerKey    string `yaml:"owner_key"`
	Cardinality string `yaml:"cardinality"`
}

// LoadYAML decodes an explicit resource document. The format mirrors what the
// OpenAPI loader derives, for integrators that keep admin metadata outside
// their API contract:
//
//	resources:
//	  - name: posts
//	    relations:
//	      user:
//	        target: users
//	        owner_key: user_id
func LoadYAML(raw []byte) ([]Resource, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: yaml document is empty")
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode yaml document: %w", err)
	}
	if len(doc.Resources) == 0 {
		return nil, errors.New("schema: yaml document declares no resources")
	}

	resources := make([]Resource, 0, len(doc.Resources))
	for _, entry := range doc.Resources {
		if entry.Name == "" {
			return nil, &Error{Reason: "yaml resource entry is missing a name"}
		}
		resource := Resource{
			Name:         entry.Name,
			IDField:      entry.IDField,
			Associations: make(map[string]Association, len(entry.Relations)),
		}
		if resource.IDField == "" {
			resource.IDField = "id"
		}
		for name, rel := range entry.Relations {
			if rel.Target == "" {
				return nil, &Error{Resource: entry.Name, Relation: name, Reason: "yaml relation is missing a target"}
			}
			ownerKey := rel.OwnerKey
			if ownerKey == "" {
				ownerKey = defaultOwnerKey(name)
			}
			resource.Associations[name] = Association{
				Name:        name,
				Target:      rel.Target,
				OwnerKey:    ownerKey,
				Cardinality: rel.Cardinality,
			}
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
