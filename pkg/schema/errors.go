package schema

import "fmt"

// Error reports a resource or association misconfiguration. Lookups that fail
// with *Error indicate an integrator mistake and are meant to surface at
// registration or bind time rather than being recovered mid-render.
type Error struct {
	Resource string
	Relation string
	Reason   string
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "schema: unknown error"
	case e.Relation != "":
		return fmt.Sprintf("schema: resource %q relation %q: %s", e.Resource, e.Relation, e.Reason)
	case e.Resource != "":
		return fmt.Sprintf("schema: resource %q: %s", e.Resource, e.Reason)
	default:
		return "schema: " + e.Reason
	}
}

func unknownRelation(resource, relation string) *Error {
	return &Error{Resource: resource, Relation: relation, Reason: "relation is not declared"}
}
