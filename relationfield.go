// Package relationfield implements an editable to-one relation field for
// admin-resource rendering frameworks: schema-driven association resolution,
// constrained candidate selects, capability-gated value links, and inline
// list-context editing over the host's generic field-update protocol.
package relationfield

import (
	"context"

	"github.com/goliatone/go-relationfield/pkg/options"
	"github.com/goliatone/go-relationfield/pkg/present"
	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/relation"
	"github.com/goliatone/go-relationfield/pkg/render"
	"github.com/goliatone/go-relationfield/pkg/schema"
)

// FieldSpec is the static configuration a resource definition declares.
type FieldSpec = relation.FieldSpec

// Field is a spec bound to resolved association metadata and collaborators.
type Field = relation.Field

// FormState is the slice of surrounding form state the field reads.
type FormState = relation.FormState

// InlineEditor tracks one list-context edit instance.
type InlineEditor = relation.InlineEditor

// ValidationError reports an inline patch rejected by the persistence layer.
type ValidationError = relation.ValidationError

// Candidate is one selectable (label, identifier) pair.
type Candidate = options.Candidate

// RenderContext is the explicit per-request state threaded through every
// operation.
type RenderContext = render.Context

// Decision is the value presenter's verdict: empty, text, or link.
type Decision = present.Decision

// Association is the derived relation metadata: target collection plus
// owner-key attribute.
type Association = schema.Association

// Transform rewrites the candidate query using per-request context.
type Transform = query.Transform

// PromptText configures a literal blank-option prompt.
func PromptText(text string) *relation.Prompt {
	return relation.PromptText(text)
}

// PromptFunc configures a context-dependent blank-option prompt.
func PromptFunc(fn func(render.Context) string) *relation.Prompt {
	return relation.PromptFunc(fn)
}

// Bind resolves a field spec against the owning resource's schema, failing
// fast on unknown relations. It is the main entry point for resource
// definitions.
func Bind(spec FieldSpec, res schema.Resource, opts ...relation.Option) (*Field, error) {
	return relation.Bind(spec, res, opts...)
}

// LoadOptions is a convenience for one-off candidate loads outside a bound
// field, e.g. ad-hoc admin tooling.
func LoadOptions(ctx context.Context, repo query.Repository, rctx RenderContext, src options.Source) ([]Candidate, error) {
	return options.New(repo).Load(ctx, rctx, src)
}
