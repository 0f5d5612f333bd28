// Package relation implements an editable to-one relation field for
// admin-resource rendering: association introspection, candidate selects for
// form and list contexts, value presentation, and inline editing through the
// host's generic field-update protocol.
package relation

import (
	"strings"

	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
)

// FieldSpec is the static configuration a resource definition declares for
// one relation field. Specs are plain values, immutable once constructed, and
// owned by the resource definition for the life of the host configuration.
type FieldSpec struct {
	// Name is the relation name on the owning resource's schema.
	Name string
	// Label overrides the humanised relation name in field chrome.
	Label string
	// DisplayField is the target attribute shown in read and list contexts.
	DisplayField string
	// FormDisplayField, when set, replaces DisplayField inside create/edit
	// forms so editing can use a denser label.
	FormDisplayField string
	// Resource names the associated admin resource used for link generation.
	// Blank disables links.
	Resource string
	// Transform constrains the candidate query per render. Nil means the full
	// target collection.
	Transform query.Transform
	// Prompt configures the blank option. Nil means no blank choice exists.
	Prompt *Prompt
	// Readonly disables the editors while leaving presentation untouched.
	Readonly bool
}

func (s FieldSpec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errMissingName
	}
	return nil
}

// formDisplayField returns the display attribute for form contexts.
func (s FieldSpec) formDisplayField() string {
	if s.FormDisplayField != "" {
		return s.FormDisplayField
	}
	return s.DisplayField
}

// Prompt is the blank-option configuration: either a literal or a function of
// the render context, resolved fresh on every render so placeholder text can
// depend on request state.
type Prompt struct {
	text string
	fn   func(render.Context) string
}

// PromptText configures a literal prompt.
func PromptText(text string) *Prompt {
	return &Prompt{text: text}
}

// PromptFunc configures a context-dependent prompt. The function must be pure.
func PromptFunc(fn func(render.Context) string) *Prompt {
	return &Prompt{fn: fn}
}

// Resolve produces the prompt text for one render.
func (p *Prompt) Resolve(rctx render.Context) string {
	if p == nil {
		return ""
	}
	if p.fn != nil {
		return p.fn(rctx)
	}
	return p.text
}
