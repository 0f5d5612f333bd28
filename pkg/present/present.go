// Package present decides how a relation's current value displays: nothing,
// plain text, or a capability-gated link to the related record.
package present

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
)

// Action names a capability the host's authorization collaborator understands.
type Action string

// ActionShow gates links to a related record's detail view.
const ActionShow Action = "show"

// Authorizer is the capability-check seam. Implementations answer "may the
// current actor perform action on record within resource"; this package
// treats the answer as an opaque boolean.
type Authorizer interface {
	Can(rctx render.Context, action Action, rec query.Record, resource string) bool
}

// PathBuilder resolves the URL for a related record's detail view.
type PathBuilder interface {
	BuildPath(rctx render.Context, resource string, action Action, rec query.Record) string
}

// Printer renders display text, substituting a conventional indicator for
// blank values so the UI never shows indistinguishable empty cells.
type Printer func(text string) string

// PrettyPrint is the default Printer: blank text becomes an em dash.
func PrettyPrint(text string) string {
	if strings.TrimSpace(text) == "" {
		return "—"
	}
	return text
}

// Kind discriminates display decisions.
type Kind int

const (
	// KindEmpty means no associated record: render nothing beyond the host's
	// empty treatment.
	KindEmpty Kind = iota
	// KindText renders the display text without navigation.
	KindText
	// KindLink renders the display text as a link to URL.
	KindLink
)

// Decision is the presenter's verdict for one value.
type Decision struct {
	Kind Kind
	Text string
	URL  string
}

// Input bundles the static field configuration the presenter needs.
type Input struct {
	// DisplayField is the attribute projected into display text.
	DisplayField string
	// Resource names the associated admin resource for link generation. Blank
	// disables links entirely, regardless of authorization.
	Resource string
	// Authorizer and Paths are the capability and routing seams. A link is
	// produced only when both are present and the capability check passes.
	Authorizer Authorizer
	Paths      PathBuilder
	// Printer overrides PrettyPrint when set.
	Printer Printer
}

// Resolve maps a current value onto a Decision. An absent value is always
// Empty. A present value yields its pretty-printed display text, upgraded to
// a link when the field names an associated resource and the show capability
// check passes for the current actor.
func Resolve(rctx render.Context, value query.Record, in Input) Decision {
	if value == nil {
		return Decision{Kind: KindEmpty}
	}

	printer := in.Printer
	if printer == nil {
		printer = PrettyPrint
	}
	text := printer(displayText(value, in.DisplayField))

	if in.Resource == "" || in.Authorizer == nil || in.Paths == nil {
		return Decision{Kind: KindText, Text: text}
	}
	if !in.Authorizer.Can(rctx, ActionShow, value, in.Resource) {
		return Decision{Kind: KindText, Text: text}
	}

	return Decision{
		Kind: KindLink,
		Text: text,
		URL:  in.Paths.BuildPath(rctx, in.Resource, ActionShow, value),
	}
}

// displayText projects the display attribute, treating a missing or nil
// attribute as blank rather than failing.
func displayText(value query.Record, displayField string) string {
	if displayField == "" {
		return ""
	}
	attr, ok := value.Attr(displayField)
	if !ok || attr == nil {
		return ""
	}
	if str, ok := attr.(string); ok {
		return str
	}
	return fmt.Sprint(attr)
}
