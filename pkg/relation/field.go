package relation

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-relationfield/pkg/options"
	"github.com/goliatone/go-relationfield/pkg/present"
	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
	"github.com/goliatone/go-relationfield/pkg/schema"
)

var errMissingName = errors.New("relation: field spec needs a relation name")

// Field is a FieldSpec bound to its resolved association metadata and
// collaborator seams. Bind validates the relation at resource-registration
// time so schema mistakes fail at startup, not at arbitrary render time.
type Field struct {
	spec      FieldSpec
	meta      schema.Association
	provider  *options.Provider
	auth      present.Authorizer
	paths     present.PathBuilder
	printer   present.Printer
	theme     *theme.RendererConfig
	log       zerolog.Logger
	templates *templateEngine
}

// Option configures a Field during Bind.
type Option func(*Field)

// WithRepository wires the data-access seam candidates load through.
func WithRepository(repo query.Repository) Option {
	return func(f *Field) {
		if repo != nil {
			f.provider = options.New(repo)
		}
	}
}

// WithProvider installs a pre-built option provider, for hosts that share one
// provider (and its logger) across fields.
func WithProvider(provider *options.Provider) Option {
	return func(f *Field) {
		if provider != nil {
			f.provider = provider
		}
	}
}

// WithAuthorizer wires the capability-check seam used for link decisions.
func WithAuthorizer(auth present.Authorizer) Option {
	return func(f *Field) { f.auth = auth }
}

// WithPathBuilder wires the path-generation seam used for link URLs.
func WithPathBuilder(paths present.PathBuilder) Option {
	return func(f *Field) { f.paths = paths }
}

// WithPrinter overrides the pretty-empty printer.
func WithPrinter(printer present.Printer) Option {
	return func(f *Field) {
		if printer != nil {
			f.printer = printer
		}
	}
}

// WithTheme resolves chrome classes from a go-theme renderer config.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(f *Field) { f.theme = cfg }
}

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Field) { f.log = log }
}

// Bind resolves a field spec against the owning resource's schema. Unknown
// relation names and to-many associations fail here with a *schema.Error;
// both indicate resource misconfiguration and must surface to the integrator.
func Bind(spec FieldSpec, res schema.Resource, opts ...Option) (*Field, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	meta, err := res.Association(spec.Name)
	if err != nil {
		return nil, err
	}
	if !meta.ToOne() {
		return nil, &schema.Error{
			Resource: res.Name,
			Relation: spec.Name,
			Reason:   fmt.Sprintf("relation field needs a to-one association, got cardinality %q", meta.Cardinality),
		}
	}

	field := &Field{
		spec:      spec,
		meta:      meta,
		printer:   present.PrettyPrint,
		log:       zerolog.Nop(),
		templates: newTemplateEngine(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(field)
		}
	}
	return field, nil
}

// Spec returns the static field configuration.
func (f *Field) Spec() FieldSpec { return f.spec }

// Metadata returns the resolved association metadata.
func (f *Field) Metadata() schema.Association { return f.meta }

// IsAssociation reports that the field edits an association, for the host's
// generic field dispatch.
func (f *Field) IsAssociation() bool { return true }

// DisplayField returns the attribute shown in read and list contexts.
func (f *Field) DisplayField() string { return f.spec.DisplayField }

// FormDisplayField returns the attribute labelling candidates inside forms.
func (f *Field) FormDisplayField() string { return f.spec.formDisplayField() }

// Label returns the field label, humanising the relation name when the spec
// does not set one.
func (f *Field) Label() string {
	if f.spec.Label != "" {
		return sanitizeText(f.spec.Label)
	}
	return humanize(f.spec.Name)
}

// LoadOptions loads the candidate list using the read/list display attribute.
// Candidates are recomputed per render; option sets may depend on the current
// actor or filters, so nothing is cached across requests.
func (f *Field) LoadOptions(ctx context.Context, rctx render.Context) ([]options.Candidate, error) {
	return f.loadOptions(ctx, rctx, f.spec.DisplayField)
}

// LoadFormOptions loads the candidate list using the form display attribute.
func (f *Field) LoadFormOptions(ctx context.Context, rctx render.Context) ([]options.Candidate, error) {
	return f.loadOptions(ctx, rctx, f.spec.formDisplayField())
}

func (f *Field) loadOptions(ctx context.Context, rctx render.Context, displayField string) ([]options.Candidate, error) {
	if f.provider == nil {
		return nil, fmt.Errorf("relation: field %q has no option provider", f.spec.Name)
	}
	return f.provider.Load(ctx, rctx, options.Source{
		Target:       f.meta.Target,
		DisplayField: displayField,
		Transform:    f.spec.Transform,
	})
}

// Present resolves the display decision for the current value without
// rendering markup, for hosts that draw their own chrome.
func (f *Field) Present(rctx render.Context, value query.Record) present.Decision {
	return present.Resolve(rctx, value, present.Input{
		DisplayField: f.spec.DisplayField,
		Resource:     f.spec.Resource,
		Authorizer:   f.auth,
		Paths:        f.paths,
		Printer:      f.printer,
	})
}

// RenderValue renders the read-context markup for the current value: an
// empty-value indicator, plain text, or a link to the related record when the
// spec names an associated resource and the show capability check passes.
func (f *Field) RenderValue(rctx render.Context, value query.Record) string {
	classes := resolveChrome(f.theme)
	decision := f.Present(rctx, value)

	var builder strings.Builder
	switch decision.Kind {
	case present.KindLink:
		builder.WriteString(`<a href="`)
		builder.WriteString(html.EscapeString(decision.URL))
		builder.WriteString(`" class="`)
		builder.WriteString(html.EscapeString(classes.link))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(decision.Text))
		builder.WriteString(`</a>`)
	case present.KindText:
		builder.WriteString(`<span>`)
		builder.WriteString(html.EscapeString(decision.Text))
		builder.WriteString(`</span>`)
	default:
		printer := f.printer
		if printer == nil {
			printer = present.PrettyPrint
		}
		builder.WriteString(`<span class="`)
		builder.WriteString(html.EscapeString(classes.empty))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(printer("")))
		builder.WriteString(`</span>`)
	}
	return builder.String()
}

// FormState is the slice of surrounding form state the field reads: attribute
// values keyed by name, with the owner key carrying the current selection.
type FormState struct {
	Values map[string]any
}

// Value returns the named form value and whether it was present.
func (s FormState) Value(attr string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	value, ok := s.Values[attr]
	return value, ok
}

// RenderForm renders the create/edit select bound to the owner-key attribute.
// Candidates use the form display attribute; the prompt resolves per render;
// no option is selected unless the form state carries a matching identifier.
func (f *Field) RenderForm(ctx context.Context, rctx render.Context, state FormState) (string, error) {
	candidates, err := f.LoadFormOptions(ctx, rctx)
	if err != nil {
		return "", err
	}

	selected, _ := state.Value(f.meta.OwnerKey)
	classes := resolveChrome(f.theme)

	control, err := f.renderSelect(selectData{
		classes:    classes.sel,
		candidates: candidates,
		selected:   selected,
		rctx:       rctx,
	})
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(`<div class="`)
	builder.WriteString(html.EscapeString(classes.field))
	builder.WriteString("\">\n")
	builder.WriteString(`  <label for="`)
	builder.WriteString(html.EscapeString(f.controlID()))
	builder.WriteString(`">`)
	builder.WriteString(html.EscapeString(f.Label()))
	builder.WriteString("</label>\n")
	builder.WriteString(control)
	builder.WriteString("</div>\n")
	return builder.String(), nil
}

// RenderInlineForm renders the compact list-context select for an inline edit
// instance: bound to the editor's current value, flagged via aria-invalid
// when the last patch was rejected, and disabled when the spec is readonly.
func (f *Field) RenderInlineForm(ctx context.Context, rctx render.Context, editor *InlineEditor) (string, error) {
	if editor == nil {
		return "", fmt.Errorf("relation: inline editor is required")
	}

	candidates, err := f.LoadOptions(ctx, rctx)
	if err != nil {
		return "", err
	}

	var selected any
	if value := editor.Value(); value != nil {
		selected = value.PrimaryKey()
	}

	classes := resolveChrome(f.theme)
	selectClasses := classes.inlineSelect
	if !editor.Valid() {
		selectClasses += " " + classes.invalid
	}

	return f.renderSelect(selectData{
		classes:    selectClasses,
		candidates: candidates,
		selected:   selected,
		invalid:    !editor.Valid(),
		readonly:   f.spec.Readonly,
		rctx:       rctx,
	})
}

type selectData struct {
	classes    string
	candidates []options.Candidate
	selected   any
	invalid    bool
	readonly   bool
	rctx       render.Context
}

func (f *Field) renderSelect(data selectData) (string, error) {
	opts := make([]map[string]any, 0, len(data.candidates))
	noneSelected := true
	for _, candidate := range data.candidates {
		isSelected := data.selected != nil && idEq(candidate.ID, data.selected)
		if isSelected {
			noneSelected = false
		}
		opts = append(opts, map[string]any{
			"id":       candidate.ID,
			"label":    candidate.Label,
			"selected": isSelected,
		})
	}

	return f.templates.render(selectTemplate, map[string]any{
		"field_id":      f.controlID(),
		"field_name":    f.meta.OwnerKey,
		"classes":       data.classes,
		"required":      false,
		"readonly":      data.readonly,
		"invalid":       data.invalid,
		"has_prompt":    f.spec.Prompt != nil,
		"prompt":        sanitizeText(f.spec.Prompt.Resolve(data.rctx)),
		"none_selected": noneSelected,
		"options":       opts,
	})
}

func (f *Field) controlID() string {
	return "rf-" + f.meta.OwnerKey
}

// idEq compares identifiers across representations; select controls post
// strings while repositories may return ints or UUIDs.
func idEq(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func humanize(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return ""
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}
