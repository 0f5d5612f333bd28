// Package options turns a relation's target collection into the ordered
// (label, identifier) pairs the select editors offer.
package options

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
)

// Candidate is one selectable target record.
type Candidate struct {
	Label string `json:"label"`
	ID    any    `json:"id"`
}

// Source describes what to load: the target collection, the attribute used
// for labels, and an optional per-request query transform.
type Source struct {
	Target       string
	DisplayField string
	Transform    query.Transform
}

// Provider loads candidates through a Repository.
type Provider struct {
	repo query.Repository
	log  zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Provider) {
		p.log = log
	}
}

// New constructs a Provider over the given repository.
func New(repo query.Repository, opts ...Option) *Provider {
	p := &Provider{
		repo: repo,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Load builds the candidate list for one render. The base query covers every
// record of the target collection; the transform, when present, constrains it
// using the render context. Results project to (DisplayField, PrimaryKey) in
// exactly the order the repository returns them: no re-sort, no dedup, no
// cap. Query authors own ordering and size policy via the transform.
func (p *Provider) Load(ctx context.Context, rctx render.Context, src Source) ([]Candidate, error) {
	if p == nil || p.repo == nil {
		return nil, fmt.Errorf("options: provider has no repository")
	}
	if src.Target == "" {
		return nil, fmt.Errorf("options: source target is required")
	}

	q := query.From(src.Target)
	if src.Transform != nil {
		q = src.Transform(q, rctx)
	}

	records, err := p.repo.All(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("options: load %s candidates: %w", src.Target, err)
	}

	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, Candidate{
			Label: labelFor(rec, src.DisplayField),
			ID:    rec.PrimaryKey(),
		})
	}

	p.log.Debug().
		Str("target", src.Target).
		Str("display_field", src.DisplayField).
		Int("count", len(candidates)).
		Msg("loaded relation candidates")

	return candidates, nil
}

// labelFor projects the display attribute to a string. Absent or nil values
// become an empty label; presentation prettifies those at render time.
func labelFor(rec query.Record, displayField string) string {
	if displayField == "" {
		return ""
	}
	value, ok := rec.Attr(displayField)
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}
