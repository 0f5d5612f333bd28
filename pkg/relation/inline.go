package relation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
)

// State is the inline editor's lifecycle position.
type State string

const (
	// StateIdle shows the current value; the last edit (if any) succeeded.
	StateIdle State = "idle"
	// StateEditing means a patch is in flight.
	StateEditing State = "editing"
	// StateInvalid means the last patch was rejected; the displayed value is
	// unchanged and the control carries error styling.
	StateInvalid State = "invalid"
)

// Patcher is the host's generic inline-update protocol: persist a
// single-attribute patch and return the updated related record, a
// *ValidationError on rejection, or any other error for infrastructure
// failures.
type Patcher interface {
	ApplyPatch(ctx context.Context, rctx render.Context, patch map[string]any) (query.Record, error)
}

// ValidationError reports a patch rejected by the persistence layer, keyed by
// attribute. The inline editor recovers from it locally; it never surfaces to
// the host.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "relation: patch rejected"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "relation: patch rejected: " + strings.Join(names, ", ")
}

// InlineEditor tracks one list-context edit instance. Instances are
// independent; nothing locks across editors, and last write wins at the
// persistence layer when two edits race on the same record.
type InlineEditor struct {
	field   *Field
	patcher Patcher
	value   query.Record
	state   State
	valid   bool
	seq     uint64
}

// NewInlineEditor creates an edit instance bound to the current value.
func (f *Field) NewInlineEditor(patcher Patcher, current query.Record) *InlineEditor {
	return &InlineEditor{
		field:   f,
		patcher: patcher,
		value:   current,
		state:   StateIdle,
		valid:   true,
	}
}

// Value returns the displayed related record, nil when the foreign key is
// null.
func (ed *InlineEditor) Value() query.Record { return ed.value }

// Valid reports whether the control should render without error styling.
// Validity and readonly are independent concerns.
func (ed *InlineEditor) Valid() bool { return ed.valid }

// State returns the editor's current state.
func (ed *InlineEditor) State() State { return ed.state }

// Readonly reports the spec's global readonly flag.
func (ed *InlineEditor) Readonly() bool { return ed.field != nil && ed.field.spec.Readonly }

// Handle processes a change event from the select control. selected is the
// posted option value; "" is the blank option and is only legal when the spec
// configures a prompt. Exactly one patch {ownerKey: selected} goes through
// the Patcher. Success updates the displayed value; a *ValidationError flips
// the editor to StateInvalid without changing the displayed value; other
// errors propagate for the host to handle.
//
// Every submission carries a sequence number. If a newer edit was issued
// before this one's result lands, the stale result is discarded so it cannot
// regress the displayed state.
func (ed *InlineEditor) Handle(ctx context.Context, rctx render.Context, selected string) error {
	if ed == nil || ed.field == nil {
		return fmt.Errorf("relation: inline editor is not bound to a field")
	}
	if ed.field.spec.Readonly {
		return fmt.Errorf("relation: field %q is readonly", ed.field.spec.Name)
	}
	if ed.patcher == nil {
		return fmt.Errorf("relation: field %q has no patcher", ed.field.spec.Name)
	}

	var patchValue any
	if selected == "" {
		if ed.field.spec.Prompt == nil {
			return fmt.Errorf("relation: field %q does not offer a blank choice", ed.field.spec.Name)
		}
	} else {
		patchValue = selected
	}

	ed.seq++
	issued := ed.seq
	ed.state = StateEditing

	updated, err := ed.patcher.ApplyPatch(ctx, rctx, map[string]any{
		ed.field.meta.OwnerKey: patchValue,
	})

	if issued != ed.seq {
		// A newer edit superseded this one while its result was pending; its
		// outcome owns the editor state now.
		ed.field.log.Debug().
			Str("relation", ed.field.spec.Name).
			Uint64("issued", issued).
			Uint64("latest", ed.seq).
			Msg("discarded stale inline edit result")
		return nil
	}

	var invalid *ValidationError
	switch {
	case err == nil:
		ed.value = updated
		ed.valid = true
		ed.state = StateIdle
	case errors.As(err, &invalid):
		ed.field.log.Debug().
			Str("relation", ed.field.spec.Name).
			Err(err).
			Msg("inline edit rejected")
		ed.valid = false
		ed.state = StateInvalid
		return nil
	default:
		ed.state = StateIdle
		return fmt.Errorf("relation: apply inline patch for %q: %w", ed.field.spec.Name, err)
	}
	return nil
}
