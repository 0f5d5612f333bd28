package relation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-relationfield/pkg/query"
	"github.com/goliatone/go-relationfield/pkg/render"
)

type fakePatcher struct {
	patches []map[string]any
	result  query.Record
	err     error
}

func (p *fakePatcher) ApplyPatch(_ context.Context, _ render.Context, patch map[string]any) (query.Record, error) {
	p.patches = append(p.patches, patch)
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func TestInlineEditor_RoundTrip(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username"})
	grace := query.MapRecord{"id": 2, "username": "grace"}
	patcher := &fakePatcher{result: grace}

	editor := field.NewInlineEditor(patcher, query.MapRecord{"id": 1, "username": "ada"})
	if editor.State() != StateIdle || !editor.Valid() {
		t.Fatalf("fresh editor: state=%s valid=%v", editor.State(), editor.Valid())
	}

	if err := editor.Handle(context.Background(), render.Context{}, "2"); err != nil {
		t.Fatalf("handle: %v", err)
	}

	wantPatches := []map[string]any{{"user_id": "2"}}
	if diff := cmp.Diff(wantPatches, patcher.patches); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
	if editor.State() != StateIdle || !editor.Valid() {
		t.Fatalf("after success: state=%s valid=%v", editor.State(), editor.Valid())
	}
	if got := editor.Value().PrimaryKey(); got != 2 {
		t.Fatalf("displayed value: want id 2, got %v", got)
	}
}

func TestInlineEditor_ValidationFailureKeepsValue(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username"})
	patcher := &fakePatcher{err: &ValidationError{Fields: map[string][]string{
		"user_id": {"is not allowed"},
	}}}

	ada := query.MapRecord{"id": 1, "username": "ada"}
	editor := field.NewInlineEditor(patcher, ada)

	if err := editor.Handle(context.Background(), render.Context{}, "2"); err != nil {
		t.Fatalf("validation failures must be recovered locally, got %v", err)
	}
	if editor.State() != StateInvalid {
		t.Fatalf("state: want %s, got %s", StateInvalid, editor.State())
	}
	if editor.Valid() {
		t.Fatal("validity flag should be off after rejection")
	}
	if got := editor.Value().PrimaryKey(); got != 1 {
		t.Fatalf("displayed value must not change on rejection, got %v", got)
	}
	if len(patcher.patches) != 1 {
		t.Fatalf("patch calls: want exactly 1, got %d", len(patcher.patches))
	}
}

func TestInlineEditor_RecoverAfterRejection(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username"})
	patcher := &fakePatcher{err: &ValidationError{}}

	editor := field.NewInlineEditor(patcher, nil)
	if err := editor.Handle(context.Background(), render.Context{}, "2"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if editor.Valid() {
		t.Fatal("expected invalid editor")
	}

	grace := query.MapRecord{"id": 2, "username": "grace"}
	patcher.err = nil
	patcher.result = grace
	if err := editor.Handle(context.Background(), render.Context{}, "2"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !editor.Valid() || editor.State() != StateIdle {
		t.Fatalf("after recovery: state=%s valid=%v", editor.State(), editor.Valid())
	}
}

func TestInlineEditor_InfrastructureErrorPropagates(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username"})
	patcher := &fakePatcher{err: errors.New("connection reset")}

	editor := field.NewInlineEditor(patcher, nil)
	if err := editor.Handle(context.Background(), render.Context{}, "2"); err == nil {
		t.Fatal("expected infrastructure error to propagate")
	}
	if !editor.Valid() {
		t.Fatal("infrastructure failures must not flip the validity flag")
	}
}

func TestInlineEditor_BlankRequiresPrompt(t *testing.T) {
	withoutPrompt := userField(t, FieldSpec{Name: "user", DisplayField: "username"})
	patcher := &fakePatcher{}

	editor := withoutPrompt.NewInlineEditor(patcher, nil)
	if err := editor.Handle(context.Background(), render.Context{}, ""); err == nil {
		t.Fatal("blank selection without a prompt must be rejected")
	}
	if len(patcher.patches) != 0 {
		t.Fatalf("no patch should be issued, got %d", len(patcher.patches))
	}

	withPrompt := userField(t, FieldSpec{
		Name:         "user",
		DisplayField: "username",
		Prompt:       PromptText("Choose a user"),
	})
	editor = withPrompt.NewInlineEditor(patcher, query.MapRecord{"id": 1})
	if err := editor.Handle(context.Background(), render.Context{}, ""); err != nil {
		t.Fatalf("blank selection with a prompt: %v", err)
	}
	wantPatches := []map[string]any{{"user_id": nil}}
	if diff := cmp.Diff(wantPatches, patcher.patches); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
	if editor.Value() != nil {
		t.Fatalf("blank selection should clear the value, got %v", editor.Value())
	}
}

func TestInlineEditor_ReadonlyRejectsEdits(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username", Readonly: true})
	patcher := &fakePatcher{}

	editor := field.NewInlineEditor(patcher, nil)
	if !editor.Readonly() {
		t.Fatal("expected readonly editor")
	}
	if err := editor.Handle(context.Background(), render.Context{}, "2"); err == nil {
		t.Fatal("readonly field must reject edits")
	}
	if len(patcher.patches) != 0 {
		t.Fatalf("no patch should be issued, got %d", len(patcher.patches))
	}
}

// reentrantPatcher issues a second edit while the first patch is still in
// flight, simulating a newer event landing before the older result applies.
type reentrantPatcher struct {
	editor  *InlineEditor
	rctx    render.Context
	second  string
	stale   query.Record
	fresh   query.Record
	entered bool
}

func (p *reentrantPatcher) ApplyPatch(ctx context.Context, _ render.Context, patch map[string]any) (query.Record, error) {
	if !p.entered {
		p.entered = true
		if err := p.editor.Handle(ctx, p.rctx, p.second); err != nil {
			return nil, err
		}
		return p.stale, nil
	}
	return p.fresh, nil
}

func TestInlineEditor_StaleResultDiscarded(t *testing.T) {
	field := userField(t, FieldSpec{Name: "user", DisplayField: "username"})

	stale := query.MapRecord{"id": 2, "username": "grace"}
	fresh := query.MapRecord{"id": 3, "username": "alan"}
	patcher := &reentrantPatcher{second: "3", stale: stale, fresh: fresh}

	editor := field.NewInlineEditor(patcher, query.MapRecord{"id": 1, "username": "ada"})
	patcher.editor = editor

	if err := editor.Handle(context.Background(), render.Context{}, "2"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := editor.Value().PrimaryKey(); got != 3 {
		t.Fatalf("stale result regressed displayed value: want id 3, got %v", got)
	}
	if editor.State() != StateIdle || !editor.Valid() {
		t.Fatalf("after race: state=%s valid=%v", editor.State(), editor.Valid())
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string][]string{
		"user_id": {"required"},
		"role":    {"unknown"},
	}}
	want := "relation: patch rejected: role, user_id"
	if got := err.Error(); got != want {
		t.Fatalf("message: want %q, got %q", want, got)
	}
}
