package optionsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	fieldoptions "github.com/goliatone/go-relationfield/pkg/options"
)

func staticLoader(candidates []fieldoptions.Candidate) Loader {
	return func(context.Context, *http.Request) ([]fieldoptions.Candidate, error) {
		return candidates, nil
	}
}

func userCandidates() []fieldoptions.Candidate {
	return []fieldoptions.Candidate{
		{Label: "ada", ID: float64(1)},
		{Label: "grace", ID: float64(2)},
		{Label: "alan", ID: float64(3)},
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) []fieldoptions.Candidate {
	t.Helper()
	var payload struct {
		Data []fieldoptions.Candidate `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Data
}

func TestHandler_ReturnsCandidates(t *testing.T) {
	handler := Handler(WithLoader(staticLoader(userCandidates())))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type: got %q", ct)
	}
	if diff := cmp.Diff(userCandidates(), decodeResponse(t, rec)); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SearchAndLimit(t *testing.T) {
	handler := Handler(WithLoader(staticLoader(userCandidates())))

	t.Run("search filters by label", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options?q=GRA", nil))

		got := decodeResponse(t, rec)
		if len(got) != 1 || got[0].Label != "grace" {
			t.Fatalf("search result: got %+v", got)
		}
	})

	t.Run("limit truncates preserving order", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options?limit=2", nil))

		got := decodeResponse(t, rec)
		if len(got) != 2 || got[0].Label != "ada" || got[1].Label != "grace" {
			t.Fatalf("limited result: got %+v", got)
		}
	})

	t.Run("limit clamps to max", func(t *testing.T) {
		clamped := Handler(
			WithLoader(staticLoader(userCandidates())),
			WithMaxLimit(1),
		)
		rec := httptest.NewRecorder()
		clamped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options?limit=99", nil))

		if got := decodeResponse(t, rec); len(got) != 1 {
			t.Fatalf("clamped result: got %+v", got)
		}
	})
}

func TestHandler_Guard(t *testing.T) {
	denied := Handler(
		WithLoader(staticLoader(userCandidates())),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
		}),
	)

	rec := httptest.NewRecorder()
	denied.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want 401, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	handler := Handler(WithLoader(staticLoader(nil)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/relation-options", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: want 405, got %d", rec.Code)
	}
}

func TestHandler_LoaderFailure(t *testing.T) {
	handler := Handler(WithLoader(func(context.Context, *http.Request) ([]fieldoptions.Candidate, error) {
		return nil, errors.New("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want 500, got %d", rec.Code)
	}
}

func TestHandler_MissingLoader(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relation-options", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want 500, got %d", rec.Code)
	}
}
