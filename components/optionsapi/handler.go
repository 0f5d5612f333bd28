package optionsapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	fieldoptions "github.com/goliatone/go-relationfield/pkg/options"
)

// HTTPError lets guard errors choose their response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a minimal HTTPError implementation.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns the response status, defaulting to 500.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type candidatesResponse struct {
	Data []fieldoptions.Candidate `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Defaults and clamps re-apply so hand-built values stay safe.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		if opts.Loader == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		candidates, err := opts.Loader(r.Context(), r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		search := r.URL.Query().Get(opts.SearchParam)
		limit := clampLimit(parseInt(r.URL.Query().Get(opts.LimitParam)), opts)
		results := filterCandidates(candidates, search, limit)
		if results == nil {
			results = []fieldoptions.Candidate{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(candidatesResponse{Data: results})
	})
}

// filterCandidates keeps candidates whose label contains the search term
// (case-insensitive) and truncates to limit, preserving input order.
func filterCandidates(candidates []fieldoptions.Candidate, search string, limit int) []fieldoptions.Candidate {
	search = strings.ToLower(strings.TrimSpace(search))
	results := make([]fieldoptions.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if search != "" && !strings.Contains(strings.ToLower(candidate.Label), search) {
			continue
		}
		results = append(results, candidate)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results
}

func clampLimit(requested int, opts Options) int {
	if requested <= 0 {
		return opts.DefaultLimit
	}
	if requested > opts.MaxLimit {
		return opts.MaxLimit
	}
	return requested
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	http.Error(w, http.StatusText(code), code)
}
