// Package optionsapi exposes a relation field's candidate list over HTTP so
// async select widgets can search and page options client-side.
package optionsapi

import (
	"context"
	"net/http"

	fieldoptions "github.com/goliatone/go-relationfield/pkg/options"
)

// GuardFunc vets a request before candidates load. Returning an error stops
// the request; errors implementing HTTPError pick the response status.
type GuardFunc func(r *http.Request) error

// Loader produces the candidate list for one request. Implementations
// typically derive a render context from the request and call
// relation.Field.LoadOptions.
type Loader func(ctx context.Context, r *http.Request) ([]fieldoptions.Candidate, error)

// Options configures the component.
type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
	Loader       Loader
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/relation-options",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

// NewOptions applies overrides on top of defaults and clamps bad values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/relation-options"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	return opts
}

// WithRoutePath overrides the component route.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithSearchParam overrides the search query parameter name.
func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// WithLimitParam overrides the limit query parameter name.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

// WithDefaultLimit overrides the limit applied when the request sends none.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

// WithMaxLimit overrides the hard cap on requested limits.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithLoader installs the candidate loader. The handler fails closed with 500
// when no loader is configured.
func WithLoader(loader Loader) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Loader = loader
	}
}
