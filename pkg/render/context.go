// Package render carries the per-request state field operations need to make
// link, prompt, and filter decisions. The context is always passed by
// parameter; nothing in this module reads ambient or global request state.
package render

// LiveAction identifies the rendering mode the host is currently in.
type LiveAction string

const (
	LiveActionIndex    LiveAction = "index"
	LiveActionShow     LiveAction = "show"
	LiveActionForm     LiveAction = "form"
	LiveActionResource LiveAction = "resource-action"
)

// Context is the ambient state for one render cycle: the connection handle the
// host uses for path generation, the current actor for capability checks, path
// parameters, rendering mode, and any extra request state query transforms
// want to see. Supplied externally per render; never cached across requests.
type Context struct {
	// Socket is the host's opaque connection handle, forwarded untouched to
	// path-generation and patch collaborators.
	Socket any
	// Actor identifies who is rendering, for capability checks and transforms.
	Actor any
	// Params holds the current path parameters.
	Params map[string]string
	// LiveAction is the rendering mode (index/show/form/resource-action).
	LiveAction LiveAction
	// Assigns carries additional request state for query transforms, keyed by
	// host-defined names (current tenant, parent record, active filters).
	Assigns map[string]any
}

// Param returns the named path parameter or "".
func (c Context) Param(name string) string {
	if c.Params == nil {
		return ""
	}
	return c.Params[name]
}

// Assign returns the named assign and whether it was present.
func (c Context) Assign(name string) (any, bool) {
	if c.Assigns == nil {
		return nil, false
	}
	value, ok := c.Assigns[name]
	return value, ok
}

// WithParam returns a copy of the context with one path parameter set.
func (c Context) WithParam(name, value string) Context {
	params := make(map[string]string, len(c.Params)+1)
	for key, val := range c.Params {
		params[key] = val
	}
	params[name] = value
	c.Params = params
	return c
}
