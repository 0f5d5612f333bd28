package relation

import theme "github.com/goliatone/go-theme"

// Default chrome classes applied when no theme tokens override them.
const (
	DefaultFieldClass        = "relationfield-field"
	DefaultSelectClass       = "relationfield-select"
	DefaultInlineSelectClass = "relationfield-select relationfield-select-inline"
	DefaultInvalidClass      = "relationfield-invalid"
	DefaultLinkClass         = "relationfield-link"
	DefaultEmptyClass        = "relationfield-empty"
)

// Theme token keys the field resolves from a go-theme renderer config.
const (
	tokenFieldClass        = "relation.field"
	tokenSelectClass       = "relation.select"
	tokenInlineSelectClass = "relation.select.inline"
	tokenInvalidClass      = "relation.select.invalid"
	tokenLinkClass         = "relation.link"
	tokenEmptyClass        = "relation.empty"
)

type chromeClasses struct {
	field        string
	sel          string
	inlineSelect string
	invalid      string
	link         string
	empty        string
}

func resolveChrome(cfg *theme.RendererConfig) chromeClasses {
	classes := chromeClasses{
		field:        DefaultFieldClass,
		sel:          DefaultSelectClass,
		inlineSelect: DefaultInlineSelectClass,
		invalid:      DefaultInvalidClass,
		link:         DefaultLinkClass,
		empty:        DefaultEmptyClass,
	}
	if cfg == nil || len(cfg.Tokens) == 0 {
		return classes
	}
	if token := cfg.Tokens[tokenFieldClass]; token != "" {
		classes.field = token
	}
	if token := cfg.Tokens[tokenSelectClass]; token != "" {
		classes.sel = token
	}
	if token := cfg.Tokens[tokenInlineSelectClass]; token != "" {
		classes.inlineSelect = token
	}
	if token := cfg.Tokens[tokenInvalidClass]; token != "" {
		classes.invalid = token
	}
	if token := cfg.Tokens[tokenLinkClass]; token != "" {
		classes.link = token
	}
	if token := cfg.Tokens[tokenEmptyClass]; token != "" {
		classes.empty = token
	}
	return classes
}
