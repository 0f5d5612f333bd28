package relation

import (
	"embed"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const selectTemplate = "templates/select.tpl"

// templateEngine is a small pongo2 wrapper with per-engine template caching.
type templateEngine struct {
	mu    sync.Mutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

func newTemplateEngine() *templateEngine {
	return &templateEngine{
		set:   pongo2.NewSet("relationfield", pongo2.NewFSLoader(templateFS)),
		cache: make(map[string]*pongo2.Template),
	}
}

func (e *templateEngine) render(name string, data map[string]any) (string, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("relation: execute template %q: %w", name, err)
	}
	return out, nil
}

func (e *templateEngine) template(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("relation: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}
