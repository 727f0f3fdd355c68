// Package render turns named templates and a parameter context into text.
//
// Templates are Go text/templates with the sprig function library. Every
// regular file under the templates directory is a template, named by its
// slash-separated path relative to that directory.
package render

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/logging"
)

// Renderer renders the template called name against ctx
type Renderer interface {
	Render(name string, ctx map[string]interface{}) (string, error)
}

// TemplateRenderer is a Renderer over a parsed set of templates
type TemplateRenderer struct {
	templates *template.Template
}

// New returns a renderer with no templates; every render fails
func New() *TemplateRenderer {
	return &TemplateRenderer{templates: newRoot()}
}

// Load parses every file under dir. A missing dir yields an empty renderer.
func Load(dir string) (*TemplateRenderer, error) {
	logger := logging.GetLogger("render")

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		logger.Debug().Str("dir", dir).Msg("No templates directory")
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateLoad, "cannot access templates directory").
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrTemplateLoad, "templates path is not a directory").
			WithDetail("path", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS parses every regular file in fsys as a named template. Symlinks
// are followed and loaded under the link's own name.
func LoadFS(fsys fs.FS) (*TemplateRenderer, error) {
	logger := logging.GetLogger("render")
	root := newRoot()

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			info, err := fs.Stat(fsys, name)
			if err != nil || !info.Mode().IsRegular() {
				logger.Debug().Err(err).Str("template", name).Msg("Skipping non-regular file")
				return nil
			}
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}
		logger.Trace().Str("template", name).Msg("Parsed template")
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateLoad, "unable to load templates")
	}

	return &TemplateRenderer{templates: root}, nil
}

func newRoot() *template.Template {
	return template.New("").Funcs(sprig.TxtFuncMap()).Option("missingkey=error")
}

// Names lists the loaded template names
func (r *TemplateRenderer) Names() []string {
	var names []string
	for _, t := range r.templates.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	return names
}

// Render executes the named template with ctx as its data
func (r *TemplateRenderer) Render(name string, ctx map[string]interface{}) (string, error) {
	t := r.templates.Lookup(name)
	if t == nil || name == "" {
		return "", fmt.Errorf("template %q not found", name)
	}

	var out strings.Builder
	if err := t.Execute(&out, ctx); err != nil {
		return "", err
	}
	return out.String(), nil
}
