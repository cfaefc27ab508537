package rtlgen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/template"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// TemplateID names one of the two output templates.
type TemplateID string

const (
	PackageTemplate TemplateID = "reg_pkg.sv.tpl"
	ModuleTemplate  TemplateID = "reg_top.sv.tpl"
)

// Templates lists every template a renderer must provide.
var Templates = []TemplateID{PackageTemplate, ModuleTemplate}

// Renderer turns a template and its context into output text.
type Renderer interface {
	Render(id TemplateID, data interface{}) (string, error)
}

// TemplateRenderer renders the reggen templates with text/template.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses every template from the first of layers
// that contains it.
func NewTemplateRenderer(layers ...fs.FS) (*TemplateRenderer, error) {
	root := template.New("reggen").Funcs(FuncMap()).Option("missingkey=error")
	for _, id := range Templates {
		src, err := readLayered(layers, string(id))
		if err != nil {
			return nil, fmt.Errorf("loading template %s: %w", id, err)
		}
		if _, err := root.New(string(id)).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", id, err)
		}
	}
	return &TemplateRenderer{tmpl: root}, nil
}

// DefaultRenderer uses the embedded templates.
func DefaultRenderer() (*TemplateRenderer, error) {
	return NewTemplateRenderer(EmbeddedTemplates())
}

// DirRenderer prefers templates found in dir and falls back to the
// embedded ones.
func DirRenderer(dir string) (*TemplateRenderer, error) {
	if dir == "" {
		return DefaultRenderer()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return NewTemplateRenderer(os.DirFS(dir), EmbeddedTemplates())
}

// EmbeddedTemplates is the built-in template set.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func readLayered(layers []fs.FS, name string) ([]byte, error) {
	for _, layer := range layers {
		src, err := fs.ReadFile(layer, name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fs.ErrNotExist
}

// Render executes template id with data.
func (r *TemplateRenderer) Render(id TemplateID, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(id), data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
