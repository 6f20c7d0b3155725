package htmltable

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-screenfmt/pkg/render"
	rendertemplate "github.com/goliatone/go-screenfmt/pkg/render/template"
	gotemplate "github.com/goliatone/go-screenfmt/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the HTML table representation of a screen: templated
// chrome around string-built row and cell markup.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmltable renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "htmltable"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, view render.View) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("htmltable renderer: template renderer is nil")
	}

	sections := make([]map[string]any, 0, len(view.Sections))
	for _, section := range view.Sections {
		rows := make([]string, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, rowMarkup(row))
		}
		sections = append(sections, map[string]any{
			"name": section.Name,
			"rows": rows,
		})
	}

	result, err := r.templates.RenderTemplate("templates/screen.tmpl", map[string]any{
		"screen": map[string]any{
			"code":     view.Code,
			"title":    view.Title,
			"sections": sections,
			"scripts":  view.Scripts,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("htmltable renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) RenderNotice(_ context.Context, notice render.Notice) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("htmltable renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/notice.tmpl", map[string]any{
		"notice": map[string]any{
			"level":   "warning",
			"message": notice.Message,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("htmltable renderer: render notice: %w", err)
	}
	return []byte(result), nil
}
