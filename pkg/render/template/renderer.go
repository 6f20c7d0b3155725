// Package template defines the engine seam screen renderers rely on for
// their chrome markup, mirroring the github.com/goliatone/go-template
// contract so either that engine or the bundled pongo2 adapter can back it.
package template

// TemplateRenderer resolves and executes named templates.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
	RenderString(templateContent string, data any) (string, error)
}
