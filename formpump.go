package formpump

import (
	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formpump/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formpump/pkg/tags"
)

// Option configures the form tags; alias exported via the root package for
// convenience.
type Option = tags.Option

// Extension aliases tags.Extension, the per-set tag configuration.
type Extension = tags.Extension

// Field aliases tags.Field, a form field reported by Engine.Inspect.
type Field = tags.Field

// Engine aliases the pongo2 engine adapter with the tags installed.
type Engine = gotemplate.Engine

// Install registers the form tags with pongo2 and configures them for set.
func Install(set *pongo2.TemplateSet, options ...Option) (*Extension, error) {
	return tags.Install(set, options...)
}

// NewEngine constructs a template engine with the form tags installed. Tag
// options can be supplied through gotemplate.WithTagOptions.
func NewEngine(options ...gotemplate.Option) (*Engine, error) {
	return gotemplate.New(options...)
}

// WithDefaultFormAction forwards the action used by form tags that declare
// none.
func WithDefaultFormAction(action string) Option {
	return tags.WithDefaultFormAction(action)
}

// WithErrorRenderer registers a named error renderer for the error tag.
func WithErrorRenderer(name string, renderer tags.ErrorRenderer) Option {
	return tags.WithErrorRenderer(name, renderer)
}

// WithThemeSelector resolves class tokens through a go-theme selector when
// the tags are installed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return tags.WithThemeSelector(selector, name, variant)
}
