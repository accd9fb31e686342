package tags

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/pairing"
)

const (
	// DefaultValueDictName is the context variable holding submitted values.
	DefaultValueDictName = "form_vars"
	// DefaultErrorDictName is the context variable holding validation errors.
	DefaultErrorDictName = "form_errors"
	// DefaultErrorRenderer is used when an error tag has no render attribute.
	DefaultErrorRenderer = "default"
)

// Option configures the extension before it is installed.
type Option func(*config)

type config struct {
	defaultAction  func() string
	errorRenderers map[string]ErrorRenderer
	valueDictName  string
	errorDictName  string
	formNameKey    string
	hiddenFields   func(form string) []formdata.HiddenField
	newID          pairing.IDFunc
	classes        Classes

	themeSelection *theme.Selection
	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
}

// WithDefaultFormAction sets the action used by form tags without one.
func WithDefaultFormAction(action string) Option {
	return func(cfg *config) {
		cfg.defaultAction = func() string { return action }
	}
}

// WithDefaultFormActionFunc computes the default action each time a form tag
// without one renders.
func WithDefaultFormActionFunc(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.defaultAction = fn
		}
	}
}

// WithErrorRenderer registers or replaces a named error renderer.
func WithErrorRenderer(name string, renderer ErrorRenderer) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || renderer == nil {
			return
		}
		if cfg.errorRenderers == nil {
			cfg.errorRenderers = make(map[string]ErrorRenderer)
		}
		cfg.errorRenderers[name] = renderer
	}
}

// WithValueDictName renames the context variable holding submitted values.
func WithValueDictName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.valueDictName = trimmed
		}
	}
}

// WithErrorDictName renames the context variable holding validation errors.
func WithErrorDictName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.errorDictName = trimmed
		}
	}
}

// WithFormNameKey makes named forms emit a hidden input called key carrying
// the form name, so handlers can tell which form was submitted.
func WithFormNameKey(key string) Option {
	return func(cfg *config) {
		cfg.formNameKey = strings.TrimSpace(key)
	}
}

// WithHiddenFields adds hidden inputs (CSRF tokens, versions) to every form.
func WithHiddenFields(fn func(form string) []formdata.HiddenField) Option {
	return func(cfg *config) {
		cfg.hiddenFields = fn
	}
}

// WithIDFunc replaces the random identifier generator used for pairing.
func WithIDFunc(fn pairing.IDFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// WithClasses overrides class tokens. Empty fields keep their current value.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithThemeSelection reads class tokens from a resolved go-theme selection.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.themeSelection = selection
	}
}

// WithThemeSelector resolves name/variant through selector when the extension
// is built and reads class tokens from the result.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// Extension is the configured form tag environment of one template set.
type Extension struct {
	defaultAction  func() string
	errorRenderers map[string]ErrorRenderer
	valueDictName  string
	errorDictName  string
	formNameKey    string
	hiddenFields   func(form string) []formdata.HiddenField
	newID          pairing.IDFunc
	classes        Classes
}

// New builds an Extension without installing it.
func New(options ...Option) (*Extension, error) {
	cfg := &config{
		defaultAction: func() string { return "" },
		valueDictName: DefaultValueDictName,
		errorDictName: DefaultErrorDictName,
		newID:         pairing.RandomID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.themeSelector != nil {
		selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("tags: resolve theme %q: %w", cfg.themeName, err)
		}
		cfg.themeSelection = selection
	}
	// explicit classes win over theme tokens
	classes := DefaultClasses().merge(ClassesFromTheme(cfg.themeSelection)).merge(cfg.classes)

	ext := &Extension{
		defaultAction:  cfg.defaultAction,
		valueDictName:  cfg.valueDictName,
		errorDictName:  cfg.errorDictName,
		formNameKey:    cfg.formNameKey,
		hiddenFields:   cfg.hiddenFields,
		newID:          cfg.newID,
		classes:        classes,
		errorRenderers: builtinRenderers(classes.ErrorMessage),
	}
	for name, renderer := range cfg.errorRenderers {
		ext.errorRenderers[name] = renderer
	}
	return ext, nil
}

// Classes reports the class tokens in effect.
func (e *Extension) Classes() Classes {
	return e.classes.merge(Classes{})
}

// ErrorRenderers lists the configured renderer names.
func (e *Extension) ErrorRenderers() []string {
	names := make([]string, 0, len(e.errorRenderers))
	for name := range e.errorRenderers {
		names = append(names, name)
	}
	return names
}
