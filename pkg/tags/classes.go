package tags

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme tokens read by WithThemeSelection. Per-kind base classes use
// ThemeClassPrefix followed by the tag name, e.g. "formpump.class.text".
const (
	ThemeClassPrefix       = "formpump.class."
	ThemeErrorClass        = ThemeClassPrefix + "error"
	ThemeErrorMessageClass = ThemeClassPrefix + "error-message"
)

// Classes controls the class tokens the tags add on their own.
type Classes struct {
	// Error is prepended to fields with a validation error.
	Error string
	// ErrorMessage is prepended to the markup of the built-in error renderers.
	ErrorMessage string
	// Base holds classes every tag of a kind starts with, ahead of the
	// classes declared in the template.
	Base map[Kind]string
}

// DefaultClasses returns the stock "error" and "error-message" tokens.
func DefaultClasses() Classes {
	return Classes{
		Error:        "error",
		ErrorMessage: "error-message",
	}
}

func (c Classes) merge(other Classes) Classes {
	out := Classes{
		Error:        c.Error,
		ErrorMessage: c.ErrorMessage,
		Base:         make(map[Kind]string, len(c.Base)+len(other.Base)),
	}
	if v := strings.TrimSpace(other.Error); v != "" {
		out.Error = v
	}
	if v := strings.TrimSpace(other.ErrorMessage); v != "" {
		out.ErrorMessage = v
	}
	for k, v := range c.Base {
		out.Base[k] = v
	}
	for k, v := range other.Base {
		if v = strings.TrimSpace(v); v != "" {
			out.Base[k] = v
		}
	}
	return out
}

// ClassesFromTheme derives Classes from the tokens of a theme selection,
// applying variant tokens over the manifest's.
func ClassesFromTheme(selection *theme.Selection) Classes {
	tokens := selectionTokens(selection)
	if len(tokens) == 0 {
		return Classes{}
	}

	classes := Classes{
		Error:        tokens[ThemeErrorClass],
		ErrorMessage: tokens[ThemeErrorMessageClass],
		Base:         make(map[Kind]string),
	}
	for _, kind := range Kinds() {
		if v, ok := tokens[ThemeClassPrefix+kind.String()]; ok {
			classes.Base[kind] = v
		}
	}
	return classes
}

func selectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for k, v := range selection.Manifest.Tokens {
		tokens[k] = v
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
	}
	return tokens
}
