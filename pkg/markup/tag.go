// Package markup serializes HTML elements and their attributes.
package markup

import (
	"html"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Escape escapes text for use in HTML content and quoted attribute values,
// matching what pongo2 autoescaping produces for template variables.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	out, err := pongo2.ApplyFilter("escape", pongo2.AsValue(s), nil)
	if err != nil {
		return html.EscapeString(s)
	}
	return out.String()
}

// OpenTag renders <name attrs...>.
func OpenTag(name string, attrs *Attrs) string {
	var b strings.Builder
	writeStart(&b, name, attrs)
	b.WriteString(">")
	return b.String()
}

// VoidTag renders the self-closing <name attrs... />.
func VoidTag(name string, attrs *Attrs) string {
	var b strings.Builder
	writeStart(&b, name, attrs)
	b.WriteString(" />")
	return b.String()
}

// Element renders <name attrs...>body</name>. The body must already be
// escaped.
func Element(name string, attrs *Attrs, body string) string {
	return OpenTag(name, attrs) + body + CloseTag(name)
}

// CloseTag renders </name>.
func CloseTag(name string) string {
	return "</" + Escape(name) + ">"
}

func writeStart(b *strings.Builder, name string, attrs *Attrs) {
	b.WriteString("<")
	b.WriteString(Escape(name))
	for _, key := range attrs.ordered() {
		value, _ := attrs.Get(key)
		b.WriteString(" ")
		b.WriteString(Escape(key))
		b.WriteString(`="`)
		b.WriteString(Escape(value))
		b.WriteString(`"`)
	}
}
