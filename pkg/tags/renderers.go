package tags

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formpump/pkg/markup"
)

// ErrorRenderer turns the messages of a field error into markup. The attrs
// are those declared on the error tag, minus name and render. The returned
// string is written unescaped.
type ErrorRenderer func(messages []string, attrs *markup.Attrs) (string, error)

// Built-in renderer names.
const (
	RendererDefault = DefaultErrorRenderer
	RendererList    = "list"
	RendererHTML    = "html"
)

func builtinRenderers(class string) map[string]ErrorRenderer {
	return map[string]ErrorRenderer{
		RendererDefault: DivRenderer(class),
		RendererList:    ListRenderer(class),
		RendererHTML:    SanitizedRenderer(class, inlineMessagePolicy()),
	}
}

// DivRenderer renders <div class="CLASS ...">messages</div>, joining multiple
// messages with "; ".
func DivRenderer(class string) ErrorRenderer {
	return func(messages []string, attrs *markup.Attrs) (string, error) {
		attrs.PrependClass(class)
		escaped := make([]string, 0, len(messages))
		for _, message := range messages {
			escaped = append(escaped, markup.Escape(message))
		}
		return markup.Element("div", attrs, strings.Join(escaped, "; ")), nil
	}
}

// ListRenderer renders one <li> per message inside <ul class="CLASS ...">.
func ListRenderer(class string) ErrorRenderer {
	return func(messages []string, attrs *markup.Attrs) (string, error) {
		attrs.PrependClass(class)
		var b strings.Builder
		for _, message := range messages {
			b.WriteString(markup.Element("li", nil, markup.Escape(message)))
		}
		return markup.Element("ul", attrs, b.String()), nil
	}
}

// SanitizedRenderer renders like DivRenderer but lets messages carry markup,
// filtered through policy.
func SanitizedRenderer(class string, policy *bluemonday.Policy) ErrorRenderer {
	return func(messages []string, attrs *markup.Attrs) (string, error) {
		attrs.PrependClass(class)
		cleaned := make([]string, 0, len(messages))
		for _, message := range messages {
			if out := strings.TrimSpace(policy.Sanitize(message)); out != "" {
				cleaned = append(cleaned, out)
			}
		}
		return markup.Element("div", attrs, strings.Join(cleaned, "; ")), nil
	}
}

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func inlineMessagePolicy() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)
		inlinePolicy = policy
	})
	return inlinePolicy
}

// plainText strips every tag from rendered markup.
func plainText(markupText string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strings.Join(strings.Fields(textPolicy.Sanitize(markupText)), " "))
}
