package tags

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/markup"
)

func (c *call) form() string {
	return c.state.tracker.Form()
}

func (c *call) submitted(field string) (any, bool) {
	return formdata.Lookup(variable(c.ctx, c.ext.valueDictName), c.form(), field)
}

func (c *call) errorFor(field string) any {
	v, _ := formdata.Lookup(variable(c.ctx, c.ext.errorDictName), c.form(), field)
	return v
}

// prepare applies the positional name, base classes and, for named fields
// without an explicit id, a paired id. It returns the field name.
func (c *call) prepare(kind Kind) (string, bool) {
	if c.hasName {
		c.attrs.Set("name", c.name)
	}
	c.attrs.PrependClass(c.ext.classes.Base[kind])

	name, named := c.attrs.Get("name")
	if named && !c.attrs.Has("id") {
		c.attrs.Set("id", c.state.tracker.InputID(name))
	}
	return name, named
}

func (c *call) markError(name string) {
	if formdata.HasError(c.errorFor(name)) {
		c.attrs.PrependClass(c.ext.classes.Error)
	}
}

func (c *call) record(kind Kind, name string, options []formdata.Option) {
	if !c.state.inspect {
		return
	}
	id, _ := c.attrs.Get("id")
	value, _ := c.attrs.Get("value")
	c.state.recordField(Field{
		Form:    c.form(),
		Name:    name,
		Kind:    kind,
		ID:      id,
		Value:   value,
		Options: options,
	})
}

func (c *call) input(kind Kind) string {
	inputType, _ := kind.InputType()
	c.attrs.Set("type", inputType)

	name, named := c.prepare(kind)
	if named {
		if v, ok := c.submitted(name); ok {
			c.attrs.Set("value", formdata.First(v))
		} else {
			c.attrs.SetDefault("value", "")
		}
		c.markError(name)
	}

	c.record(kind, name, nil)
	return markup.VoidTag("input", c.attrs)
}

func (c *call) checkbox() string {
	c.attrs.Set("type", "checkbox")
	c.attrs.SetDefault("value", "t")

	name, named := c.prepare(KindCheckbox)
	if named {
		declared, _ := c.attrs.Get("value")
		v, _ := c.submitted(name)
		if formdata.Checked(declared, formdata.Strings(v)) {
			c.attrs.Set("checked", "checked")
		} else {
			c.attrs.Delete("checked")
		}
		c.markError(name)
	}

	c.record(KindCheckbox, name, nil)
	return markup.VoidTag("input", c.attrs)
}

func (c *call) radio() string {
	c.attrs.Set("type", "radio")

	name, named := c.prepare(KindRadio)
	if named {
		declared, hasValue := c.attrs.Get("value")
		v, _ := c.submitted(name)
		if hasValue && formdata.Contains(formdata.Strings(v), declared) {
			c.attrs.Set("checked", "checked")
		} else {
			c.attrs.Delete("checked")
		}
		c.markError(name)
	}

	c.record(KindRadio, name, nil)
	return markup.VoidTag("input", c.attrs)
}

// submit uses its positional argument as the button caption rather than as a
// field name.
func (c *call) submit() string {
	c.attrs.Set("type", "submit")
	if c.hasName {
		c.attrs.Set("value", c.name)
		c.hasName = false
	}

	name, named := c.prepare(KindSubmit)
	if named {
		c.markError(name)
	}

	c.record(KindSubmit, name, nil)
	return markup.VoidTag("input", c.attrs)
}

func (c *call) quickSelect() (string, error) {
	c.attrs.Delete("options")
	c.attrs.Delete("prompt")

	var rawOptions any
	if v, ok := c.raw["options"]; ok {
		rawOptions = v.Interface()
	}
	options, err := formdata.Options(rawOptions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if v, ok := c.raw["prompt"]; ok {
		if prompt := formdata.Scalar(v.Interface()); prompt != "" {
			options = append([]formdata.Option{{Label: prompt, Placeholder: true}}, options...)
		}
	}

	name, named := c.prepare(KindQuickSelect)
	var submitted []string
	if named {
		v, _ := c.submitted(name)
		submitted = formdata.Strings(v)
		c.markError(name)
	}

	var b strings.Builder
	b.WriteString(markup.OpenTag("select", c.attrs))
	for _, opt := range options {
		optAttrs := markup.NewAttrs("value", opt.Value)
		if !opt.Placeholder && formdata.Contains(submitted, opt.Value) {
			optAttrs.Set("selected", "selected")
		}
		b.WriteString(markup.Element("option", optAttrs, markup.Escape(opt.Label)))
	}
	b.WriteString(markup.CloseTag("select"))

	c.record(KindQuickSelect, name, options)
	return b.String(), nil
}

// textArea renders the submitted value as the element body; a declared value
// attribute is used when nothing was submitted.
func (c *call) textArea() string {
	content, _ := c.attrs.Pop("value")

	name, named := c.prepare(KindTextArea)
	if named {
		if v, ok := c.submitted(name); ok {
			content = formdata.First(v)
		}
		c.markError(name)
	}

	c.record(KindTextArea, name, nil)
	return markup.Element("textarea", c.attrs, markup.Escape(content))
}

func (c *call) fieldError() (string, error) {
	name := c.name
	if attrName, ok := c.attrs.Pop("name"); ok {
		name = attrName
	}
	rendererName, ok := c.attrs.Pop("render")
	if !ok || strings.TrimSpace(rendererName) == "" {
		rendererName = DefaultErrorRenderer
	}

	renderer, ok := c.ext.errorRenderers[rendererName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownErrorRenderer, rendererName)
	}

	messages := formdata.Messages(c.errorFor(name))
	if len(messages) == 0 {
		return "", nil
	}
	return renderer(messages, c.attrs)
}

func (c *call) formOpen() string {
	c.attrs.SetDefault("method", "post")
	if !c.attrs.Has("action") {
		c.attrs.Set("action", c.ext.defaultAction())
	}
	c.attrs.PrependClass(c.ext.classes.Base[KindForm])

	var b strings.Builder
	b.WriteString(markup.OpenTag("form", c.attrs))

	var hidden []formdata.HiddenField
	if c.name != "" && c.ext.formNameKey != "" {
		hidden = append(hidden, formdata.FormName(c.ext.formNameKey, c.name))
	}
	if c.ext.hiddenFields != nil {
		hidden = append(hidden, c.ext.hiddenFields(c.name)...)
	}
	for _, field := range formdata.SortedHiddenFields(formdata.MergeHiddenFields(nil, hidden...)) {
		b.WriteString(markup.VoidTag("input", markup.NewAttrs(
			"type", "hidden",
			"name", field.Name,
			"value", field.Value,
		)))
	}
	return b.String()
}

// labelOpen renders the opening label tag and returns the for value it used.
func (c *call) labelOpen() (string, string) {
	target := c.name
	if !c.hasName {
		target, _ = c.attrs.Pop("name")
	}
	c.attrs.PrependClass(c.ext.classes.Base[KindLabel])

	if target != "" && !c.attrs.Has("for") && !c.attrs.Has("id") {
		c.attrs.Set("for", c.state.tracker.LabelID(target))
	}
	forID, _ := c.attrs.Get("for")
	return markup.OpenTag("label", c.attrs), forID
}
