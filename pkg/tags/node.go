package tags

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/markup"
)

// call is one execution of a tag node with its arguments evaluated.
type call struct {
	ext   *Extension
	state *State
	ctx   *pongo2.ExecutionContext

	name    string
	hasName bool
	attrs   *markup.Attrs
	raw     map[string]*pongo2.Value
}

func (n *tagNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	ext, err := extensionFrom(ctx)
	if err != nil {
		return ctx.OrigError(err, n.token)
	}

	c, perr := n.evaluate(ctx, ext)
	if perr != nil {
		return perr
	}

	switch n.kind {
	case KindForm:
		return n.executeForm(c, writer)
	case KindLabel:
		return n.executeLabel(c, writer)
	case KindFormCtx:
		c.state.tracker.SetForm(c.name)
		return nil
	}

	var out string
	switch n.kind {
	case KindText, KindEmail, KindPassword, KindHidden:
		out = c.input(n.kind)
	case KindCheckbox:
		out = c.checkbox()
	case KindRadio:
		out = c.radio()
	case KindSubmit:
		out = c.submit()
	case KindQuickSelect:
		out, err = c.quickSelect()
	case KindTextArea:
		out = c.textArea()
	case KindError:
		out, err = c.fieldError()
	default:
		err = fmt.Errorf("tags: unsupported tag kind %d", n.kind)
	}
	if err != nil {
		return ctx.OrigError(err, n.token)
	}
	return n.write(ctx, writer, out)
}

func (n *tagNode) executeForm(c *call, writer pongo2.TemplateWriter) *pongo2.Error {
	if err := n.write(c.ctx, writer, c.formOpen()); err != nil {
		return err
	}

	restore := c.state.tracker.Enter(c.name)
	defer restore()

	if err := n.body.Execute(c.ctx, writer); err != nil {
		return err
	}
	return n.write(c.ctx, writer, markup.CloseTag("form"))
}

func (n *tagNode) executeLabel(c *call, writer pongo2.TemplateWriter) *pongo2.Error {
	open, forID := c.labelOpen()
	if err := n.write(c.ctx, writer, open); err != nil {
		return err
	}

	if c.state.inspect {
		var body bytes.Buffer
		if err := n.body.Execute(c.ctx, &body); err != nil {
			return err
		}
		c.state.recordLabel(forID, plainText(body.String()))
		if err := n.write(c.ctx, writer, body.String()); err != nil {
			return err
		}
	} else if err := n.body.Execute(c.ctx, writer); err != nil {
		return err
	}

	return n.write(c.ctx, writer, markup.CloseTag("label"))
}

func (n *tagNode) write(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter, out string) *pongo2.Error {
	if out == "" {
		return nil
	}
	if _, err := writer.WriteString(out); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}

// evaluate resolves the positional name and attribute expressions against the
// current context.
func (n *tagNode) evaluate(ctx *pongo2.ExecutionContext, ext *Extension) (*call, *pongo2.Error) {
	c := &call{
		ext:   ext,
		state: ext.stateFrom(ctx),
		ctx:   ctx,
		attrs: markup.NewAttrs(),
		raw:   make(map[string]*pongo2.Value, len(n.attrs)),
	}

	if n.name != nil {
		v, err := n.name.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		c.name = formdata.Scalar(v.Interface())
		c.hasName = true
	}

	for _, a := range n.attrs {
		if a.expr == nil {
			c.raw[a.key] = pongo2.AsValue(a.key)
			c.attrs.Set(a.key, a.key)
			continue
		}
		v, err := a.expr.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		c.raw[a.key] = v
		c.attrs.Set(a.key, formdata.Scalar(v.Interface()))
	}
	return c, nil
}
