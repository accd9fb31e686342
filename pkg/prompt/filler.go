package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/tags"
)

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithPageSize limits how many choices select prompts show at once.
func WithPageSize(size int) Option {
	return func(f *Filler) {
		if size > 0 {
			f.pageSize = size
		}
	}
}

// Filler asks for a value for each inspected field.
type Filler struct {
	driver   PromptDriver
	pageSize int
}

// New constructs a Filler. It prompts on the terminal unless another driver
// is supplied.
func New(options ...Option) *Filler {
	f := &Filler{}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	return f
}

// group is one question: a single field, or every radio or checkbox sharing
// a name within a form.
type group struct {
	form   string
	name   string
	kind   tags.Kind
	fields []tags.Field
}

// Fill prompts for every field in order and stores the answers in
// values[form][name]. Existing values are offered as defaults. Hidden and
// submit fields are skipped. An unchecked checkbox or an empty choice removes
// the entry, matching what a browser would post.
func (f *Filler) Fill(ctx context.Context, fields []tags.Field, values map[string]map[string]any) error {
	if values == nil {
		return errors.New("prompt: values map is nil")
	}

	for _, g := range groupFields(fields) {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, _ := formdata.Lookup(values, g.form, g.name)

		answer, ok, err := f.ask(ctx, g, current)
		if err != nil {
			return fmt.Errorf("prompt: field %q: %w", g.name, err)
		}

		form := values[g.form]
		if form == nil {
			form = make(map[string]any)
			values[g.form] = form
		}
		if ok {
			form[g.name] = answer
		} else {
			delete(form, g.name)
		}
	}
	return nil
}

func (f *Filler) ask(ctx context.Context, g *group, current any) (any, bool, error) {
	field := g.fields[0]
	message := field.Label
	if message == "" {
		message = g.name
	}
	fallback := formdata.First(current)
	if current == nil {
		fallback = field.Value
	}

	switch g.kind {
	case tags.KindPassword:
		out, err := f.driver.Password(ctx, InputConfig{Message: message})
		return out, err == nil, err
	case tags.KindTextArea:
		out, err := f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: fallback})
		return out, err == nil, err
	case tags.KindCheckbox:
		if len(g.fields) == 1 {
			checked := formdata.Checked(field.Value, formdata.Strings(current))
			yes, err := f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: checked})
			return field.Value, yes && err == nil, err
		}
		return f.askMany(ctx, g, message, formdata.Strings(current))
	case tags.KindRadio:
		choices := make([]formdata.Option, 0, len(g.fields))
		for _, radio := range g.fields {
			choices = append(choices, formdata.Option{Value: radio.Value, Label: radio.Label})
		}
		return f.askOne(ctx, message, choices, formdata.First(current))
	case tags.KindQuickSelect:
		return f.askOne(ctx, message, field.Options, formdata.First(current))
	default:
		out, err := f.driver.Input(ctx, InputConfig{Message: message, Default: fallback})
		return out, err == nil, err
	}
}

func (f *Filler) askOne(ctx context.Context, message string, choices []formdata.Option, current string) (any, bool, error) {
	if len(choices) == 0 {
		return nil, false, ErrNoOptions
	}
	cfg := SelectConfig{
		Message:  message,
		Options:  displayLabels(choices),
		PageSize: f.pageSize,
	}
	for i, choice := range choices {
		if !choice.Placeholder && choice.Value == current {
			cfg.DefaultIndex = i
			break
		}
	}

	idx, err := f.driver.Select(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(choices) {
		return nil, false, nil
	}
	chosen := choices[idx]
	if chosen.Placeholder || chosen.Value == "" {
		return nil, false, nil
	}
	return chosen.Value, true, nil
}

func (f *Filler) askMany(ctx context.Context, g *group, message string, current []string) (any, bool, error) {
	choices := make([]formdata.Option, 0, len(g.fields))
	cfg := SelectConfig{Message: message, PageSize: f.pageSize}
	for i, box := range g.fields {
		choices = append(choices, formdata.Option{Value: box.Value, Label: box.Label})
		if formdata.Contains(current, box.Value) {
			cfg.Defaults = append(cfg.Defaults, i)
		}
	}
	cfg.Options = displayLabels(choices)

	indices, err := f.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			out = append(out, choices[idx].Value)
		}
	}
	return out, len(out) > 0, nil
}

// displayLabels returns what the user picks from. Survey matches answers by
// text, so repeated labels are suffixed with their value.
func displayLabels(choices []formdata.Option) []string {
	out := make([]string, len(choices))
	seen := make(map[string]bool, len(choices))
	for i, choice := range choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		if seen[label] {
			label = fmt.Sprintf("%s (%s)", label, choice.Value)
		}
		seen[label] = true
		out[i] = label
	}
	return out
}

func groupFields(fields []tags.Field) []*group {
	var (
		out   []*group
		index = make(map[string]*group)
	)
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		switch field.Kind {
		case tags.KindHidden, tags.KindSubmit:
			continue
		case tags.KindRadio, tags.KindCheckbox:
			key := field.Kind.String() + "\x00" + field.Form + "\x00" + field.Name
			if g, ok := index[key]; ok {
				g.fields = append(g.fields, field)
				continue
			}
			g := &group{form: field.Form, name: field.Name, kind: field.Kind, fields: []tags.Field{field}}
			index[key] = g
			out = append(out, g)
		default:
			out = append(out, &group{form: field.Form, name: field.Name, kind: field.Kind, fields: []tags.Field{field}})
		}
	}
	return out
}
