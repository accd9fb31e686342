package tags

import (
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/pairing"
)

// Context keys reserved by the extension.
const (
	ExtensionKey = "_formpump"
	StateKey     = "_formpump_state"
)

// Field describes a named form control rendered during an inspecting render.
type Field struct {
	Form    string
	Name    string
	Kind    Kind
	ID      string
	Value   string
	Label   string
	Options []formdata.Option
}

// State is the mutable state of a single render: the pairing tracker and,
// when inspecting, the fields and labels seen so far.
type State struct {
	tracker *pairing.Tracker
	inspect bool
	fields  []Field
	labels  map[string]string
}

// StateOption configures a State.
type StateOption func(*State)

// Inspecting makes the state record rendered fields and label texts.
func Inspecting() StateOption {
	return func(s *State) {
		s.inspect = true
	}
}

// NewState returns a fresh render state using the extension's id generator.
func (e *Extension) NewState(options ...StateOption) *State {
	st := &State{
		tracker: pairing.New(pairing.WithIDFunc(e.newID)),
		labels:  make(map[string]string),
	}
	for _, opt := range options {
		if opt != nil {
			opt(st)
		}
	}
	return st
}

// Tracker exposes the pairing tracker.
func (s *State) Tracker() *pairing.Tracker {
	return s.tracker
}

// Fields returns the recorded fields with label texts resolved by id.
func (s *State) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		if f.ID != "" {
			if label, ok := s.labels[f.ID]; ok {
				f.Label = label
			}
		}
		out[i] = f
	}
	return out
}

func (s *State) recordField(f Field) {
	if s.inspect && f.Name != "" {
		s.fields = append(s.fields, f)
	}
}

func (s *State) recordLabel(forID, text string) {
	if s.inspect && forID != "" && text != "" {
		s.labels[forID] = text
	}
}

// extensionFrom returns the extension installed on the executing template's
// set.
func extensionFrom(ctx *pongo2.ExecutionContext) (*Extension, error) {
	if ext, ok := ctx.Public[ExtensionKey].(*Extension); ok && ext != nil {
		return ext, nil
	}
	return nil, ErrNotInstalled
}

// stateFrom returns the render state, creating it on first use. The public
// context map is shared by every node of one execution, so the state lives
// exactly as long as the render. A state first created inside an include
// stays with the include; Execute and ExecuteWriter seed it up front.
func (e *Extension) stateFrom(ctx *pongo2.ExecutionContext) *State {
	if st, ok := ctx.Public[StateKey].(*State); ok && st != nil {
		return st
	}
	st := e.NewState()
	ctx.Public[StateKey] = st
	return st
}

// variable resolves a context variable, preferring template locals.
func variable(ctx *pongo2.ExecutionContext, name string) any {
	if v, ok := ctx.Private[name]; ok {
		return v
	}
	return ctx.Public[name]
}
