package pairing

// Option configures a Tracker.
type Option func(*Tracker)

// WithIDFunc overrides the identifier generator. Nil keeps RandomID.
func WithIDFunc(fn IDFunc) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.newID = fn
		}
	}
}

// WithForm sets the initial form name.
func WithForm(form string) Option {
	return func(t *Tracker) {
		t.scope.form = form
	}
}

type queues map[string][]string

func (q queues) push(name, id string) {
	q[name] = append(q[name], id)
}

func (q queues) pop(name string) (string, bool) {
	pending := q[name]
	if len(pending) == 0 {
		return "", false
	}
	id := pending[0]
	if len(pending) == 1 {
		delete(q, name)
	} else {
		q[name] = pending[1:]
	}
	return id, true
}

type scope struct {
	form   string
	labels queues // labels rendered before their input
	inputs queues // inputs rendered before their label
}

func newScope(form string) scope {
	return scope{form: form, labels: queues{}, inputs: queues{}}
}

// Tracker assigns matching identifiers to labels and inputs within the active
// form scope.
type Tracker struct {
	newID IDFunc
	scope scope
}

// New constructs a Tracker with an empty, unnamed scope.
func New(options ...Option) *Tracker {
	t := &Tracker{
		newID: RandomID,
		scope: newScope(""),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// InputID returns the id for an input-like element named field. A label that
// already asked for field hands over its identifier; otherwise a fresh one is
// queued for the next label.
func (t *Tracker) InputID(field string) string {
	if id, ok := t.scope.labels.pop(field); ok {
		return id
	}
	id := t.newID()
	t.scope.inputs.push(field, id)
	return id
}

// LabelID returns the for value of a label targeting field. It mirrors
// InputID with the queues swapped.
func (t *Tracker) LabelID(field string) string {
	if id, ok := t.scope.inputs.pop(field); ok {
		return id
	}
	id := t.newID()
	t.scope.labels.push(field, id)
	return id
}

// Enter replaces the active scope with an empty one named form and returns a
// function restoring the previous scope. Callers defer the restore so it runs
// however the form body exits.
func (t *Tracker) Enter(form string) (restore func()) {
	saved := t.scope
	t.scope = newScope(form)
	return func() {
		t.scope = saved
	}
}

// Form reports the active form name.
func (t *Tracker) Form() string {
	return t.scope.form
}

// SetForm switches the active form name, leaving pending identifiers intact.
func (t *Tracker) SetForm(form string) {
	t.scope.form = form
}

// Pending reports how many labels and inputs named field are still waiting for
// a counterpart in the active scope.
func (t *Tracker) Pending(field string) (labels, inputs int) {
	return len(t.scope.labels[field]), len(t.scope.inputs[field])
}
