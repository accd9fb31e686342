package tags

import (
	"errors"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Execute renders tpl with a fresh render state seeded into a copy of data.
func (e *Extension) Execute(tpl *pongo2.Template, data pongo2.Context) (string, error) {
	var b strings.Builder
	if err := e.ExecuteWriter(tpl, data, &b, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ExecuteWriter renders tpl into w with state seeded into a copy of data; a
// nil state means a fresh one. Seeding before execution is what lets tags in
// an {% include %} share pairing with the including template: pongo2 hands
// includes a copy of the context, so state first created inside an include
// would be lost to the parent.
func (e *Extension) ExecuteWriter(tpl *pongo2.Template, data pongo2.Context, w io.Writer, state *State) error {
	if tpl == nil {
		return errors.New("tags: template is nil")
	}
	if state == nil {
		state = e.NewState()
	}
	ctx := make(pongo2.Context, len(data)+1)
	ctx.Update(data)
	ctx[StateKey] = state
	return tpl.ExecuteWriter(ctx, w)
}
