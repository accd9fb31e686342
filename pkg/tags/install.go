package tags

import (
	"errors"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds every form tag to pongo2's global tag registry. It is safe to
// call repeatedly; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		for _, kind := range Kinds() {
			if err := pongo2.RegisterTag(kind.String(), parserFor(kind)); err != nil {
				registerErr = fmt.Errorf("tags: register %q: %w", kind.String(), err)
				return
			}
		}
	})
	return registerErr
}

// Install registers the tags and attaches a new Extension built from options
// to set. Templates must be parsed from set after Install returns.
func Install(set *pongo2.TemplateSet, options ...Option) (*Extension, error) {
	if set == nil {
		return nil, errors.New("tags: template set is nil")
	}
	ext, err := New(options...)
	if err != nil {
		return nil, err
	}
	if err := Register(); err != nil {
		return nil, err
	}
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	set.Globals[ExtensionKey] = ext
	return ext, nil
}
