package tags

import "errors"

var (
	// ErrNotInstalled is returned when a form tag executes in a template set
	// that was not passed to Install.
	ErrNotInstalled = errors.New("tags: formpump extension not installed on template set")
	// ErrUnknownErrorRenderer is returned when an error tag names a renderer
	// that was never configured.
	ErrUnknownErrorRenderer = errors.New("tags: unknown error renderer")
	// ErrMissingErrorField is returned at parse time when an error tag has no
	// field name.
	ErrMissingErrorField = errors.New("tags: first argument of error tag must be a string")
	// ErrConflictingName is returned at parse time when a tag gets its field
	// name both positionally and as name=.
	ErrConflictingName = errors.New("tags: field name given both positionally and as name=")
	// ErrInvalidOptions is returned when a quickselect receives options it
	// cannot interpret.
	ErrInvalidOptions = errors.New("tags: invalid quickselect options")
)
