// Package template defines the renderer-agnostic template contract the form
// tags are rendered through. The gotemplate subpackage implements it on top of
// pongo2 with the formpump tags installed.
package template
