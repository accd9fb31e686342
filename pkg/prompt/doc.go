// Package prompt fills the fields of a rendered form interactively.
//
// Fields come from gotemplate.Engine.Inspect. Answers are written into a
// values map shaped like the one the form tags read submitted data from, so
// a second render shows the form as if it had been posted.
package prompt
