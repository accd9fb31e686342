package gotemplate

import (
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formpump/pkg/formdata"
)

// registerFormFilters adds the filters form templates lean on. pongo2 keeps
// filters globally, so names already taken are left alone.
func registerFormFilters() error {
	if pongo2.FilterExists("messages") {
		return nil
	}
	return pongo2.RegisterFilter("messages", filterMessages)
}

// filterMessages turns an error value (string, list or error) into its
// normalised messages, e.g. {{ form_errors.signup.email|messages|join:", " }}.
func filterMessages(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(formdata.Messages(in.Interface())), nil
}
