// Package formdata resolves submitted values and validation errors for a field
// inside a named form, and normalizes the loosely typed data templates receive
// (maps decoded from JSON or YAML, url.Values, pongo2 contexts) into the
// strings the form tags render.
package formdata
