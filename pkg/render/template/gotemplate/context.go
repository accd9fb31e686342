package gotemplate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formpump/pkg/formdata"
)

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	optionType   = reflect.TypeOf(formdata.Option{})
)

// maxFlattenDepth bounds the type walk in flattensToJSON.
const maxFlattenDepth = 8

// convertToContext copies caller data into a pongo2 context. Maps and slices
// of any are walked, and structs are flattened through their JSON form so
// templates see json field names. Every other value reaches the form tags
// unchanged: errors keep their message, numbers keep their type, and typed
// collections such as url.Values or []formdata.Option stay as they are.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return convertMapToContext(map[string]any(v))
	case map[string]any:
		return convertMapToContext(v)
	}

	converted, err := convertValue(data)
	if err != nil {
		return nil, err
	}
	if m, ok := converted.(map[string]any); ok {
		return convertMapToContext(m)
	}

	rv := reflect.ValueOf(converted)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("gotemplate: data must be a string-keyed map or a struct, got %T", data)
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return convertMapToContext(m)
}

func convertMapToContext(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		if key == "" {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	case []any:
		return convertSlice(v)
	case error, fmt.Stringer:
		return value, nil
	}
	if isCallable(value) || !flattensToJSON(reflect.TypeOf(value), 0) {
		return value, nil
	}
	return fromJSON(value)
}

func convertMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// flattensToJSON reports whether t holds plain structs, directly or as
// collection elements. Errors, stringers and option values are left alone.
func flattensToJSON(t reflect.Type, depth int) bool {
	if t == nil || depth > maxFlattenDepth {
		return false
	}
	if t.Implements(errorType) || t.Implements(stringerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer:
		return flattensToJSON(t.Elem(), depth+1)
	case reflect.Struct:
		if t == optionType {
			return false
		}
		ptr := reflect.PointerTo(t)
		return !ptr.Implements(errorType) && !ptr.Implements(stringerType)
	case reflect.Slice, reflect.Array, reflect.Map:
		return flattensToJSON(t.Elem(), depth+1)
	}
	return false
}

// fromJSON flattens v through encoding/json. Numbers decode as json.Number so
// integers print the way they were given.
func fromJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: encode %T: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("gotemplate: decode %T: %w", v, err)
	}
	switch decoded := out.(type) {
	case map[string]any:
		return convertMap(decoded)
	case []any:
		return convertSlice(decoded)
	}
	return out, nil
}
