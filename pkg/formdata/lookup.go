package formdata

import (
	"reflect"
)

// Lookup resolves source[form][field]. Source may be any map keyed by strings,
// at either level. Unnamed forms use the empty key.
func Lookup(source any, form, field string) (any, bool) {
	fields, ok := index(source, form)
	if !ok {
		return nil, false
	}
	return index(fields, field)
}

func index(container any, key string) (any, bool) {
	switch m := container.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	case map[string][]string:
		v, ok := m[key]
		return v, ok
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}
