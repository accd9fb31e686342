package formdata

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Option is a single <option> entry of a quickselect.
type Option struct {
	Value string
	Label string
	// Placeholder marks the prompt entry; it renders with an empty value and is
	// never selected.
	Placeholder bool
}

// Options normalizes raw into select options. Accepted shapes: []Option, a
// sequence whose items are 2-element value/label sequences or plain scalars,
// and string-keyed maps (ordered by key).
func Options(raw any) ([]Option, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []Option:
		out := make([]Option, len(v))
		copy(out, v)
		return out, nil
	case map[string]string:
		return sortedMapOptions(len(v), func(fn func(k, v string)) {
			for key, label := range v {
				fn(key, label)
			}
		}), nil
	}

	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Option, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			opt, err := optionFromItem(rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("formdata: option %d: %w", i, err)
			}
			out = append(out, opt)
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("formdata: options map must be keyed by strings, got %s", rv.Type())
		}
		iter := rv.MapRange()
		return sortedMapOptions(rv.Len(), func(fn func(k, v string)) {
			for iter.Next() {
				fn(iter.Key().String(), Scalar(iter.Value().Interface()))
			}
		}), nil
	default:
		return nil, fmt.Errorf("formdata: unsupported options type %T", raw)
	}
}

func optionFromItem(item reflect.Value) (Option, error) {
	for item.Kind() == reflect.Interface || item.Kind() == reflect.Pointer {
		if item.IsNil() {
			return Option{}, nil
		}
		item = item.Elem()
	}
	if opt, ok := item.Interface().(Option); ok {
		return opt, nil
	}
	switch item.Kind() {
	case reflect.Slice, reflect.Array:
		if item.Type().Elem().Kind() == reflect.Uint8 {
			s := Scalar(item.Interface())
			return Option{Value: s, Label: s}, nil
		}
		if item.Len() != 2 {
			return Option{}, fmt.Errorf("expected a value/label pair, got %d elements", item.Len())
		}
		return Option{
			Value: Scalar(item.Index(0).Interface()),
			Label: Scalar(item.Index(1).Interface()),
		}, nil
	case reflect.Map:
		return optionFromMap(item)
	case reflect.Struct, reflect.Func, reflect.Chan:
		return Option{}, fmt.Errorf("unsupported option item %s", item.Type())
	default:
		s := Scalar(item.Interface())
		return Option{Value: s, Label: s}, nil
	}
}

// optionFromMap reads {"value": ..., "label": ...} objects, the shape options
// take after a JSON or YAML round trip. Keys match case-insensitively.
func optionFromMap(item reflect.Value) (Option, error) {
	if item.Type().Key().Kind() != reflect.String {
		return Option{}, fmt.Errorf("option object must be keyed by strings, got %s", item.Type())
	}
	var (
		opt      Option
		hasValue bool
	)
	iter := item.MapRange()
	for iter.Next() {
		value := iter.Value().Interface()
		switch strings.ToLower(iter.Key().String()) {
		case "value":
			opt.Value = Scalar(value)
			hasValue = true
		case "label":
			opt.Label = Scalar(value)
		case "placeholder":
			opt.Placeholder = Truthy(Scalar(value))
		}
	}
	if !hasValue && !opt.Placeholder {
		return Option{}, fmt.Errorf("option object has no value")
	}
	if opt.Label == "" {
		opt.Label = opt.Value
	}
	return opt, nil
}

func sortedMapOptions(size int, each func(fn func(k, v string))) []Option {
	out := make([]Option, 0, size)
	each(func(k, v string) {
		out = append(out, Option{Value: k, Label: v})
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value < out[j].Value
	})
	return out
}
