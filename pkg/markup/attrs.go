package markup

import "strings"

// Attrs is an insertion-ordered set of HTML attributes.
type Attrs struct {
	keys   []string
	values map[string]string
}

// NewAttrs builds an attribute set from alternating key/value pairs. A trailing
// key without a value is ignored.
func NewAttrs(pairs ...string) *Attrs {
	a := &Attrs{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

// Set assigns value to key, keeping the original position of existing keys.
func (a *Attrs) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// SetDefault assigns value only when key is absent.
func (a *Attrs) SetDefault(key, value string) {
	if !a.Has(key) {
		a.Set(key, value)
	}
}

// Get returns the value stored for key.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil || a.values == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Delete removes key if present.
func (a *Attrs) Delete(key string) {
	a.Pop(key)
}

// Pop removes key and returns its previous value.
func (a *Attrs) Pop(key string) (string, bool) {
	v, ok := a.Get(key)
	if !ok {
		return "", false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Clone returns an independent copy.
func (a *Attrs) Clone() *Attrs {
	out := &Attrs{values: make(map[string]string, a.Len())}
	if a == nil {
		return out
	}
	for _, k := range a.keys {
		out.Set(k, a.values[k])
	}
	return out
}

// PrependClass puts token ahead of any classes already present.
func (a *Attrs) PrependClass(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	existing, _ := a.Get("class")
	existing = strings.TrimSpace(existing)
	if existing == "" {
		a.Set("class", token)
		return
	}
	a.Set("class", token+" "+existing)
}

// canonicalOrder lists attributes rendered ahead of the rest so output stays
// stable regardless of how a template declared them.
var canonicalOrder = []string{"type", "name", "id", "for", "value", "method", "action"}

func (a *Attrs) ordered() []string {
	if a.Len() == 0 {
		return nil
	}
	out := make([]string, 0, len(a.keys))
	leading := make(map[string]struct{}, len(canonicalOrder))
	for _, k := range canonicalOrder {
		leading[k] = struct{}{}
		if a.Has(k) {
			out = append(out, k)
		}
	}
	for _, k := range a.keys {
		if _, ok := leading[k]; ok {
			continue
		}
		out = append(out, k)
	}
	return out
}
