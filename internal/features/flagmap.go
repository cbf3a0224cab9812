package features

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Map holds a value for every known key.
type Map [numKeys]bool

// Partial holds values for a subset of keys. A missing key means the layer
// has no opinion about it, not that the flag is off.
type Partial map[Key]bool

// Defaults returns the compiled-in value of every flag.
func Defaults() Map {
	var m Map
	for _, f := range allFeatures {
		m[f.Key] = f.Default
	}
	return m
}

// Merge returns m with every key present in p replaced by p's value.
func (m Map) Merge(p Partial) Map {
	for k, v := range p {
		if k.Valid() {
			m[k] = v
		}
	}
	return m
}

// Names returns m keyed by storage name.
func (m Map) Names() map[string]bool {
	out := make(map[string]bool, numKeys)
	for i, v := range m {
		out[Key(i).String()] = v
	}
	return out
}

// MarshalJSON encodes m as a flat object of name to value.
func (m Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Names())
}

// PartialFromNames converts a name-keyed object into a Partial. Names not in
// the schema are returned separately so the caller can decide what to do
// with them.
func PartialFromNames(values map[string]bool) (Partial, []string) {
	p := make(Partial, len(values))
	var unknown []string
	for name, v := range values {
		k, err := ParseKey(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		p[k] = v
	}
	sort.Strings(unknown)
	return p, unknown
}

// Resolve merges the layers in precedence order, lowest first.
func Resolve(defaults Map, layers ...Partial) Map {
	m := defaults
	for _, l := range layers {
		m = m.Merge(l)
	}
	return m
}

// String renders m as name=value pairs in schema order.
func (m Map) String() string {
	s := "{"
	for i, v := range m {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%t", Key(i), v)
	}
	return s + "}"
}
