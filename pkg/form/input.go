package form

import (
	"net/url"
	"strings"
)

// Source is a read-only key-value view consulted by Fetch.
type Source interface {
	Lookup(name string) (any, bool)
}

// Input carries the two sources an element fetches from. Request takes
// priority over Global. Either may be nil.
type Input struct {
	Request Source
	Global  Source
}

func lookup(src Source, name string) (any, bool) {
	if src == nil {
		return nil, false
	}
	v, ok := src.Lookup(name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]any

// Lookup implements Source.
func (m MapSource) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

type requestValues struct {
	values    url.Values
	namespace string
}

// RequestValues exposes url.Values as a Source. Keys are expected in the
// namespace[name] form; namespace[name][] keys yield a []string. An empty
// namespace looks up plain names.
func RequestValues(values url.Values, namespace string) Source {
	return requestValues{values: values, namespace: strings.TrimSpace(namespace)}
}

func (r requestValues) key(name string) string {
	if r.namespace == "" {
		return name
	}
	return r.namespace + "[" + name + "]"
}

// Lookup implements Source.
func (r requestValues) Lookup(name string) (any, bool) {
	if r.values == nil {
		return nil, false
	}
	key := r.key(name)
	if list, ok := r.values[key+"[]"]; ok {
		out := make([]string, len(list))
		copy(out, list)
		return out, true
	}
	list, ok := r.values[key]
	if !ok || len(list) == 0 {
		return nil, false
	}
	if len(list) > 1 {
		out := make([]string, len(list))
		copy(out, list)
		return out, true
	}
	return list[0], true
}

// InputName returns the request key an element named name posts under.
func InputName(namespace, name string, multiple bool) string {
	key := name
	if namespace != "" {
		key = namespace + "[" + name + "]"
	}
	if multiple {
		key += "[]"
	}
	return key
}
