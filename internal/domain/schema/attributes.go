package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Attributes is the nested attribute record of one column, mirroring the
// shape of its schema entry: {identity: {name: ..}, type: {logical_type: ..}}
type Attributes map[string]interface{}

// SplitPath splits a dotted attribute path ("type.logical_type")
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("empty attribute path")
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("malformed attribute path %q", path)
		}
	}
	return parts, nil
}

// Leaf returns the value at path if it resolves to a non-mapping value
func (a Attributes) Leaf(path string) (interface{}, bool) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, false
	}

	var cur interface{} = map[string]interface{}(a)
	for _, p := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}

	if _, isMap := asMap(cur); isMap {
		return nil, false
	}
	return cur, true
}

// Assign overwrites an existing leaf. Callers validate the path with Leaf first.
func (a Attributes) Assign(path string, value interface{}) error {
	parts, err := SplitPath(path)
	if err != nil {
		return err
	}

	m := map[string]interface{}(a)
	for _, p := range parts[:len(parts)-1] {
		next, ok := asMap(m[p])
		if !ok {
			return fmt.Errorf("attribute path %q does not resolve", path)
		}
		m = next
	}

	last := parts[len(parts)-1]
	if _, ok := m[last]; !ok {
		return fmt.Errorf("attribute path %q does not resolve", path)
	}
	m[last] = value
	return nil
}

// Flatten returns every leaf keyed by its dotted path
func (a Attributes) Flatten() map[string]interface{} {
	out := make(map[string]interface{})
	flattenInto(out, "", a)
	return out
}

// Paths returns the sorted leaf paths of the record
func (a Attributes) Paths() []string {
	flat := a.Flatten()
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone creates a deep copy so edits never leak into the loaded schema
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return Attributes(cloneMap(a))
}

func flattenInto(out map[string]interface{}, prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := asMap(v); ok {
			flattenInto(out, key, child)
			continue
		}
		out[key] = v
	}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Attributes:
		return m, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies nested maps and lists; scalars are returned as is
func CloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case Attributes:
		return cloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}
