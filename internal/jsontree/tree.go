// Package jsontree applies Realtime Database path semantics to decoded JSON
// (map[string]any) trees. Nulls and empty objects are never stored: writing
// nil deletes, and parents left empty are pruned.
package jsontree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize converts any JSON-encodable value into its generic decoded form.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return prune(out), nil
}

func Get(root any, segs []string) any {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[s]
	}
	return cur
}

// Set stores value at segs and returns the new root.
func Set(root any, segs []string, value any) any {
	if len(segs) == 0 {
		return prune(value)
	}

	m, ok := root.(map[string]any)
	if !ok || m == nil {
		m = map[string]any{}
	}

	child := Set(m[segs[0]], segs[1:], value)
	if child == nil {
		delete(m, segs[0])
	} else {
		m[segs[0]] = child
	}

	if len(m) == 0 {
		return nil
	}
	return m
}

// Merge writes each child under segs, leaving siblings untouched. Child keys
// may themselves be slash-separated paths.
func Merge(root any, segs []string, children map[string]any) any {
	for k, v := range children {
		path := make([]string, 0, len(segs)+1)
		path = append(path, segs...)
		for _, part := range strings.Split(k, "/") {
			if part != "" {
				path = append(path, part)
			}
		}
		root = Set(root, path, v)
	}
	return root
}

func Delete(root any, segs []string) any {
	return Set(root, segs, nil)
}

func prune(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			if p := prune(child); p == nil {
				delete(val, k)
			} else {
				val[k] = p
			}
		}
		if len(val) == 0 {
			return nil
		}
		return val
	case []any:
		if len(val) == 0 {
			return nil
		}
		return val
	default:
		return v
	}
}
