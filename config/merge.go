package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Mapping is a configuration tree: string keys, nested mappings, lists and
// scalars.
type Mapping = map[string]any

// ListPolicy decides what happens when two layers both define a list at
// the same key. Mappings always merge recursively and any other value is
// replaced by the later layer.
type ListPolicy int

const (
	// ListsAppend appends the later list to the earlier one. When only one
	// side is a list the later value wins.
	ListsAppend ListPolicy = iota
	// ListsReplace keeps only the later list.
	ListsReplace
)

func (p ListPolicy) String() string {
	if p == ListsReplace {
		return "replace"
	}
	return "append"
}

// ParseListPolicy converts "append" or "replace" to a ListPolicy. The empty
// string selects the default, ListsAppend.
func ParseListPolicy(s string) (ListPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return ListsAppend, nil
	case "replace":
		return ListsReplace, nil
	default:
		return ListsAppend, fmt.Errorf("unknown list policy %q", s)
	}
}

const keyDelim = "."

// layerMerger accumulates layers for a single LoadConfig call.
type layerMerger struct {
	k    *koanf.Koanf
	opts []koanf.Option
}

func newLayerMerger(policy ListPolicy) *layerMerger {
	m := &layerMerger{k: koanf.New(keyDelim)}
	if policy == ListsAppend {
		m.opts = append(m.opts, koanf.WithMergeFunc(appendMerge))
	}
	return m
}

// appendMerge merges src into dest in place. Nested mappings recurse, two
// lists concatenate, and anything else takes the src value.
func appendMerge(src, dest map[string]any) error {
	for key, sv := range src {
		dv, ok := dest[key]
		if !ok {
			dest[key] = sv
			continue
		}
		switch s := sv.(type) {
		case map[string]any:
			if d, ok := dv.(map[string]any); ok {
				if err := appendMerge(s, d); err != nil {
					return err
				}
				continue
			}
		case []any:
			if d, ok := dv.([]any); ok {
				merged := make([]any, 0, len(d)+len(s))
				dest[key] = append(append(merged, d...), s...)
				continue
			}
		}
		dest[key] = sv
	}
	return nil
}

// mergeFile parses raw file content and merges it over the current state.
// Parser errors are returned unchanged.
func (m *layerMerger) mergeFile(data []byte, parser koanf.Parser) error {
	return m.k.Load(rawbytes.Provider(data), parser, m.opts...)
}

// mergeMapping merges a normalized deep copy of src, leaving the caller's
// value intact.
func (m *layerMerger) mergeMapping(src Mapping) error {
	if len(src) == 0 {
		return nil
	}
	return m.k.Load(mapProvider(normalizeMap(src)), nil, m.opts...)
}

// mergeEnv merges variables starting with prefix. PREFIX_DB__HOST becomes
// db.host.
func (m *layerMerger) mergeEnv(prefix string) error {
	transform := func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, prefix))
		return strings.ReplaceAll(key, "__", keyDelim)
	}
	return m.k.Load(env.Provider(prefix, keyDelim, transform), nil, m.opts...)
}

// result returns a copy of the merged tree.
func (m *layerMerger) result() Mapping {
	return m.k.Raw()
}
