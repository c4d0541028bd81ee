package composite

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/ehsanranjbar/propmap/schema"
)

// Flatten implements the schema.Flatter interface.
//
// Every leaf of v is stored under its full key path. A nil v yields an empty map. The
// first leaf that the admission policy rejects aborts the whole call.
func (c *Converter) Flatten(v any) (map[string]any, error) {
	flat := make(map[string]any)
	if v == nil {
		return flat, nil
	}

	entries, ok := mapEntries(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAMap, v)
	}
	err := c.flatten(entries, c.head, flat)
	if err != nil {
		return nil, err
	}
	return flat, nil
}

func (c *Converter) flatten(entries []entry, path string, flat map[string]any) error {
	for _, e := range entries {
		key := path + e.key
		if strings.Contains(e.key, c.delimiter) {
			return &KeyError{Key: key, Fragment: e.key, Err: fmt.Errorf("%w: contains delimiter %q", ErrAmbiguousKey, c.delimiter)}
		}

		if sub, ok := mapEntries(e.value); ok {
			err := c.flatten(sub, key+c.delimiter, flat)
			if err != nil {
				return err
			}
			continue
		}

		if !c.policy.Admits(schema.KindOf(e.value)) {
			return newLeafError(key, e.value, ErrUnsupportedLeafType)
		}
		if _, ok := flat[key]; ok {
			return &KeyError{Key: key, Fragment: e.key, Err: fmt.Errorf("%w: distinct keys with the same text", ErrAmbiguousKey)}
		}
		flat[key] = e.value
	}

	return nil
}

type entry struct {
	key   string
	value any
}

// mapEntries returns the entries of v sorted by key text, or false if v is not a map.
func mapEntries(v any) ([]entry, bool) {
	var entries []entry
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		entries = make([]entry, 0, len(m))
		for k, v := range m {
			entries = append(entries, entry{key: k, value: v})
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return nil, false
		}
		entries = make([]entry, 0, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			entries = append(entries, entry{
				key:   schema.Label(it.Key().Interface()),
				value: it.Value().Interface(),
			})
		}
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})
	return entries, true
}
