package composite

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/ehsanranjbar/propmap/coerce"
	"github.com/ehsanranjbar/propmap/internal/ordmap"
	"github.com/ehsanranjbar/propmap/schema"
)

// Unflatten implements the schema.Unflatter interface.
//
// Only properties whose key starts with prefix + delimiter are read. The result is a
// map[string]any for text keyed levels and a map[T]any for levels keyed by an enum of T.
func (c *Converter) Unflatten(flat map[string]any) (any, error) {
	root := newBranch()
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		if !c.Owns(key) {
			continue
		}

		err := root.put(key, strings.TrimPrefix(key, c.head), flat[key], c.delimiter)
		if err != nil {
			return nil, err
		}
	}

	return c.build(root, c.desc, c.head)
}

// node is a level of the property tree, indexed by raw key fragments.
type node struct {
	leaf     bool
	value    any
	children *ordmap.Map[string, *node]
}

func newBranch() *node {
	return &node{children: ordmap.New[string, *node]()}
}

func (n *node) put(key, residual string, value any, delimiter string) error {
	for {
		fragment, rest, nested := strings.Cut(residual, delimiter)
		if !nested {
			_, existed := n.children.GetOrAdd(fragment, func() *node {
				return &node{leaf: true, value: value}
			})
			if existed {
				return &KeyError{Key: key, Fragment: fragment, Err: fmt.Errorf("%w: value and submap under the same key", ErrShapeMismatch)}
			}
			return nil
		}

		child, _ := n.children.GetOrAdd(fragment, newBranch)
		if child.leaf {
			return &KeyError{Key: key, Fragment: fragment, Err: fmt.Errorf("%w: value and submap under the same key", ErrShapeMismatch)}
		}
		n, residual = child, rest
	}
}

// build materializes n into a typed map once all of its entries are known.
func (c *Converter) build(n *node, d *schema.Descriptor, path string) (any, error) {
	ks := d.KeySpec()
	m, err := newTypedMap(ks, n.children.Len())
	if err != nil {
		return nil, &KeyError{Key: path, Err: err}
	}

	for fragment, child := range n.children.Iter() {
		key := path + fragment
		k, err := resolveKey(ks, fragment)
		if err != nil {
			return nil, &KeyError{Key: key, Fragment: fragment, Err: err}
		}

		var v any
		if child.leaf {
			if d.DeclaresMap() {
				return nil, newLeafError(key, child.value, fmt.Errorf("%w: %s declares a submap", ErrShapeMismatch, d))
			}
			v, err = coerce.To(d.LeafKind(), child.value)
			if err != nil {
				return nil, newLeafError(key, child.value, err)
			}
		} else {
			v, err = c.build(child, d.Next(), key+c.delimiter)
			if err != nil {
				return nil, err
			}
		}
		m.set(k, v)
	}

	return m.value(), nil
}

func resolveKey(ks schema.KeySpec, fragment string) (any, error) {
	switch ks.Kind {
	case schema.KeyText:
		return fragment, nil
	case schema.KeyEnum:
		v, ok := ks.Enum.Lookup(fragment)
		if !ok {
			return nil, fmt.Errorf("%w in %s", ErrUnknownEnumLabel, ks.Enum.Name())
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w, got %s", ErrUnsupportedKeyType, ks)
	}
}

var anyType = reflect.TypeFor[any]()

// typedMap is either a map[string]any or a reflect built map[T]any.
type typedMap struct {
	text map[string]any
	rv   reflect.Value
}

func newTypedMap(ks schema.KeySpec, size int) (typedMap, error) {
	switch {
	case ks.Kind == schema.KeyText:
		return typedMap{text: make(map[string]any, size)}, nil
	case ks.Kind == schema.KeyEnum && ks.Enum != nil:
		return typedMap{rv: reflect.MakeMapWithSize(reflect.MapOf(ks.Enum.Type(), anyType), size)}, nil
	default:
		return typedMap{}, fmt.Errorf("%w, got %s", ErrUnsupportedKeyType, ks)
	}
}

func (m typedMap) set(k, v any) {
	if m.text != nil {
		m.text[k.(string)] = v
		return
	}

	rv := reflect.New(anyType).Elem()
	if v != nil {
		rv.Set(reflect.ValueOf(v))
	}
	m.rv.SetMapIndex(reflect.ValueOf(k), rv)
}

func (m typedMap) value() any {
	if m.text != nil {
		return m.text
	}
	return m.rv.Interface()
}
