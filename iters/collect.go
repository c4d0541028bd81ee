package iters

import "github.com/ehsanranjbar/propmap"

// Collect collects all the items from the iterator and returns them as a slice.
// The iterator is rewound first and left open.
func Collect[K, V any](it propmap.Iterator[K, V]) ([]V, error) {
	var items []V
	for it.Rewind(); it.Valid(); it.Next() {
		v, err := it.Value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// CollectKeys is like Collect but returns the keys.
func CollectKeys[K, V any](it propmap.Iterator[K, V]) []K {
	var keys []K
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Key())
	}
	return keys
}
