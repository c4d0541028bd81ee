package iters

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap"
)

// FilterIterator is an iterator that skips the items rejected by a predicate.
type FilterIterator[K, V any] struct {
	base propmap.Iterator[K, V]
	keep func(K, V) bool
	err  error
}

// Filter creates a new filter iterator.
// An item whose value can not be decoded stops the iteration, Value returns the error.
func Filter[K, V any](base propmap.Iterator[K, V], keep func(K, V) bool) *FilterIterator[K, V] {
	return &FilterIterator[K, V]{base: base, keep: keep}
}

// Close implements the Iterator interface.
func (it *FilterIterator[K, V]) Close() {
	it.base.Close()
}

// Item implements the Iterator interface.
func (it *FilterIterator[K, V]) Item() *badger.Item {
	return it.base.Item()
}

// Next implements the Iterator interface.
func (it *FilterIterator[K, V]) Next() {
	it.base.Next()
	it.findNext()
}

func (it *FilterIterator[K, V]) findNext() {
	it.err = nil
	for ; it.base.Valid(); it.base.Next() {
		v, err := it.base.Value()
		if err != nil {
			it.err = err
			return
		}
		if it.keep(it.base.Key(), v) {
			return
		}
	}
}

// Rewind implements the Iterator interface.
func (it *FilterIterator[K, V]) Rewind() {
	it.base.Rewind()
	it.findNext()
}

// Seek implements the Iterator interface.
func (it *FilterIterator[K, V]) Seek(key []byte) {
	it.base.Seek(key)
	it.findNext()
}

// Valid implements the Iterator interface.
func (it *FilterIterator[K, V]) Valid() bool {
	return it.base.Valid()
}

// Key implements the Iterator interface.
func (it *FilterIterator[K, V]) Key() K {
	return it.base.Key()
}

// Value implements the Iterator interface.
func (it *FilterIterator[K, V]) Value() (value V, err error) {
	if it.err != nil {
		return value, it.err
	}
	return it.base.Value()
}
