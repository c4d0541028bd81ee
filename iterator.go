package propmap

import (
	badger "github.com/dgraph-io/badger/v4"
)

// Iterator is a ValueIterator that also decodes the key of the current item.
type Iterator[K, V any] interface {
	ValueIterator[V]
	Key() K
}

// ValueIterator is a BadgerIterator that decodes the value of the current item.
type ValueIterator[V any] interface {
	BadgerIterator
	Value() (value V, err error)
}

// BadgerIterator is the subset of *badger.Iterator every record iterator provides.
type BadgerIterator interface {
	Close()
	Item() *badger.Item
	Next()
	Rewind()
	Seek(key []byte)
	Valid() bool
}

var _ BadgerIterator = (*badger.Iterator)(nil)
