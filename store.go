// Package propmap stores nested maps as flat prefixed properties of badger backed records.
//
// The conversion itself lives in the composite package. This package provides the
// key-value primitives the record stores are built on.
package propmap

import (
	badger "github.com/dgraph-io/badger/v4"
)

// Store is the generalized interface that represents a key-value store with get, set, delete and iterate operations.
// *badger.Txn implements it.
type Store interface {
	Delete(key []byte) error
	Get(key []byte) (item *badger.Item, err error)
	NewIterator(opts badger.IteratorOptions) *badger.Iterator
	Set(key, value []byte) error
	SetEntry(e *badger.Entry) error
}

var _ Store = (*badger.Txn)(nil)
