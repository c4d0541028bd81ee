package propmap

import (
	"slices"

	badger "github.com/dgraph-io/badger/v4"
)

// PrefixStore is a store that prefixes all keys with a given prefix.
type PrefixStore struct {
	base   Store
	prefix []byte
}

var _ Store = (*PrefixStore)(nil)

// NewPrefixStore creates a new PrefixStore.
func NewPrefixStore(base Store, prefix []byte) *PrefixStore {
	return &PrefixStore{
		base:   base,
		prefix: slices.Clone(prefix),
	}
}

// Prefix returns the prefix of the store.
func (s *PrefixStore) Prefix() []byte {
	return slices.Clone(s.prefix)
}

func (s *PrefixStore) key(key []byte) []byte {
	return slices.Concat(s.prefix, key)
}

// Delete deletes the key from the store.
func (s *PrefixStore) Delete(key []byte) error {
	return s.base.Delete(s.key(key))
}

// Get gets the key from the store.
func (s *PrefixStore) Get(key []byte) (*badger.Item, error) {
	return s.base.Get(s.key(key))
}

// NewIterator creates an iterator over the keys of the store, restricted further by opts.Prefix.
// Keys of the returned items still carry the store prefix, see TrimKey.
func (s *PrefixStore) NewIterator(opts badger.IteratorOptions) *badger.Iterator {
	opts.Prefix = s.key(opts.Prefix)
	return s.base.NewIterator(opts)
}

// TrimKey returns a copy of the item's key without the store prefix.
func (s *PrefixStore) TrimKey(item *badger.Item) []byte {
	return item.KeyCopy(nil)[len(s.prefix):]
}

// Set sets the key in the store.
func (s *PrefixStore) Set(key, value []byte) error {
	return s.base.Set(s.key(key), value)
}

// SetEntry sets the entry in the store.
func (s *PrefixStore) SetEntry(e *badger.Entry) error {
	e.Key = s.key(e.Key)
	return s.base.SetEntry(e)
}
