package graph

import (
	"encoding"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap"
	"github.com/ehsanranjbar/propmap/codec"
)

type record[I, R any] interface {
	*R
	encoding.BinaryUnmarshaler
	setID(I)
}

// recordIterator decodes the records under a PrefixStore, ids are taken from the keys.
type recordIterator[I, R any, PR record[I, R]] struct {
	store  *propmap.PrefixStore
	base   *badger.Iterator
	ids    codec.Decoder[I]
	cached *R
}

func newRecordIterator[I, R any, PR record[I, R]](store *propmap.PrefixStore, ids codec.Decoder[I]) *recordIterator[I, R, PR] {
	return &recordIterator[I, R, PR]{
		store: store,
		base:  store.NewIterator(badger.DefaultIteratorOptions),
		ids:   ids,
	}
}

// Close implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Close() {
	it.base.Close()
}

// Item implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Item() *badger.Item {
	return it.base.Item()
}

// Next implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Next() {
	it.base.Next()
	it.cached = nil
}

// Rewind implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Rewind() {
	it.base.Rewind()
	it.cached = nil
}

// Seek implements the Iterator interface.
// key is relative to the record prefix.
func (it *recordIterator[I, R, PR]) Seek(key []byte) {
	it.base.Seek(append(it.store.Prefix(), key...))
	it.cached = nil
}

// Valid implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Valid() bool {
	return it.base.Valid()
}

// Key implements the Iterator interface.
// Keys that can not be decoded yield the zero id.
func (it *recordIterator[I, R, PR]) Key() I {
	id, _ := it.ids.Decode(it.store.TrimKey(it.base.Item()))
	return id
}

// Value implements the Iterator interface.
func (it *recordIterator[I, R, PR]) Value() (*R, error) {
	if it.cached != nil {
		return it.cached, nil
	}

	item := it.base.Item()
	id, err := it.ids.Decode(it.store.TrimKey(item))
	if err != nil {
		return nil, err
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	v := PR(new(R))
	if err := v.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	v.setID(id)

	it.cached = (*R)(v)
	return it.cached, nil
}
