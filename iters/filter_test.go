package iters_test

import (
	"errors"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap/codec/lex"
	"github.com/ehsanranjbar/propmap/iters"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}

	iter := iters.Filter(iters.Slice(values), func(_ int, v int) bool {
		return v%2 == 0
	})
	defer iter.Close()

	iter.Rewind()
	require.True(t, iter.Valid())
	require.Equal(t, 1, iter.Key())
	v, err := iter.Value()
	require.NoError(t, err)
	require.Equal(t, 2, v)

	iter.Next()
	require.True(t, iter.Valid())
	require.Equal(t, 3, iter.Key())

	iter.Next()
	require.False(t, iter.Valid())

	iter.Seek(lex.EncodeUint64(2))
	require.True(t, iter.Valid())
	require.Equal(t, 3, iter.Key())
}

func TestFilterValueError(t *testing.T) {
	errBroken := errors.New("broken")
	iter := iters.Filter[int, int](&brokenIterator{err: errBroken}, func(int, int) bool { return true })

	iter.Rewind()
	require.True(t, iter.Valid())
	_, err := iter.Value()
	require.ErrorIs(t, err, errBroken)

	_, err = iters.Collect[int, int](iter)
	require.ErrorIs(t, err, errBroken)
}

type brokenIterator struct {
	err error
}

func (*brokenIterator) Close() {}
func (*brokenIterator) Item() *badger.Item { return nil }
func (*brokenIterator) Next() {}
func (*brokenIterator) Rewind() {}
func (*brokenIterator) Seek([]byte) {}
func (*brokenIterator) Valid() bool { return true }
func (*brokenIterator) Key() int { return 0 }
func (it *brokenIterator) Value() (int, error) { return 0, it.err }
