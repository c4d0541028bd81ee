package propmap

import (
	"bytes"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap/codec/lex"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// NameRegistry associates a long string name with a unique sized byte slice.
// Names are never released, the registry is persisted under a single key on every new name.
type NameRegistry struct {
	db      *badger.DB
	prefix  []byte
	keyLen  int
	nextKey []byte
	m       map[string][]byte
	mu      sync.Mutex
}

// NewNameRegistry creates a new NameRegistry.
func NewNameRegistry(db *badger.DB, opts ...func(*NameRegistry)) (*NameRegistry, error) {
	nreg := &NameRegistry{
		db:     db,
		keyLen: 1,
		m:      make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(nreg)
	}
	nreg.nextKey = lex.Increment(bytes.Repeat([]byte{0}, nreg.keyLen))

	err := nreg.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load name registry: %w", err)
	}
	return nreg, nil
}

// WithRegistryPrefix sets the key the registry is persisted under.
func WithRegistryPrefix(prefix []byte) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.prefix = prefix
	}
}

// WithRegistryKeyLen sets the key length for the NameRegistry.
func WithRegistryKeyLen(keyLen int) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.keyLen = keyLen
	}
}

func (nreg *NameRegistry) load() error {
	return nreg.db.View(func(txn *badger.Txn) error {
		configItem, err := txn.Get(nreg.configKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return fmt.Errorf("failed to get config item: %w", err)
		}

		return configItem.Value(func(val []byte) error {
			dec := msgpack.GetDecoder()
			dec.Reset(bytes.NewReader(val))
			defer msgpack.PutDecoder(dec)

			err := dec.DecodeMulti(&nreg.m, &nreg.nextKey)
			if err != nil {
				return fmt.Errorf("failed to decode config: %w", err)
			}
			return nil
		})
	})
}

func (nreg *NameRegistry) configKey() []byte {
	if len(nreg.prefix) == 0 {
		return bytes.Repeat([]byte{0}, nreg.keyLen)
	}
	return nreg.prefix
}

// MustName is like Name but panics if an error occurs.
func (nreg *NameRegistry) MustName(name string) []byte {
	key, err := nreg.Name(name)
	if err != nil {
		panic(err)
	}
	return key
}

// Name returns the key of a name, associating a new unique key with it first if needed.
func (nreg *NameRegistry) Name(name string) ([]byte, error) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	if key, ok := nreg.m[name]; ok {
		return bytes.Clone(key), nil
	}

	if len(nreg.nextKey) > nreg.keyLen {
		return nil, fmt.Errorf("name registry is full")
	}

	key := bytes.Clone(nreg.nextKey)
	next := lex.Increment(bytes.Clone(nreg.nextKey))
	nreg.m[name] = key
	err := nreg.save(next)
	if err != nil {
		delete(nreg.m, name)
		return nil, fmt.Errorf("failed to update name registry: %w", err)
	}
	nreg.nextKey = next

	return bytes.Clone(key), nil
}

// Lookup returns the key of a name without registering it.
func (nreg *NameRegistry) Lookup(name string) ([]byte, bool) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	key, ok := nreg.m[name]
	return bytes.Clone(key), ok
}

func (nreg *NameRegistry) save(nextKey []byte) error {
	return nreg.db.Update(func(txn *badger.Txn) error {
		enc := msgpack.GetEncoder()
		var buf bytes.Buffer
		enc.Reset(&buf)
		defer msgpack.PutEncoder(enc)

		err := enc.EncodeMulti(nreg.m, nextKey)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}

		err = txn.Set(nreg.configKey(), buf.Bytes())
		if err != nil {
			return fmt.Errorf("failed to set config item: %w", err)
		}

		return nil
	})
}
