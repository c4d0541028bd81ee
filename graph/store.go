// Package graph persists nodes and relationships whose properties are flat
// property sets, as produced by the composite package, in badger.
package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap"
	"github.com/ehsanranjbar/propmap/codec"
	"github.com/google/uuid"
)

var (
	nodePrefix      = []byte("n/")
	relPrefix       = []byte("r/")
	adjacencyPrefix = []byte("a/")
	labelPrefix     = []byte("l/")
	registryKey     = []byte("m/labels")
	sequenceKey     = []byte("m/seq")
)

const defaultSequenceBandwidth = 128

// Store is a graph of nodes and relationships kept in a badger database.
// It is safe for concurrent use, writes are serialized.
type Store struct {
	db        *badger.DB
	logger    *slog.Logger
	bandwidth uint64
	seq       *badger.Sequence
	labels    *propmap.NameRegistry
	nodeIDs   codec.Codec[uint64]
	relIDs    codec.Codec[uuid.UUID]
	mu        sync.Mutex
}

// Open opens a graph store on db.
func Open(db *badger.DB, opts ...Option) (*Store, error) {
	if db == nil {
		panic("graph: db must not be nil")
	}

	s := &Store{
		db:        db,
		logger:    slog.New(slog.DiscardHandler),
		bandwidth: defaultSequenceBandwidth,
		nodeIDs:   codec.Uint64Codec{},
		relIDs:    codec.BinaryCodec[uuid.UUID]{},
	}
	for _, opt := range opts {
		opt(s)
	}

	labels, err := propmap.NewNameRegistry(db,
		propmap.WithRegistryPrefix(registryKey),
		propmap.WithRegistryKeyLen(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open label registry: %w", err)
	}
	seq, err := db.GetSequence(sequenceKey, s.bandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to get node id sequence: %w", err)
	}

	s.labels = labels
	s.seq = seq
	return s, nil
}

// Close returns the leased but unused node ids. The database is left open.
func (s *Store) Close() error {
	return s.seq.Release()
}

func (s *Store) update(fn func(txn *badger.Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(fn)
}

// CreateNode stores a new node with the given labels and properties and returns it.
func (s *Store) CreateNode(labels []string, props map[string]any) (*Node, error) {
	labels, err := normalizeLabels(labels)
	if err != nil {
		return nil, err
	}

	// Sequences start at zero, node ids start at one.
	id, err := s.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to get next node id: %w", err)
	}
	n := &Node{ID: id + 1, Labels: labels, Properties: maps.Clone(props)}

	err = s.update(func(txn *badger.Txn) error {
		return s.writeNode(txn, nil, n)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("node created", "id", n.ID, "labels", n.Labels)
	return n, nil
}

// PutNode overwrites an existing node, updating the label index.
// Labels of n are sorted and deduplicated in place.
func (s *Store) PutNode(n *Node) error {
	labels, err := normalizeLabels(n.Labels)
	if err != nil {
		return err
	}

	err = s.update(func(txn *badger.Txn) error {
		old, err := s.getNode(txn, n.ID)
		if err != nil {
			return err
		}
		n.Labels = labels
		return s.writeNode(txn, old, n)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("node updated", "id", n.ID, "labels", n.Labels)
	return nil
}

// Node returns the node with the given id.
func (s *Store) Node(id uint64) (n *Node, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		n, err = s.getNode(txn, id)
		return err
	})
	return n, err
}

// DeleteNode deletes a node that no relationship refers to.
func (s *Store) DeleteNode(id uint64) error {
	err := s.update(func(txn *badger.Txn) error {
		n, err := s.getNode(txn, id)
		if err != nil {
			return err
		}

		inUse, err := s.hasRelationships(txn, id)
		if err != nil {
			return err
		}
		if inUse {
			return fmt.Errorf("%w: %d", ErrNodeInUse, id)
		}

		for _, label := range n.Labels {
			if err := s.indexLabel(txn, label, id, false); err != nil {
				return err
			}
		}

		key, err := s.nodeIDs.Encode(id)
		if err != nil {
			return fmt.Errorf("failed to encode node id: %w", err)
		}
		return propmap.NewPrefixStore(txn, nodePrefix).Delete(key)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("node deleted", "id", id)
	return nil
}

// NodesByLabel returns the nodes carrying label in ascending id order.
func (s *Store) NodesByLabel(label string) ([]*Node, error) {
	name, ok := s.labels.Lookup(label)
	if !ok {
		return nil, nil
	}

	var nodes []*Node
	err := s.db.View(func(txn *badger.Txn) error {
		bm, err := loadBitmap(propmap.NewPrefixStore(txn, labelPrefix), name)
		if err != nil {
			return err
		}

		nodes = make([]*Node, 0, bm.GetCardinality())
		for _, id := range bm.ToArray() {
			n, err := s.getNode(txn, id)
			if err != nil {
				return err
			}
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes, err
}

// ViewNodes calls fn with an iterator over all nodes in ascending id order.
// The iterator must not be used after fn returns.
func (s *Store) ViewNodes(fn func(it propmap.Iterator[uint64, *Node]) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := newRecordIterator[uint64, Node](propmap.NewPrefixStore(txn, nodePrefix), s.nodeIDs)
		defer it.Close()

		return fn(it)
	})
}

func (s *Store) getNode(txn *badger.Txn, id uint64) (*Node, error) {
	return getRecord[uint64, Node](propmap.NewPrefixStore(txn, nodePrefix), s.nodeIDs, id, ErrNodeNotFound)
}

func (s *Store) writeNode(txn *badger.Txn, old, n *Node) error {
	key, err := s.nodeIDs.Encode(n.ID)
	if err != nil {
		return fmt.Errorf("failed to encode node id: %w", err)
	}
	data, err := n.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal node %d: %w", n.ID, err)
	}
	err = propmap.NewPrefixStore(txn, nodePrefix).Set(key, data)
	if err != nil {
		return err
	}

	var oldLabels []string
	if old != nil {
		oldLabels = old.Labels
	}
	for _, label := range n.Labels {
		if slices.Contains(oldLabels, label) {
			continue
		}
		if err := s.indexLabel(txn, label, n.ID, true); err != nil {
			return err
		}
	}
	for _, label := range oldLabels {
		if slices.Contains(n.Labels, label) {
			continue
		}
		if err := s.indexLabel(txn, label, n.ID, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) indexLabel(txn *badger.Txn, label string, id uint64, add bool) error {
	var name []byte
	if add {
		var err error
		name, err = s.labels.Name(label)
		if err != nil {
			return fmt.Errorf("failed to register label %q: %w", label, err)
		}
	} else {
		var ok bool
		name, ok = s.labels.Lookup(label)
		if !ok {
			return nil
		}
	}

	store := propmap.NewPrefixStore(txn, labelPrefix)
	bm, err := loadBitmap(store, name)
	if err != nil {
		return err
	}
	if add {
		bm.Add(id)
	} else {
		bm.Remove(id)
	}

	if bm.IsEmpty() {
		return store.Delete(name)
	}
	data, err := bm.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal index of label %q: %w", label, err)
	}
	return store.Set(name, data)
}

func loadBitmap(store *propmap.PrefixStore, key []byte) (*roaring64.Bitmap, error) {
	bm := roaring64.New()
	item, err := store.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return bm, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal label index: %w", err)
	}
	return bm, nil
}

func getRecord[I, R any, PR record[I, R]](store *propmap.PrefixStore, ids codec.Encoder[I], id I, notFound error) (*R, error) {
	key, err := ids.Encode(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode id: %w", err)
	}
	item, err := store.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %v", notFound, id)
	}
	if err != nil {
		return nil, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	v := PR(new(R))
	if err := v.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %v: %w", id, err)
	}
	v.setID(id)
	return (*R)(v), nil
}
