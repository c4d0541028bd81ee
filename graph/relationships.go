package graph

import (
	"fmt"
	"maps"
	"slices"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/propmap"
	"github.com/google/uuid"
)

// CreateRelationship stores a new relationship of type typ from start to end and returns it.
// Both nodes must exist.
func (s *Store) CreateRelationship(typ string, start, end uint64, props map[string]any) (*Relationship, error) {
	if typ == "" {
		return nil, ErrEmptyRelationshipType
	}

	r := &Relationship{
		ID:         uuid.New(),
		Type:       typ,
		Start:      start,
		End:        end,
		Properties: maps.Clone(props),
	}
	err := s.update(func(txn *badger.Txn) error {
		for _, id := range []uint64{start, end} {
			if _, err := s.getNode(txn, id); err != nil {
				return err
			}
		}
		return s.writeRelationship(txn, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("relationship created", "id", r.ID, "type", r.Type, "start", r.Start, "end", r.End)
	return r, nil
}

// PutRelationship overwrites the type and properties of an existing relationship.
// The endpoints of a relationship never change.
func (s *Store) PutRelationship(r *Relationship) error {
	if r.Type == "" {
		return ErrEmptyRelationshipType
	}

	err := s.update(func(txn *badger.Txn) error {
		old, err := s.getRelationship(txn, r.ID)
		if err != nil {
			return err
		}
		r.Start, r.End = old.Start, old.End
		return s.writeRelationship(txn, r)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("relationship updated", "id", r.ID, "type", r.Type)
	return nil
}

// Relationship returns the relationship with the given id.
func (s *Store) Relationship(id uuid.UUID) (r *Relationship, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		r, err = s.getRelationship(txn, id)
		return err
	})
	return r, err
}

// DeleteRelationship deletes a relationship.
func (s *Store) DeleteRelationship(id uuid.UUID) error {
	err := s.update(func(txn *badger.Txn) error {
		r, err := s.getRelationship(txn, id)
		if err != nil {
			return err
		}

		relKey, err := s.relIDs.Encode(id)
		if err != nil {
			return fmt.Errorf("failed to encode relationship id: %w", err)
		}
		adj := propmap.NewPrefixStore(txn, adjacencyPrefix)
		for _, nodeID := range []uint64{r.Start, r.End} {
			key, err := s.adjacencyKey(nodeID, relKey)
			if err != nil {
				return err
			}
			if err := adj.Delete(key); err != nil {
				return err
			}
		}
		return propmap.NewPrefixStore(txn, relPrefix).Delete(relKey)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("relationship deleted", "id", id)
	return nil
}

// RelationshipsOf returns the relationships starting or ending at the node.
func (s *Store) RelationshipsOf(nodeID uint64) ([]*Relationship, error) {
	var rels []*Relationship
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := s.getNode(txn, nodeID); err != nil {
			return err
		}

		ids, err := s.adjacentRelationships(txn, nodeID)
		if err != nil {
			return err
		}
		rels = make([]*Relationship, 0, len(ids))
		for _, id := range ids {
			r, err := s.getRelationship(txn, id)
			if err != nil {
				return err
			}
			rels = append(rels, r)
		}
		return nil
	})
	return rels, err
}

func (s *Store) getRelationship(txn *badger.Txn, id uuid.UUID) (*Relationship, error) {
	return getRecord[uuid.UUID, Relationship](propmap.NewPrefixStore(txn, relPrefix), s.relIDs, id, ErrRelationshipNotFound)
}

func (s *Store) writeRelationship(txn *badger.Txn, r *Relationship) error {
	relKey, err := s.relIDs.Encode(r.ID)
	if err != nil {
		return fmt.Errorf("failed to encode relationship id: %w", err)
	}
	data, err := r.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal relationship %s: %w", r.ID, err)
	}
	err = propmap.NewPrefixStore(txn, relPrefix).Set(relKey, data)
	if err != nil {
		return err
	}

	adj := propmap.NewPrefixStore(txn, adjacencyPrefix)
	for _, nodeID := range []uint64{r.Start, r.End} {
		key, err := s.adjacencyKey(nodeID, relKey)
		if err != nil {
			return err
		}
		if err := adj.Set(key, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) adjacencyKey(nodeID uint64, relKey []byte) ([]byte, error) {
	nodeKey, err := s.nodeIDs.Encode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node id: %w", err)
	}
	return slices.Concat(nodeKey, relKey), nil
}

func (s *Store) hasRelationships(txn *badger.Txn, nodeID uint64) (bool, error) {
	nodeKey, err := s.nodeIDs.Encode(nodeID)
	if err != nil {
		return false, fmt.Errorf("failed to encode node id: %w", err)
	}

	it := propmap.NewPrefixStore(txn, adjacencyPrefix).NewIterator(badger.IteratorOptions{Prefix: nodeKey})
	defer it.Close()

	it.Rewind()
	return it.Valid(), nil
}

func (s *Store) adjacentRelationships(txn *badger.Txn, nodeID uint64) ([]uuid.UUID, error) {
	nodeKey, err := s.nodeIDs.Encode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node id: %w", err)
	}

	adj := propmap.NewPrefixStore(txn, adjacencyPrefix)
	it := adj.NewIterator(badger.IteratorOptions{Prefix: nodeKey})
	defer it.Close()

	var ids []uuid.UUID
	for it.Rewind(); it.Valid(); it.Next() {
		id, err := s.relIDs.Decode(adj.TrimKey(it.Item())[len(nodeKey):])
		if err != nil {
			return nil, fmt.Errorf("failed to decode relationship id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
