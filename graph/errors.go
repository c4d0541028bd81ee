package graph

import "errors"

var (
	// ErrNodeNotFound is returned when a node does not exist.
	ErrNodeNotFound = errors.New("node not found")
	// ErrRelationshipNotFound is returned when a relationship does not exist.
	ErrRelationshipNotFound = errors.New("relationship not found")
	// ErrNodeInUse is returned when deleting a node that relationships still refer to.
	ErrNodeInUse = errors.New("node has relationships")
	// ErrEmptyLabel is returned for empty node labels.
	ErrEmptyLabel = errors.New("label must not be empty")
	// ErrEmptyRelationshipType is returned when a relationship is created without a type.
	ErrEmptyRelationshipType = errors.New("relationship type must not be empty")
)
