package graph

import (
	"fmt"

	"github.com/araddon/qlbridge/expr"
	qlvm "github.com/araddon/qlbridge/vm"
	"github.com/ehsanranjbar/propmap"
	"github.com/ehsanranjbar/propmap/internal/qlutil"
	"github.com/ehsanranjbar/propmap/iters"
)

// FindNodes returns the nodes matching a qlbridge expression in ascending id order.
// Identifiers resolve to flat property keys, "_id" to the node id and "_labels" to its labels.
// Nodes the expression can not be evaluated against, e.g. for a missing property, do not match.
func (s *Store) FindNodes(query string) ([]*Node, error) {
	qe, err := expr.ParseExpression(query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	var nodes []*Node
	err = s.ViewNodes(func(it propmap.Iterator[uint64, *Node]) error {
		matches := iters.Filter(it, func(id uint64, n *Node) bool {
			ctx := qlutil.NewPropertiesContext(id, n.Properties, map[string]any{"_labels": n.Labels})
			matched, ok := qlvm.MatchesExpr(ctx, qe)
			if !ok {
				s.logger.Debug("query not evaluated", "query", query, "node", id)
			}
			return matched
		})

		var err error
		nodes, err = iters.Collect[uint64, *Node](matches)
		return err
	})
	return nodes, err
}
