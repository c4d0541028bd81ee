package graph_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ehsanranjbar/propmap/composite"
	"github.com/ehsanranjbar/propmap/graph"
	"github.com/ehsanranjbar/propmap/schema"
	"github.com/ehsanranjbar/propmap/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, opts ...graph.Option) *graph.Store {
	t.Helper()

	s, err := graph.Open(testutil.PrepareDB(t), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestNodes(t *testing.T) {
	s := openStore(t)

	a, err := s.CreateNode([]string{"Store", "Shop", "Store"}, map[string]any{"name": "A"})
	require.NoError(t, err)
	require.Equal(t, uint64(1), a.ID)
	require.Equal(t, []string{"Shop", "Store"}, a.Labels)

	b, err := s.CreateNode(nil, map[string]any{"name": "B"})
	require.NoError(t, err)
	require.Equal(t, uint64(2), b.ID)

	t.Run("Get", func(t *testing.T) {
		got, err := s.Node(a.ID)
		require.NoError(t, err)
		require.Equal(t, a, got)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.Node(42)
		require.ErrorIs(t, err, graph.ErrNodeNotFound)

		err = s.PutNode(&graph.Node{ID: 42})
		require.ErrorIs(t, err, graph.ErrNodeNotFound)

		err = s.DeleteNode(42)
		require.ErrorIs(t, err, graph.ErrNodeNotFound)
	})

	t.Run("EmptyLabel", func(t *testing.T) {
		_, err := s.CreateNode([]string{""}, nil)
		require.ErrorIs(t, err, graph.ErrEmptyLabel)
	})

	t.Run("Put", func(t *testing.T) {
		b.Labels = []string{"Warehouse"}
		b.Properties["name"] = "B2"
		require.NoError(t, s.PutNode(b))

		got, err := s.Node(b.ID)
		require.NoError(t, err)
		require.Equal(t, "B2", got.Properties["name"])
		require.True(t, got.HasLabel("Warehouse"))
	})

	t.Run("Delete", func(t *testing.T) {
		c, err := s.CreateNode([]string{"Temp"}, nil)
		require.NoError(t, err)
		require.NoError(t, s.DeleteNode(c.ID))

		_, err = s.Node(c.ID)
		require.ErrorIs(t, err, graph.ErrNodeNotFound)

		nodes, err := s.NodesByLabel("Temp")
		require.NoError(t, err)
		require.Empty(t, nodes)
	})
}

func TestNodesByLabel(t *testing.T) {
	s := openStore(t)

	a, err := s.CreateNode([]string{"Store"}, nil)
	require.NoError(t, err)
	b, err := s.CreateNode([]string{"Store", "Warehouse"}, nil)
	require.NoError(t, err)
	_, err = s.CreateNode([]string{"Warehouse"}, nil)
	require.NoError(t, err)

	nodes, err := s.NodesByLabel("Store")
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID, b.ID}, ids(nodes))

	nodes, err = s.NodesByLabel("Unknown")
	require.NoError(t, err)
	require.Empty(t, nodes)

	b.Labels = []string{"Warehouse"}
	require.NoError(t, s.PutNode(b))

	nodes, err = s.NodesByLabel("Store")
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID}, ids(nodes))

	nodes, err = s.NodesByLabel("Warehouse")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
}

func TestReopen(t *testing.T) {
	db := testutil.PrepareDB(t)

	s, err := graph.Open(db)
	require.NoError(t, err)
	a, err := s.CreateNode([]string{"Store"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = graph.Open(db)
	require.NoError(t, err)
	defer s.Close()

	b, err := s.CreateNode([]string{"Store"}, nil)
	require.NoError(t, err)
	require.Greater(t, b.ID, a.ID)

	nodes, err := s.NodesByLabel("Store")
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID, b.ID}, ids(nodes))
}

func TestRelationships(t *testing.T) {
	s := openStore(t)

	a, err := s.CreateNode(nil, nil)
	require.NoError(t, err)
	b, err := s.CreateNode(nil, nil)
	require.NoError(t, err)

	r, err := s.CreateRelationship("SUPPLIES", a.ID, b.ID, map[string]any{"since": "2020"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, r.ID)
	require.Equal(t, b.ID, r.Other(a.ID))

	t.Run("Get", func(t *testing.T) {
		got, err := s.Relationship(r.ID)
		require.NoError(t, err)
		require.Equal(t, r, got)
	})

	t.Run("Of", func(t *testing.T) {
		for _, id := range []uint64{a.ID, b.ID} {
			rels, err := s.RelationshipsOf(id)
			require.NoError(t, err)
			require.Len(t, rels, 1)
			require.Equal(t, r.ID, rels[0].ID)
		}

		_, err := s.RelationshipsOf(42)
		require.ErrorIs(t, err, graph.ErrNodeNotFound)
	})

	t.Run("Put", func(t *testing.T) {
		update := *r
		update.Type = "OWNS"
		update.End = a.ID
		require.NoError(t, s.PutRelationship(&update))

		got, err := s.Relationship(r.ID)
		require.NoError(t, err)
		require.Equal(t, "OWNS", got.Type)
		require.Equal(t, b.ID, got.End)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := s.CreateRelationship("", a.ID, b.ID, nil)
		require.ErrorIs(t, err, graph.ErrEmptyRelationshipType)

		_, err = s.CreateRelationship("SUPPLIES", a.ID, 42, nil)
		require.ErrorIs(t, err, graph.ErrNodeNotFound)

		_, err = s.Relationship(uuid.New())
		require.ErrorIs(t, err, graph.ErrRelationshipNotFound)
	})

	t.Run("NodeInUse", func(t *testing.T) {
		err := s.DeleteNode(a.ID)
		require.ErrorIs(t, err, graph.ErrNodeInUse)

		require.NoError(t, s.DeleteRelationship(r.ID))
		_, err = s.Relationship(r.ID)
		require.ErrorIs(t, err, graph.ErrRelationshipNotFound)

		rels, err := s.RelationshipsOf(a.ID)
		require.NoError(t, err)
		require.Empty(t, rels)
		require.NoError(t, s.DeleteNode(a.ID))
	})

	t.Run("SelfLoop", func(t *testing.T) {
		loop, err := s.CreateRelationship("KNOWS", b.ID, b.ID, nil)
		require.NoError(t, err)

		rels, err := s.RelationshipsOf(b.ID)
		require.NoError(t, err)
		require.Len(t, rels, 1)

		require.NoError(t, s.DeleteRelationship(loop.ID))
		require.NoError(t, s.DeleteNode(b.ID))
	})
}

func TestComposite(t *testing.T) {
	s := openStore(t)
	sales := composite.MustNew("sales", ".",
		composite.WithAllowCast(true),
		composite.WithDescriptor(schema.LeafMap(schema.EnumKey(testutil.Regions), schema.KindInt32)),
	)
	geo := composite.MustNew("geo", ".",
		composite.WithAllowCast(true),
		composite.WithDescriptor(schema.LeafMap(schema.TextKey(), schema.KindFloat32)),
	)

	n, err := s.CreateNode([]string{"Store"}, map[string]any{"name": "A"})
	require.NoError(t, err)
	require.NoError(t, n.SetComposite(sales, map[testutil.Region]int32{
		testutil.RegionNorth: 7,
		testutil.RegionSouth: 3,
	}))
	require.NoError(t, n.SetComposite(geo, map[string]float32{"lat": 1.5}))
	require.NoError(t, s.PutNode(n))

	got, err := s.Node(n.ID)
	require.NoError(t, err)
	require.Equal(t, "A", got.Properties["name"])

	m, err := got.Composite(sales)
	require.NoError(t, err)
	require.Equal(t, map[testutil.Region]any{
		testutil.RegionNorth: int32(7),
		testutil.RegionSouth: int32(3),
	}, m)

	m, err = got.Composite(geo)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"lat": float32(1.5)}, m)

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, got.SetComposite(sales, map[testutil.Region]int32{testutil.RegionWest: 1}))
		require.NotContains(t, got.Properties, "sales.NORTH")
		require.Equal(t, int32(1), got.Properties["sales.WEST"])
		require.Equal(t, "A", got.Properties["name"])
	})

	t.Run("Relationship", func(t *testing.T) {
		r, err := s.CreateRelationship("SELLS", n.ID, n.ID, nil)
		require.NoError(t, err)
		require.NoError(t, r.SetComposite(geo, map[string]float32{"lon": 2.5}))
		require.NoError(t, s.PutRelationship(r))

		got, err := s.Relationship(r.ID)
		require.NoError(t, err)
		m, err := got.Composite(geo)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"lon": float32(2.5)}, m)
	})

	t.Run("Rejected", func(t *testing.T) {
		err := got.SetComposite(geo, map[string]any{"p": testutil.Point{}})
		require.ErrorIs(t, err, composite.ErrUnsupportedLeafType)
	})
}

func TestFindNodes(t *testing.T) {
	s := openStore(t)

	a, err := s.CreateNode([]string{"Store"}, map[string]any{"name": "alpha", "sales.NORTH": int64(7)})
	require.NoError(t, err)
	b, err := s.CreateNode([]string{"Store"}, map[string]any{"name": "beta", "sales.NORTH": int64(2)})
	require.NoError(t, err)

	nodes, err := s.FindNodes(`name == "alpha"`)
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID}, ids(nodes))

	nodes, err = s.FindNodes(`name like "*a"`)
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID, b.ID}, ids(nodes))

	nodes, err = s.FindNodes(`sales.NORTH > 5`)
	require.NoError(t, err)
	require.Equal(t, []uint64{a.ID}, ids(nodes))

	nodes, err = s.FindNodes(`missing == "x"`)
	require.NoError(t, err)
	require.Empty(t, nodes)

	_, err = s.FindNodes(`name ==`)
	require.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := openStore(t, graph.WithLogger(logger), graph.WithSequenceBandwidth(1))

	n, err := s.CreateNode([]string{"Store"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.DeleteNode(n.ID))

	require.Contains(t, buf.String(), "node created")
	require.Contains(t, buf.String(), "node deleted")

	_, err = s.CreateNode(nil, map[string]any{"name": "A"})
	require.NoError(t, err)
	nodes, err := s.FindNodes(`missing == "x"`)
	require.NoError(t, err)
	require.Empty(t, nodes)
	require.Contains(t, buf.String(), "query not evaluated")
}

func ids(nodes []*graph.Node) []uint64 {
	out := make([]uint64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}
