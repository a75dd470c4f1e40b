package space_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/talgya/cellspace/internal/space"
)

// pathGraph builds A–B–C as nodes 0–1–2.
func pathGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	g.SetEdge(simple.Edge{F: simple.Node(0), T: simple.Node(1)})
	g.SetEdge(simple.Edge{F: simple.Node(1), T: simple.Node(2)})
	return g
}

func TestNetworkFidelity(t *testing.T) {
	net, err := space.NewNetwork(pathGraph(), space.CapacityUnbounded, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, net.NumCells())

	a, err := net.CellForNode(0)
	require.NoError(t, err)
	b, err := net.CellForNode(1)
	require.NoError(t, err)
	c, err := net.CellForNode(2)
	require.NoError(t, err)

	hoodA, err := a.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hoodA.Len())
	assert.True(t, hoodA.Contains(b))

	hoodB, err := b.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, hoodB.Len())
	assert.True(t, hoodB.Contains(a))
	assert.True(t, hoodB.Contains(c))

	// Radius 2 from an endpoint spans the whole path.
	hoodA2, err := a.Neighborhood(2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, hoodA2.Len())
	assert.True(t, hoodA2.Contains(c))
}

func TestNetworkDeterministicCellOrder(t *testing.T) {
	// Insert nodes out of order; cells must still come out in ascending
	// node-id order.
	g := simple.NewUndirectedGraph()
	g.SetEdge(simple.Edge{F: simple.Node(7), T: simple.Node(2)})
	g.SetEdge(simple.Edge{F: simple.Node(2), T: simple.Node(5)})

	net, err := space.NewNetwork(g, 0, 1)
	require.NoError(t, err)

	var ids []space.NodeID
	for c := range net.AllCells().All() {
		ids = append(ids, c.Coordinate())
	}
	assert.Equal(t, []space.NodeID{2, 5, 7}, ids)
}

func TestNetworkCapacity(t *testing.T) {
	net, err := space.NewNetwork(pathGraph(), 1, 1)
	require.NoError(t, err)

	cell, err := net.CellForNode(1)
	require.NoError(t, err)

	a1 := &networkAgent{}
	a1.Anchor(net.Space, a1)
	a2 := &networkAgent{}
	a2.Anchor(net.Space, a2)

	require.NoError(t, cell.AddAgent(a1))
	assert.ErrorIs(t, cell.AddAgent(a2), space.ErrCapacity)
}

func TestNetworkPerNodeCapacities(t *testing.T) {
	net, err := space.NewNetworkWithCapacities(pathGraph(), 1, map[int64]int{1: 2}, 1)
	require.NoError(t, err)

	a, _ := net.CellForNode(0)
	b, _ := net.CellForNode(1)
	assert.Equal(t, 1, a.Capacity())
	assert.Equal(t, 2, b.Capacity())

	a1 := &networkAgent{}
	a1.Anchor(net.Space, a1)
	a2 := &networkAgent{}
	a2.Anchor(net.Space, a2)
	require.NoError(t, b.AddAgent(a1))
	require.NoError(t, b.AddAgent(a2))
	assert.True(t, b.IsFull())
}

func TestNetworkUnknownNode(t *testing.T) {
	net, err := space.NewNetwork(pathGraph(), 0, 1)
	require.NoError(t, err)
	_, err = net.CellForNode(42)
	assert.ErrorIs(t, err, space.ErrNoSuchCell)
}

type networkAgent struct {
	space.CellAgent[space.NodeID]
}
