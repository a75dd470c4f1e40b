package space_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/cellspace/internal/space"
)

type testAgent struct {
	space.CellAgent[space.GridCoord]
}

func newTestAgent(s *space.Space[space.GridCoord]) *testAgent {
	a := &testAgent{}
	a.Anchor(s, a)
	return a
}

func mustGrid(t *testing.T, w, h int, torus bool, capacity int, seed int64) *space.Grid {
	t.Helper()
	g, err := space.NewMooreGrid(w, h, torus, capacity, seed)
	require.NoError(t, err)
	return g
}

func TestCapacityInvariant(t *testing.T) {
	g := mustGrid(t, 3, 3, false, 2, 1)
	cell, err := g.CellAtXY(1, 1)
	require.NoError(t, err)

	a1 := newTestAgent(g.Space)
	a2 := newTestAgent(g.Space)
	a3 := newTestAgent(g.Space)

	require.NoError(t, cell.AddAgent(a1))
	require.NoError(t, cell.AddAgent(a2))
	assert.True(t, cell.IsFull())

	err = cell.AddAgent(a3)
	assert.ErrorIs(t, err, space.ErrCapacity)
	assert.Equal(t, 2, cell.Count(), "failed add must leave content unchanged")
	assert.False(t, cell.Has(a3))
}

func TestUnboundedCapacity(t *testing.T) {
	g := mustGrid(t, 2, 2, false, space.CapacityUnbounded, 1)
	cell, err := g.CellAtXY(0, 0)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, cell.AddAgent(newTestAgent(g.Space)))
	}
	assert.False(t, cell.IsFull())
	assert.Equal(t, 50, cell.Count())
}

func TestAddRemoveBackReferences(t *testing.T) {
	g := mustGrid(t, 3, 3, false, 1, 1)
	c1, _ := g.CellAtXY(0, 0)
	c2, _ := g.CellAtXY(2, 2)

	a := newTestAgent(g.Space)
	require.NoError(t, c1.AddAgent(a))
	assert.Same(t, c1, a.Cell())
	assert.True(t, c1.Has(a))

	// Placing a placed agent elsewhere is a caller bug.
	assert.ErrorIs(t, c2.AddAgent(a), space.ErrAgentAlreadyPlaced)

	require.NoError(t, c1.RemoveAgent(a))
	assert.Nil(t, a.Cell())
	assert.False(t, c1.Has(a))

	assert.ErrorIs(t, c1.RemoveAgent(a), space.ErrAgentNotPresent)
}

func TestIsEmptyIsFull(t *testing.T) {
	g := mustGrid(t, 2, 2, false, 1, 1)
	cell, _ := g.CellAtXY(0, 1)
	assert.True(t, cell.IsEmpty())
	assert.False(t, cell.IsFull())

	require.NoError(t, cell.AddAgent(newTestAgent(g.Space)))
	assert.False(t, cell.IsEmpty())
	assert.True(t, cell.IsFull())
}

func TestProperties(t *testing.T) {
	g := mustGrid(t, 2, 2, false, 0, 1)
	cell, _ := g.CellAtXY(1, 0)

	_, ok := cell.Property("elevation")
	assert.False(t, ok)

	cell.SetProperty("elevation", 0.42)
	v, ok := cell.Property("elevation")
	require.True(t, ok)
	assert.Equal(t, 0.42, v)

	cell.Properties()["biome"] = "forest"
	v, ok = cell.Property("biome")
	require.True(t, ok)
	assert.Equal(t, "forest", v)
}

func TestConnectIdempotent(t *testing.T) {
	g := mustGrid(t, 3, 3, false, 0, 1)
	c1, _ := g.CellAtXY(0, 0)
	c2, _ := g.CellAtXY(1, 0)

	before := len(c1.Connections())
	ver := g.TopologyVersion()
	c1.Connect(c2, true) // already connected during construction
	assert.Equal(t, before, len(c1.Connections()))
	assert.Equal(t, ver, g.TopologyVersion())
}

func TestNeighborhoodCacheInvalidation(t *testing.T) {
	// Two far-apart cells on a bounded grid, then a manual long-range
	// connection: the cached radius-1 neighborhood must pick it up.
	g := mustGrid(t, 5, 5, false, 0, 1)
	c, _ := g.CellAtXY(0, 0)
	far, _ := g.CellAtXY(4, 4)

	hood, err := c.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 3, hood.Len())
	assert.False(t, hood.Contains(far))

	c.Connect(far, true)

	hood, err = c.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 4, hood.Len())
	assert.True(t, hood.Contains(far))
}

func TestNeighborhoodRadiusValidation(t *testing.T) {
	g := mustGrid(t, 3, 3, false, 0, 1)
	c, _ := g.CellAtXY(1, 1)
	_, err := c.Neighborhood(0, false)
	assert.ErrorIs(t, err, space.ErrRadius)
}

func TestContentStableOrder(t *testing.T) {
	g := mustGrid(t, 2, 2, false, 0, 7)
	cell, _ := g.CellAtXY(0, 0)
	for i := 0; i < 5; i++ {
		require.NoError(t, cell.AddAgent(newTestAgent(g.Space)))
	}
	first := cell.Content()
	second := cell.Content()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].AgentID(), second[i].AgentID())
	}
}
