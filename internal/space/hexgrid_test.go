package space_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/cellspace/internal/space"
)

func TestHexToroidalSixNeighbors(t *testing.T) {
	g, err := space.NewHexGrid(6, 6, true, 0, 1)
	require.NoError(t, err)

	for cell := range g.AllCells().All() {
		hood, err := cell.Neighborhood(1, false)
		require.NoError(t, err)
		assert.Equal(t, 6, hood.Len(), "hex torus cell %s", cell.Coordinate())
	}
}

func TestHexBoundedNeighbors(t *testing.T) {
	g, err := space.NewHexGrid(5, 5, false, 0, 1)
	require.NoError(t, err)

	// Interior cells keep all six neighbors.
	c, err := g.CellAtXY(2, 2)
	require.NoError(t, err)
	hood, err := c.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 6, hood.Len())

	// The even-row origin corner loses its west, north, and south-west
	// directions.
	c, err = g.CellAtXY(0, 0)
	require.NoError(t, err)
	hood, err = c.Neighborhood(1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, hood.Len())
}

// TestHexParityAdjacency pins the odd-r offset rules: the cells adjacent to
// an even-row and an odd-row position differ in the expected way.
func TestHexParityAdjacency(t *testing.T) {
	g, err := space.NewHexGrid(5, 5, false, 0, 1)
	require.NoError(t, err)

	coords := func(x, y int) map[space.GridCoord]bool {
		c, err := g.CellAtXY(x, y)
		require.NoError(t, err)
		hood, err := c.Neighborhood(1, false)
		require.NoError(t, err)
		out := make(map[space.GridCoord]bool)
		for n := range hood.All() {
			out[n.Coordinate()] = true
		}
		return out
	}

	even := coords(2, 2)
	assert.Equal(t, map[space.GridCoord]bool{
		{X: 3, Y: 2}: true, {X: 2, Y: 1}: true, {X: 1, Y: 1}: true,
		{X: 1, Y: 2}: true, {X: 1, Y: 3}: true, {X: 2, Y: 3}: true,
	}, even)

	odd := coords(2, 1)
	assert.Equal(t, map[space.GridCoord]bool{
		{X: 3, Y: 1}: true, {X: 3, Y: 0}: true, {X: 2, Y: 0}: true,
		{X: 1, Y: 1}: true, {X: 2, Y: 2}: true, {X: 3, Y: 2}: true,
	}, odd)
}

// TestHexAdjacencySymmetric walks every connection and requires its
// reverse to exist; parity bugs show up as one-way links.
func TestHexAdjacencySymmetric(t *testing.T) {
	for _, torus := range []bool{false, true} {
		g, err := space.NewHexGrid(6, 6, torus, 0, 1)
		require.NoError(t, err)
		for cell := range g.AllCells().All() {
			for _, n := range cell.Connections() {
				back := false
				for _, m := range n.Connections() {
					if m == cell {
						back = true
						break
					}
				}
				assert.True(t, back, "torus=%v: %s -> %s has no reverse link",
					torus, cell.Coordinate(), n.Coordinate())
			}
		}
	}
}

func TestHexTorusOddRowsRejected(t *testing.T) {
	_, err := space.NewHexGrid(5, 5, true, 0, 1)
	assert.Error(t, err)
}
