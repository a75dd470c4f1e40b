package space

import "fmt"

// mooreOffsets are the 8-connected neighbor directions.
var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// vonNeumannOffsets are the 4-connected neighbor directions.
var vonNeumannOffsets = [4][2]int{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
}

// Grid is an orthogonal grid space. Cells are created in row-major order,
// so index = y*width + x and coordinate↔index mapping is O(1) both ways.
// On a torus, coordinate arithmetic wraps modulo the grid extent and every
// cell has the full neighbor count; bounded grids clip at the edges.
type Grid struct {
	*Space[GridCoord]
	width  int
	height int
	torus  bool
}

// NewMooreGrid builds an 8-connected orthogonal grid.
func NewMooreGrid(width, height int, torus bool, capacity int, seed int64) (*Grid, error) {
	return newOrthogonalGrid(width, height, torus, capacity, seed, mooreOffsets[:])
}

// NewVonNeumannGrid builds a 4-connected orthogonal grid.
func NewVonNeumannGrid(width, height int, torus bool, capacity int, seed int64) (*Grid, error) {
	return newOrthogonalGrid(width, height, torus, capacity, seed, vonNeumannOffsets[:])
}

func newOrthogonalGrid(width, height int, torus bool, capacity int, seed int64, offsets [][2]int) (*Grid, error) {
	g, err := newGridBase(width, height, torus, capacity, seed)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.wire(x, y, offsets)
		}
	}
	g.finish()
	return g, nil
}

// newGridBase runs the first construction pass: every cell exists before
// any connection is wired.
func newGridBase(width, height int, torus bool, capacity int, seed int64) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid %dx%d: dimensions must be positive", width, height)
	}
	g := &Grid{
		Space:  newSpace[GridCoord](seed),
		width:  width,
		height: height,
		torus:  torus,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.addCell(GridCoord{X: x, Y: y}, capacity)
		}
	}
	return g, nil
}

// wire connects the cell at (x, y) to its in-bounds neighbors. Offset sets
// are symmetric, so one-directional linking per cell yields a symmetric
// relation.
func (g *Grid) wire(x, y int, offsets [][2]int) {
	cell := g.cells[y*g.width+x]
	for _, off := range offsets {
		nx, ny := x+off[0], y+off[1]
		if g.torus {
			nx = mod(nx, g.width)
			ny = mod(ny, g.height)
		} else if nx < 0 || nx >= g.width || ny < 0 || ny >= g.height {
			continue
		}
		cell.Connect(g.cells[ny*g.width+nx], false)
	}
}

// Width returns the grid extent along x.
func (g *Grid) Width() int { return g.width }

// Height returns the grid extent along y.
func (g *Grid) Height() int { return g.height }

// Torus reports whether coordinates wrap at the edges.
func (g *Grid) Torus() bool { return g.torus }

// CellAtXY resolves integer coordinates to a cell, wrapping on a torus.
func (g *Grid) CellAtXY(x, y int) (*Cell[GridCoord], error) {
	if g.torus {
		x = mod(x, g.width)
		y = mod(y, g.height)
	}
	return g.CellAt(GridCoord{X: x, Y: y})
}

// mod wraps v into [0, n) for negative v as well.
func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
