package space

import "fmt"

// Hex neighbor directions in odd-r offset coordinates (pointy-top rows,
// odd rows shifted right). Six neighbors regardless of parity; the offset
// pattern depends on whether the row is even or odd.
var hexOffsets = [2][6][2]int{
	// Even rows.
	{{1, 0}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}},
	// Odd rows.
	{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {0, 1}, {1, 1}},
}

// HexGrid is a hexagonal grid on offset (column, row) coordinates. On a
// torus every cell has exactly six neighbors; bounded hex grids clip at
// the edges like orthogonal ones.
type HexGrid struct {
	*Grid
}

// NewHexGrid builds a hex grid of the given extent. A toroidal hex grid
// needs an even number of rows: wrapping an odd row count would glue rows
// of the same parity together and break the six-neighbor relation.
func NewHexGrid(width, height int, torus bool, capacity int, seed int64) (*HexGrid, error) {
	if torus && height%2 != 0 {
		return nil, fmt.Errorf("hex grid %dx%d: toroidal hex grids need an even row count", width, height)
	}
	g, err := newGridBase(width, height, torus, capacity, seed)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		offsets := hexOffsets[y&1]
		for x := 0; x < width; x++ {
			g.wire(x, y, offsets[:])
		}
	}
	g.finish()
	return &HexGrid{Grid: g}, nil
}
