package space

import (
	"fmt"
	"strconv"
)

// Coordinate is the topology-specific position descriptor a space binds at
// compile time: integer pairs for grids, node identifiers for networks, site
// indices for Voronoi meshes. Coordinates address cells for construction and
// human-readable reporting; cell identity is always the integer index.
type Coordinate interface {
	comparable
	fmt.Stringer
}

// GridCoord is a position on an orthogonal or hex grid. For hex grids the
// pair is an offset coordinate (column, row) with odd-r parity.
type GridCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c GridCoord) String() string {
	return "(" + strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + ")"
}

// NodeID is the graph node identifier addressing a cell in a network space.
type NodeID int64

func (n NodeID) String() string {
	return "node " + strconv.FormatInt(int64(n), 10)
}

// SiteIndex addresses a Voronoi region by the index of its seed point.
type SiteIndex int

func (s SiteIndex) String() string {
	return "site " + strconv.Itoa(int(s))
}
