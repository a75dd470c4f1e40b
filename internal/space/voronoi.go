package space

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// Point is a seed point in the plane for Voronoi tessellation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VoronoiMesh is a space whose cells are the Voronoi regions around a set
// of seed points; two cells are radius-1 neighbors when their regions share
// a tessellation edge. Adjacency comes from the Delaunay dual: two sites
// share a Voronoi edge exactly when a Delaunay edge connects them.
type VoronoiMesh struct {
	*Space[SiteIndex]
	sites []Point
}

// NewVoronoiMesh tessellates the given seed points. Degenerate input —
// fewer than three points, or all points collinear — fails with
// ErrDegenerateMesh; construction never exposes a partial mesh. The
// geometry runs once, here; everything after is plain adjacency.
func NewVoronoiMesh(points []Point, capacity int, seed int64) (*VoronoiMesh, error) {
	if len(points) < 3 || collinear(points) {
		return nil, fmt.Errorf("voronoi mesh over %d points: %w", len(points), ErrDegenerateMesh)
	}

	dpts := make([]delaunay.Point, len(points))
	for i, p := range points {
		dpts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(dpts)
	if err != nil {
		return nil, fmt.Errorf("voronoi mesh: %v: %w", err, ErrDegenerateMesh)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("voronoi mesh: empty triangulation: %w", ErrDegenerateMesh)
	}

	m := &VoronoiMesh{
		Space: newSpace[SiteIndex](seed),
		sites: append([]Point(nil), points...),
	}
	for i := range points {
		m.addCell(SiteIndex(i), capacity)
	}

	// Each Delaunay triangle contributes its three edges as neighbor
	// relations; duplicates across triangles are no-ops.
	for t := 0; t < len(tri.Triangles); t += 3 {
		a := m.cells[tri.Triangles[t]]
		b := m.cells[tri.Triangles[t+1]]
		c := m.cells[tri.Triangles[t+2]]
		a.Connect(b, true)
		b.Connect(c, true)
		c.Connect(a, true)
	}
	m.finish()
	return m, nil
}

// Site returns the seed point for the given site index.
func (m *VoronoiMesh) Site(i SiteIndex) Point { return m.sites[i] }

// Sites returns all seed points in site-index order.
func (m *VoronoiMesh) Sites() []Point {
	return append([]Point(nil), m.sites...)
}

// collinear reports whether every point lies on one line (within floating
// point tolerance relative to the point spread).
func collinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}
	p0 := points[0]
	var p1 Point
	found := false
	maxDist := 0.0
	for _, p := range points[1:] {
		d := math.Hypot(p.X-p0.X, p.Y-p0.Y)
		if d > maxDist {
			maxDist = d
			p1 = p
			found = true
		}
	}
	if !found || maxDist == 0 {
		return true // all points coincide
	}
	for _, p := range points[1:] {
		cross := (p1.X-p0.X)*(p.Y-p0.Y) - (p1.Y-p0.Y)*(p.X-p0.X)
		if math.Abs(cross) > 1e-12*maxDist*maxDist {
			return false
		}
	}
	return true
}
