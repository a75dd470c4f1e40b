package space

import "errors"

// Error taxonomy for the spatial substrate. Every failure is a precondition
// violation by the caller; nothing here retries or recovers internally.
var (
	// ErrCapacity is returned when adding an agent would exceed a cell's
	// capacity. The cell's content is left unchanged.
	ErrCapacity = errors.New("space: cell at capacity")

	// ErrAgentNotPresent is returned when removing an agent that does not
	// occupy the cell (or space) in question.
	ErrAgentNotPresent = errors.New("space: agent not present")

	// ErrAgentAlreadyPlaced is returned when placing an agent that already
	// occupies a cell. Use MoveAgent to relocate a placed agent.
	ErrAgentAlreadyPlaced = errors.New("space: agent already placed")

	// ErrNoSuchCell is returned when resolving a coordinate with no
	// corresponding cell.
	ErrNoSuchCell = errors.New("space: no cell at coordinate")

	// ErrCrossSpace is returned when an operation mixes cells or
	// collections belonging to different spaces.
	ErrCrossSpace = errors.New("space: cells belong to different spaces")

	// ErrSampleSize is returned when a selection asks for more cells than
	// the collection holds (sampling without replacement from too small a
	// collection, or any selection from an empty one).
	ErrSampleSize = errors.New("space: sample larger than collection")

	// ErrRadius is returned for neighborhood queries with radius < 1.
	ErrRadius = errors.New("space: neighborhood radius must be >= 1")

	// ErrDegenerateMesh is returned when Voronoi construction receives
	// fewer than three non-collinear points. No partial mesh is exposed.
	ErrDegenerateMesh = errors.New("space: degenerate point set, no tessellation exists")
)
