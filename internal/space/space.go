// Package space provides the discrete spatial substrate for agent-based
// models: capacity-bounded cells, lazy queryable cell collections, and a
// family of topologies (orthogonal and hex grids, graph-backed networks,
// Voronoi meshes) behind one generic Space abstraction.
//
// Every nondeterministic choice — sampling, tie-breaking, agent identity —
// routes through the space's single seeded generator, so two runs with the
// same seed produce identical trajectories. Spaces are single-threaded by
// contract: all mutation happens synchronously inside model step code.
package space

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Agent is anything that can occupy a cell. Model agents embed CellAgent,
// which supplies the identity.
type Agent interface {
	AgentID() uuid.UUID
}

// Space owns a fixed set of cells, the agent position index, and the seeded
// random generator shared by every spatial decision. Concrete topologies
// (Grid, HexGrid, Network, VoronoiMesh) embed a Space and build it in two
// deterministic passes: create every cell first, then wire connections —
// connections are frequently bidirectional, and some topologies need all
// cells in hand before adjacency can be computed.
type Space[C Coordinate] struct {
	cells    []*Cell[C]
	byCoord  map[C]*Cell[C]
	all      *Collection[C]
	rng      *rand.Rand
	seed     int64
	topology uint64
	agents   map[uuid.UUID]*Cell[C]
}

func newSpace[C Coordinate](seed int64) *Space[C] {
	return &Space[C]{
		byCoord: make(map[C]*Cell[C]),
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
		agents:  make(map[uuid.UUID]*Cell[C]),
	}
}

// addCell creates a cell during the construction pass, assigning the next
// stable index. Capacities below 1 normalize to CapacityUnbounded.
func (s *Space[C]) addCell(coord C, capacity int) *Cell[C] {
	if capacity < 1 {
		capacity = CapacityUnbounded
	}
	c := &Cell[C]{
		space:    s,
		index:    len(s.cells),
		coord:    coord,
		capacity: capacity,
		content:  make(map[uuid.UUID]Agent),
		linkSet:  make(map[int]struct{}),
		hoods:    make(map[hoodKey]hoodEntry[C]),
		props:    make(map[string]any),
	}
	s.cells = append(s.cells, c)
	s.byCoord[coord] = c
	return c
}

// finish seals construction: the all-cells collection is built once here
// and reused by every AllCells call.
func (s *Space[C]) finish() {
	s.all = newCollection(s, s.cells)
}

// Seed returns the seed the space's generator was created with.
func (s *Space[C]) Seed() int64 { return s.seed }

// Random exposes the space's seeded generator. Agents and model code must
// draw spatial randomness from here — never from a private generator — to
// keep the single deterministic draw sequence intact.
func (s *Space[C]) Random() *rand.Rand { return s.rng }

// NumCells returns the number of cells in the space.
func (s *Space[C]) NumCells() int { return len(s.cells) }

// AllCells returns the collection over every cell, in construction order.
func (s *Space[C]) AllCells() *Collection[C] { return s.all }

// CellByIndex returns the cell with the given stable index.
func (s *Space[C]) CellByIndex(i int) (*Cell[C], error) {
	if i < 0 || i >= len(s.cells) {
		return nil, fmt.Errorf("cell index %d: %w", i, ErrNoSuchCell)
	}
	return s.cells[i], nil
}

// CellAt resolves a coordinate to its cell, failing with ErrNoSuchCell for
// coordinates outside the space.
func (s *Space[C]) CellAt(coord C) (*Cell[C], error) {
	c, ok := s.byCoord[coord]
	if !ok {
		return nil, fmt.Errorf("cell at %s: %w", coord, ErrNoSuchCell)
	}
	return c, nil
}

// CellOf returns the cell the agent currently occupies, or nil.
func (s *Space[C]) CellOf(a Agent) *Cell[C] {
	return s.agents[a.AgentID()]
}

// NumAgents returns the number of agents currently placed in the space.
func (s *Space[C]) NumAgents() int { return len(s.agents) }

// PlaceAgent puts an unplaced agent into a cell of this space.
func (s *Space[C]) PlaceAgent(a Agent, c *Cell[C]) error {
	if c.space != s {
		return fmt.Errorf("place agent at %s: %w", c.coord, ErrCrossSpace)
	}
	return c.AddAgent(a)
}

// MoveAgent relocates an agent, keeping the agent↔cell back-references
// consistent. Destination capacity is checked before the agent leaves its
// source cell, so a failed move never strands an agent: on error the agent
// keeps its prior membership. Moving to the current cell is a no-op.
func (s *Space[C]) MoveAgent(a Agent, dst *Cell[C]) error {
	if dst.space != s {
		return fmt.Errorf("move agent to %s: %w", dst.coord, ErrCrossSpace)
	}
	cur := s.agents[a.AgentID()]
	if cur == dst {
		return nil
	}
	if dst.IsFull() {
		return fmt.Errorf("move agent to %s: %w", dst.coord, ErrCapacity)
	}
	if cur != nil {
		if err := cur.RemoveAgent(a); err != nil {
			return err
		}
	}
	return dst.AddAgent(a)
}

// RemoveAgent takes an agent out of the space entirely.
func (s *Space[C]) RemoveAgent(a Agent) error {
	cur := s.agents[a.AgentID()]
	if cur == nil {
		return fmt.Errorf("remove agent: %w", ErrAgentNotPresent)
	}
	return cur.RemoveAgent(a)
}

// TopologyVersion returns the counter bumped by every connection change.
// Neighborhood caches are stamped with it and recompute when stale; the
// built-in topologies never rewire after construction, so for them it is
// constant.
func (s *Space[C]) TopologyVersion() uint64 { return s.topology }
