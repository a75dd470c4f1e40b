package space

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// CapacityUnbounded marks a cell that accepts any number of agents.
// Capacities below 1 normalize to unbounded at construction.
const CapacityUnbounded = 0

// Cell is one addressable location in a discrete space: a stable index, a
// topology-specific coordinate, a capacity-bounded set of occupying agents,
// radius-1 connections to other cells, and a free-form property map.
//
// Cells are created eagerly by their owning space and never destroyed
// individually; content and properties mutate for the life of the space.
type Cell[C Coordinate] struct {
	space    *Space[C]
	index    int
	coord    C
	capacity int
	content  map[uuid.UUID]Agent
	links    []*Cell[C]
	linkSet  map[int]struct{}
	hoods    map[hoodKey]hoodEntry[C]
	props    map[string]any
}

type hoodKey struct {
	radius        int
	includeCenter bool
}

// hoodEntry stamps a cached neighborhood with the topology version it was
// computed under, so spaces that rewire after construction stay correct.
type hoodEntry[C Coordinate] struct {
	version uint64
	coll    *Collection[C]
}

// Index returns the cell's stable integer identity, assigned in
// deterministic order at space construction.
func (c *Cell[C]) Index() int { return c.index }

// Coordinate returns the topology-specific position of the cell.
func (c *Cell[C]) Coordinate() C { return c.coord }

// Capacity returns the maximum number of agents the cell may hold, or
// CapacityUnbounded.
func (c *Cell[C]) Capacity() int { return c.capacity }

// Space returns the space that owns this cell.
func (c *Cell[C]) Space() *Space[C] { return c.space }

// Count returns the number of agents currently occupying the cell.
func (c *Cell[C]) Count() int { return len(c.content) }

// IsEmpty reports whether no agent occupies the cell.
func (c *Cell[C]) IsEmpty() bool { return len(c.content) == 0 }

// IsFull reports whether the cell is at capacity. Unbounded cells are
// never full.
func (c *Cell[C]) IsFull() bool {
	return c.capacity != CapacityUnbounded && len(c.content) >= c.capacity
}

// Content returns the occupying agents, ordered by agent ID so that the
// result is stable for a given occupancy.
func (c *Cell[C]) Content() []Agent {
	ids := make([]string, 0, len(c.content))
	byID := make(map[string]Agent, len(c.content))
	for id, a := range c.content {
		s := id.String()
		ids = append(ids, s)
		byID[s] = a
	}
	sort.Strings(ids)
	out := make([]Agent, len(ids))
	for i, s := range ids {
		out[i] = byID[s]
	}
	return out
}

// Has reports whether the agent occupies this cell.
func (c *Cell[C]) Has(a Agent) bool {
	_, ok := c.content[a.AgentID()]
	return ok
}

// AddAgent places an agent into the cell and records the cell as the
// agent's position. Fails with ErrCapacity if the cell is full and with
// ErrAgentAlreadyPlaced if the agent already occupies a cell anywhere in
// the space; content is unchanged on failure.
func (c *Cell[C]) AddAgent(a Agent) error {
	if c.IsFull() {
		return fmt.Errorf("add agent to %s: %w", c.coord, ErrCapacity)
	}
	if _, placed := c.space.agents[a.AgentID()]; placed {
		return fmt.Errorf("add agent to %s: %w", c.coord, ErrAgentAlreadyPlaced)
	}
	c.content[a.AgentID()] = a
	c.space.agents[a.AgentID()] = c
	return nil
}

// RemoveAgent removes an agent from the cell and clears the agent's
// position. Fails with ErrAgentNotPresent if the agent does not occupy
// this cell.
func (c *Cell[C]) RemoveAgent(a Agent) error {
	if _, ok := c.content[a.AgentID()]; !ok {
		return fmt.Errorf("remove agent from %s: %w", c.coord, ErrAgentNotPresent)
	}
	delete(c.content, a.AgentID())
	delete(c.space.agents, a.AgentID())
	return nil
}

// Connect registers other as an immediate (radius-1) neighbor. Connecting
// the same pair twice is a no-op. Called by spaces during topology
// construction; spaces that rewire later get correct neighborhoods because
// every connection bumps the topology version.
func (c *Cell[C]) Connect(other *Cell[C], bidirectional bool) {
	changed := c.link(other)
	if bidirectional {
		if other.link(c) {
			changed = true
		}
	}
	if changed {
		c.space.topology++
	}
}

func (c *Cell[C]) link(other *Cell[C]) bool {
	if other == c {
		return false
	}
	if _, ok := c.linkSet[other.index]; ok {
		return false
	}
	c.linkSet[other.index] = struct{}{}
	c.links = append(c.links, other)
	return true
}

// Connections returns the radius-1 neighbors in connection order.
func (c *Cell[C]) Connections() []*Cell[C] {
	out := make([]*Cell[C], len(c.links))
	copy(out, c.links)
	return out
}

// Neighborhood returns a collection of all cells reachable within radius
// hops of this cell, optionally including the cell itself. Results are
// cached per (radius, includeCenter) and recomputed if the space topology
// has changed since they were built.
func (c *Cell[C]) Neighborhood(radius int, includeCenter bool) (*Collection[C], error) {
	if radius < 1 {
		return nil, fmt.Errorf("neighborhood of %s (radius %d): %w", c.coord, radius, ErrRadius)
	}
	key := hoodKey{radius: radius, includeCenter: includeCenter}
	if e, ok := c.hoods[key]; ok && e.version == c.space.topology {
		return e.coll, nil
	}

	// Breadth-first expansion over the radius-1 relation. Frontier order
	// follows connection order, keeping the result deterministic.
	visited := map[int]struct{}{c.index: {}}
	frontier := []*Cell[C]{c}
	var cells []*Cell[C]
	if includeCenter {
		cells = append(cells, c)
	}
	for hop := 0; hop < radius && len(frontier) > 0; hop++ {
		var next []*Cell[C]
		for _, cur := range frontier {
			for _, n := range cur.links {
				if _, seen := visited[n.index]; seen {
					continue
				}
				visited[n.index] = struct{}{}
				cells = append(cells, n)
				next = append(next, n)
			}
		}
		frontier = next
	}

	coll := newCollection(c.space, cells)
	c.hoods[key] = hoodEntry[C]{version: c.space.topology, coll: coll}
	return coll, nil
}

// Property returns the named cell property, and whether it is set.
func (c *Cell[C]) Property(name string) (any, bool) {
	v, ok := c.props[name]
	return v, ok
}

// SetProperty attaches model state (terrain, resource levels) to the cell.
// The space does not validate property values.
func (c *Cell[C]) SetProperty(name string, value any) {
	c.props[name] = value
}

// Properties returns the cell's property map. The map is live; models
// mutate it directly.
func (c *Cell[C]) Properties() map[string]any { return c.props }

func (c *Cell[C]) String() string {
	return fmt.Sprintf("Cell(%d %s %d/%d)", c.index, c.coord, len(c.content), c.capacity)
}
