package space

import (
	"github.com/google/uuid"
)

// CellAgent anchors a model agent to a cell-based space. Embed it in the
// model's agent struct and call Anchor once after construction:
//
//	type Walker struct {
//		space.CellAgent[space.GridCoord]
//		Steps int
//	}
//
//	w := &Walker{}
//	w.Anchor(grid.Space, w)
//
// The agent's identity is drawn from the space's seeded generator, so agent
// creation participates in the deterministic draw sequence like every other
// spatial decision.
type CellAgent[C Coordinate] struct {
	id    uuid.UUID
	space *Space[C]
	self  Agent
}

// Anchor binds the agent to a space and assigns its identity. self is the
// value stored in cell content sets — pass the outer struct so model code
// can recover it from Cell.Content; nil stores the CellAgent itself.
func (a *CellAgent[C]) Anchor(s *Space[C], self Agent) {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		// rand.Rand.Read never fails.
		panic(err)
	}
	a.id = id
	a.space = s
	a.self = self
}

func (a *CellAgent[C]) occupant() Agent {
	if a.self != nil {
		return a.self
	}
	return a
}

// AgentID returns the agent's unique identity.
func (a *CellAgent[C]) AgentID() uuid.UUID { return a.id }

// Cell returns the agent's current cell, or nil when unplaced.
func (a *CellAgent[C]) Cell() *Cell[C] {
	return a.space.CellOf(a)
}

// MoveTo relocates the agent, or places it when it has no cell yet. A
// failed move (destination at capacity) leaves the agent in its prior
// cell.
func (a *CellAgent[C]) MoveTo(dst *Cell[C]) error {
	return a.space.MoveAgent(a.occupant(), dst)
}

// Leave removes the agent from its current cell.
func (a *CellAgent[C]) Leave() error {
	return a.space.RemoveAgent(a.occupant())
}
