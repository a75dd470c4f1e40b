package engine

import (
	"github.com/talgya/cellspace/internal/space"
)

// Walker is a minimal mobile agent: each step it tries to move into an open
// neighboring cell, falling back to the least crowded neighbor.
type Walker struct {
	space.CellAgent[space.GridCoord]

	Steps   uint64 // Completed moves.
	Blocked uint64 // Moves refused for capacity.
}

// NewWalker creates a walker anchored to the grid. The walker is unplaced
// until its first move.
func NewWalker(g *space.Grid) *Walker {
	w := &Walker{}
	w.Anchor(g.Space, w)
	return w
}

// Act performs one step of movement. Destination choice: a uniformly random
// open radius-1 neighbor when one exists, otherwise the least crowded
// neighbor (ties broken randomly). Returns whether the walker moved.
func (w *Walker) Act() (bool, error) {
	hood, err := w.Cell().Neighborhood(1, false)
	if err != nil {
		return false, err
	}
	if hood.Len() == 0 {
		return false, nil
	}

	open := hood.Select(func(c *space.Cell[space.GridCoord]) bool {
		return !c.IsFull()
	}, 0)

	var dst *space.Cell[space.GridCoord]
	if open.Len() > 0 {
		picked, err := open.SelectRandom(1, false)
		if err != nil {
			return false, err
		}
		dst = picked[0]
	} else {
		dst, err = hood.BestMatch(func(c *space.Cell[space.GridCoord]) float64 {
			return float64(c.Count())
		}, false)
		if err != nil {
			return false, err
		}
	}

	if err := w.MoveTo(dst); err != nil {
		w.Blocked++
		return false, err
	}
	w.Steps++
	return true, nil
}
