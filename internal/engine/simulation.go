// Package engine provides the step-driven simulation loop over a cell
// space: a walker population, per-step movement, statistics, and an event
// log. Strictly single-threaded; every walker acts to completion before the
// next.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/cellspace/internal/space"
)

// Config holds simulation parameters.
type Config struct {
	Width       int
	Height      int
	Torus       bool
	Capacity    int // Per-cell agent capacity; 0 = unbounded.
	Walkers     int
	Seed        int64
	ReportEvery uint64 // Steps between progress reports; 0 disables.
}

// DefaultConfig returns a small, dense world for development runs.
func DefaultConfig() Config {
	return Config{
		Width:       32,
		Height:      32,
		Torus:       true,
		Capacity:    4,
		Walkers:     256,
		Seed:        42,
		ReportEvery: 100,
	}
}

// Event is a notable occurrence during a run.
type Event struct {
	Step        uint64 `json:"step"`
	Description string `json:"description"`
	Category    string `json:"category"` // "move", "blocked"
}

// Stats tracks aggregate run statistics.
type Stats struct {
	Moves         uint64 `json:"moves"`
	Blocked       uint64 `json:"blocked"`
	OccupiedCells int    `json:"occupied_cells"`
}

// Simulation owns a grid space and a walker population and steps them
// forward in discrete time. Walker order is fixed at spawn, so a run is
// fully determined by its seed.
type Simulation struct {
	Grid    *space.Grid
	Walkers []*Walker
	Events  []Event
	Step    uint64
	Stats   Stats

	reportEvery uint64
}

// NewSimulation builds the grid and scatters the walker population through
// the space's seeded generator.
func NewSimulation(cfg Config) (*Simulation, error) {
	grid, err := space.NewMooreGrid(cfg.Width, cfg.Height, cfg.Torus, cfg.Capacity, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}

	sim := &Simulation{
		Grid:        grid,
		reportEvery: cfg.ReportEvery,
	}

	for i := 0; i < cfg.Walkers; i++ {
		w := NewWalker(grid)
		open := grid.AllCells().Select(func(c *space.Cell[space.GridCoord]) bool {
			return !c.IsFull()
		}, 0)
		picked, err := open.SelectRandom(1, false)
		if err != nil {
			return nil, fmt.Errorf("scatter walker %d: %w", i, err)
		}
		if err := w.MoveTo(picked[0]); err != nil {
			return nil, fmt.Errorf("scatter walker %d: %w", i, err)
		}
		sim.Walkers = append(sim.Walkers, w)
	}

	return sim, nil
}

// StepOnce advances the simulation by one step: every walker acts in spawn
// order.
func (s *Simulation) StepOnce() error {
	s.Step++
	for _, w := range s.Walkers {
		moved, err := w.Act()
		if err != nil {
			if errors.Is(err, space.ErrCapacity) {
				// A refused move is a normal outcome for the model: the
				// walker stays put this step.
				s.Stats.Blocked++
				s.recordEvent(Event{
					Step:        s.Step,
					Description: fmt.Sprintf("walker blocked at %s", w.Cell().Coordinate()),
					Category:    "blocked",
				})
				continue
			}
			return fmt.Errorf("step %d: %w", s.Step, err)
		}
		if moved {
			s.Stats.Moves++
		}
	}
	s.Stats.OccupiedCells = s.countOccupied()
	return nil
}

// Run advances the simulation the given number of steps, reporting
// progress at the configured interval.
func (s *Simulation) Run(steps uint64) error {
	slog.Info("simulation started",
		"cells", s.Grid.NumCells(),
		"walkers", len(s.Walkers),
		"seed", s.Grid.Seed(),
	)

	for i := uint64(0); i < steps; i++ {
		if err := s.StepOnce(); err != nil {
			return err
		}
		if s.reportEvery > 0 && s.Step%s.reportEvery == 0 {
			slog.Info("step report",
				"step", s.Step,
				"moves", s.Stats.Moves,
				"blocked", s.Stats.Blocked,
				"occupied_cells", s.Stats.OccupiedCells,
			)
		}
	}

	slog.Info("simulation finished", "step", s.Step)
	return nil
}

func (s *Simulation) countOccupied() int {
	n := 0
	for c := range s.Grid.AllCells().All() {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

func (s *Simulation) recordEvent(e Event) {
	s.Events = append(s.Events, e)
	// Trim old events to prevent unbounded growth.
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}
