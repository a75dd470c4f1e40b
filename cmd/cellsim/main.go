// Command cellsim runs a walker simulation over a toroidal grid space and
// snapshots the result to SQLite.
package main

import (
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/cellspace/internal/engine"
	"github.com/talgya/cellspace/internal/persistence"
	"github.com/talgya/cellspace/internal/terrain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	seed := int64(42)
	steps := uint64(1000)
	dbPath := "data/cellsim.db"

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Space and population ──────────────────────────────────────────
	cfg := engine.DefaultConfig()
	cfg.Seed = seed

	sim, err := engine.NewSimulation(cfg)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	slog.Info("space constructed",
		"cells", humanize.Comma(int64(sim.Grid.NumCells())),
		"walkers", humanize.Comma(int64(len(sim.Walkers))),
		"capacity", cfg.Capacity,
		"torus", cfg.Torus,
	)

	// ── Terrain layers (deterministic from seed) ──────────────────────
	tcfg := terrain.DefaultConfig()
	tcfg.Seed = seed
	terrain.Generate(sim.Grid, tcfg)
	for biome, count := range terrain.BiomeCounts(sim.Grid) {
		slog.Info("biome", "type", biome, "count", count)
	}

	// ── Run ───────────────────────────────────────────────────────────
	if err := sim.Run(steps); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("run complete",
		"steps", humanize.Comma(int64(sim.Step)),
		"moves", humanize.Comma(int64(sim.Stats.Moves)),
		"blocked", humanize.Comma(int64(sim.Stats.Blocked)),
		"occupied_cells", sim.Stats.OccupiedCells,
	)

	// ── Snapshot ──────────────────────────────────────────────────────
	if err := db.SaveSnapshot(sim); err != nil {
		slog.Error("failed to save snapshot", "error", err)
		os.Exit(1)
	}
}
