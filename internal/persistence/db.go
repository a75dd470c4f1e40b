// Package persistence provides SQLite-based snapshot storage for simulation
// runs: cell occupancy and properties, walker positions, and run events.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/cellspace/internal/engine"
	"github.com/talgya/cellspace/internal/space"
)

// DB wraps a SQLite connection for snapshot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cells (
		idx INTEGER PRIMARY KEY,
		coord TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		occupancy INTEGER NOT NULL,
		properties_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS walkers (
		id TEXT PRIMARY KEY,
		cell_idx INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		blocked INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		step INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_step ON events(step);
	CREATE INDEX IF NOT EXISTS idx_walkers_cell ON walkers(cell_idx);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCells writes the full cell state of a grid (full replace).
func (db *DB) SaveCells(g *space.Grid) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cells"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO cells
		(idx, coord, capacity, occupancy, properties_json)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for cell := range g.AllCells().All() {
		propsJSON, err := json.Marshal(cell.Properties())
		if err != nil {
			return fmt.Errorf("marshal properties of cell %d: %w", cell.Index(), err)
		}
		_, err = stmt.Exec(
			cell.Index(), cell.Coordinate().String(),
			cell.Capacity(), cell.Count(), string(propsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert cell %d: %w", cell.Index(), err)
		}
	}

	return tx.Commit()
}

// SaveWalkers writes all walker positions (full replace).
func (db *DB) SaveWalkers(walkers []*engine.Walker) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM walkers"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO walkers
		(id, cell_idx, steps, blocked)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range walkers {
		cellIdx := -1
		if c := w.Cell(); c != nil {
			cellIdx = c.Index()
		}
		_, err := stmt.Exec(w.AgentID().String(), cellIdx, w.Steps, w.Blocked)
		if err != nil {
			return fmt.Errorf("insert walker %s: %w", w.AgentID(), err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (step, description, category) VALUES (?, ?, ?)",
			e.Step, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// SaveSnapshot performs a full save of a simulation's state.
func (db *DB) SaveSnapshot(sim *engine.Simulation) error {
	slog.Info("saving snapshot",
		"step", sim.Step,
		"cells", sim.Grid.NumCells(),
		"walkers", len(sim.Walkers),
	)

	if err := db.SaveCells(sim.Grid); err != nil {
		return fmt.Errorf("save cells: %w", err)
	}
	if err := db.SaveWalkers(sim.Walkers); err != nil {
		return fmt.Errorf("save walkers: %w", err)
	}
	if err := db.SaveEvents(sim.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_step", fmt.Sprintf("%d", sim.Step)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("seed", fmt.Sprintf("%d", sim.Grid.Seed())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("snapshot saved")
	return nil
}

// CellRow is a persisted cell record.
type CellRow struct {
	Idx            int    `db:"idx"`
	Coord          string `db:"coord"`
	Capacity       int    `db:"capacity"`
	Occupancy      int    `db:"occupancy"`
	PropertiesJSON string `db:"properties_json"`
}

// LoadCells returns all persisted cell records in index order.
func (db *DB) LoadCells() ([]CellRow, error) {
	var rows []CellRow
	err := db.conn.Select(&rows,
		"SELECT idx, coord, capacity, occupancy, properties_json FROM cells ORDER BY idx")
	return rows, err
}

// WalkerRow is a persisted walker record.
type WalkerRow struct {
	ID      string `db:"id"`
	CellIdx int    `db:"cell_idx"`
	Steps   uint64 `db:"steps"`
	Blocked uint64 `db:"blocked"`
}

// LoadWalkers returns all persisted walker records in id order.
func (db *DB) LoadWalkers() ([]WalkerRow, error) {
	var rows []WalkerRow
	err := db.conn.Select(&rows,
		"SELECT id, cell_idx, steps, blocked FROM walkers ORDER BY id")
	return rows, err
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT step, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
