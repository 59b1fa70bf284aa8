// Package save provides SQLite-based persistence for runs. Uses the
// pure-Go modernc.org/sqlite driver to avoid CGO dependencies. A save
// slot holds one snapshot: JSON blobs of map cells, entity records and
// schedule entries plus the clock, seed and depth. Visibility sets are
// derived data and never persisted.
package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/game"
)

// ErrNoSlot is returned when loading or deleting a slot that does not exist.
var ErrNoSlot = errors.New("save: no such slot")

// Store manages the SQLite database connection for save slots.
type Store struct {
	db *sql.DB
}

// SlotInfo describes one save slot without decoding its blobs.
type SlotInfo struct {
	Slot      string
	Seed      int64
	Depth     int
	Clock     uint64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("save: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			clock INTEGER NOT NULL,
			player INTEGER NOT NULL,
			options TEXT NOT NULL,
			map TEXT NOT NULL,
			entities TEXT NOT NULL,
			schedule TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saves_slot ON saves(slot);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the world into a named slot, replacing any previous
// snapshot under the same name.
func (s *Store) Save(slot string, w *game.World) error {
	mapBlob, err := encodeMap(w.Map())
	if err != nil {
		return fmt.Errorf("save: cannot encode map: %w", err)
	}
	entBlob, err := encodeEntities(w.Store())
	if err != nil {
		return fmt.Errorf("save: cannot encode entities: %w", err)
	}
	schedBlob, err := encodeSchedule(w.Scheduler())
	if err != nil {
		return fmt.Errorf("save: cannot encode schedule: %w", err)
	}
	optsBlob, err := encodeOptions(w.Options())
	if err != nil {
		return fmt.Errorf("save: cannot encode options: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, seed, depth, clock, player, options, map, entities, schedule)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   seed = excluded.seed,
		   depth = excluded.depth,
		   clock = excluded.clock,
		   player = excluded.player,
		   options = excluded.options,
		   map = excluded.map,
		   entities = excluded.entities,
		   schedule = excluded.schedule,
		   created_at = CURRENT_TIMESTAMP`,
		slot, w.Seed(), w.Depth(), int64(w.Clock()), int64(w.Player()),
		string(optsBlob), string(mapBlob), string(entBlob), string(schedBlob),
	)
	if err != nil {
		return fmt.Errorf("save: cannot write slot %q: %w", slot, err)
	}
	return nil
}

// Load rebuilds a world from a named slot.
func (s *Store) Load(slot string) (*game.World, error) {
	var (
		seed, clock, player  int64
		depth                int
		opts, m, ents, sched string
	)
	err := s.db.QueryRow(
		`SELECT seed, depth, clock, player, options, map, entities, schedule
		 FROM saves WHERE slot = ?`, slot,
	).Scan(&seed, &depth, &clock, &player, &opts, &m, &ents, &sched)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("save: cannot read slot %q: %w", slot, err)
	}

	options, err := decodeOptions([]byte(opts))
	if err != nil {
		return nil, fmt.Errorf("save: corrupt options in slot %q: %w", slot, err)
	}
	level, err := decodeMap([]byte(m))
	if err != nil {
		return nil, fmt.Errorf("save: corrupt map in slot %q: %w", slot, err)
	}
	store, err := decodeEntities([]byte(ents))
	if err != nil {
		return nil, fmt.Errorf("save: corrupt entities in slot %q: %w", slot, err)
	}
	scheduler, err := decodeSchedule([]byte(sched), uint64(clock))
	if err != nil {
		return nil, fmt.Errorf("save: corrupt schedule in slot %q: %w", slot, err)
	}

	return game.Restore(seed, options, depth, level, store, scheduler, entity.ID(player)), nil
}

// List returns every slot, most recent first.
func (s *Store) List() ([]SlotInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, seed, depth, clock, created_at
		 FROM saves ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("save: cannot query slots: %w", err)
	}
	defer rows.Close()

	var infos []SlotInfo
	for rows.Next() {
		var (
			info      SlotInfo
			clock     int64
			createdAt any
		)
		if err := rows.Scan(&info.Slot, &info.Seed, &info.Depth, &clock, &createdAt); err != nil {
			return nil, fmt.Errorf("save: cannot scan row: %w", err)
		}
		info.Clock = uint64(clock)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			info.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				info.CreatedAt = parsed
			}
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("save: row iteration error: %w", err)
	}
	return infos, nil
}

// Delete removes a slot.
func (s *Store) Delete(slot string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("save: cannot delete slot %q: %w", slot, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNoSlot, slot)
	}
	return nil
}
