// Package store provides SQLite persistence for campusfeed: the user's
// preferences, the saved set, per-event save counts, locally submitted
// custom events, and the durable state version that backs cross-process
// change signaling.
//
// Mutations never surface errors to callers. Persistence is a convenience
// layer here, not a source of truth requiring recovery: failures are
// logged and the store degrades, treating unreadable or malformed values
// as absence.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/abelbrown/campusfeed/internal/event"
	"github.com/abelbrown/campusfeed/internal/logging"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations

	// lastLocal is the highest state version this process has written.
	// The watcher uses it to suppress signals for our own mutations.
	lastLocal uint64

	obsMu     sync.RWMutex
	observers map[string]func(event.Prefs)
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// Build connection string based on database type
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:).
	// WAL also allows other processes sharing the file to read concurrently.
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{
		db:        db,
		observers: make(map[string]func(event.Prefs)),
	}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables if they don't exist and seeds
// the state version counter.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL,
		faculty TEXT NOT NULL,
		interests TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS saved (
		event_id TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS save_counts (
		event_id TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS custom_events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		organizer TEXT,
		location TEXT,
		url TEXT,
		level TEXT,
		faculty TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		start_at DATETIME,
		end_at DATETIME,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO meta (key, value) VALUES ('state_version', '0');
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// GetPreferences returns the stored profile, or nil when none exists.
// A missing row, an unreadable row, and corrupt interests all read as
// "no profile yet".
func (s *Store) GetPreferences() *event.Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var name, faculty, interestsJSON string
	err := s.db.QueryRow("SELECT name, faculty, interests FROM preferences WHERE id = 1").
		Scan(&name, &faculty, &interestsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		logging.Warn("store: read preferences", "err", err)
		return nil
	}

	var interests []string
	if err := json.Unmarshal([]byte(interestsJSON), &interests); err != nil {
		logging.Warn("store: corrupt interests, treating profile as absent", "err", err)
		return nil
	}

	return &event.Prefs{Name: name, Faculty: faculty, Interests: interests}
}

// SavePreferences overwrites the stored profile (never merges) and bumps
// the state version in the same transaction. After the write is durable,
// all subscribed observers receive the new value directly.
func (s *Store) SavePreferences(p event.Prefs) {
	interests, err := json.Marshal(p.Interests)
	if err != nil {
		logging.Error("store: encode interests", "err", err)
		return
	}

	s.mu.Lock()
	ok := func() bool {
		tx, err := s.db.Begin()
		if err != nil {
			logging.Error("store: save preferences: begin", "err", err)
			return false
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO preferences (id, name, faculty, interests) VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				faculty = excluded.faculty, interests = excluded.interests
		`, p.Name, p.Faculty, string(interests))
		if err != nil {
			logging.Error("store: save preferences", "err", err)
			return false
		}

		v, err := bumpVersion(tx)
		if err != nil {
			logging.Error("store: save preferences: bump version", "err", err)
			return false
		}
		if err := tx.Commit(); err != nil {
			logging.Error("store: save preferences: commit", "err", err)
			return false
		}
		s.lastLocal = v
		return true
	}()
	s.mu.Unlock()

	// Notify only after the write is durable, and outside the lock so
	// handlers may re-read the store.
	if ok {
		s.notifyPrefs(p)
	}
}

// GetSavedIDs returns the set of saved event ids. Never nil.
func (s *Store) GetSavedIDs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := make(map[string]bool)
	rows, err := s.db.Query("SELECT event_id FROM saved")
	if err != nil {
		logging.Warn("store: read saved ids", "err", err)
		return saved
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			logging.Warn("store: scan saved id", "err", err)
			continue
		}
		saved[id] = true
	}
	if err := rows.Err(); err != nil {
		logging.Warn("store: read saved ids", "err", err)
	}
	return saved
}

// GetSaveCounts returns the save counter for every id that has one.
// Never nil; counts are never negative.
func (s *Store) GetSaveCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	rows, err := s.db.Query("SELECT event_id, count FROM save_counts")
	if err != nil {
		logging.Warn("store: read save counts", "err", err)
		return counts
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			logging.Warn("store: scan save count", "err", err)
			continue
		}
		if count < 0 {
			count = 0
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		logging.Warn("store: read save counts", "err", err)
	}
	return counts
}

// ToggleSaved flips the saved membership for id and adjusts its save count
// by one in the same direction, floored at zero. Membership, count, and the
// state version change in one transaction, durable before return. Callers
// re-read state to observe the new membership.
func (s *Store) ToggleSaved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		logging.Error("store: toggle saved: begin", "id", id, "err", err)
		return
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow("SELECT COUNT(*) FROM saved WHERE event_id = ?", id).Scan(&n); err != nil {
		logging.Error("store: toggle saved: membership", "id", id, "err", err)
		return
	}

	if n > 0 {
		if _, err := tx.Exec("DELETE FROM saved WHERE event_id = ?", id); err != nil {
			logging.Error("store: toggle saved: delete", "id", id, "err", err)
			return
		}
		if _, err := tx.Exec("UPDATE save_counts SET count = MAX(count - 1, 0) WHERE event_id = ?", id); err != nil {
			logging.Error("store: toggle saved: decrement", "id", id, "err", err)
			return
		}
	} else {
		if _, err := tx.Exec("INSERT INTO saved (event_id) VALUES (?)", id); err != nil {
			logging.Error("store: toggle saved: insert", "id", id, "err", err)
			return
		}
		if _, err := tx.Exec(`
			INSERT INTO save_counts (event_id, count) VALUES (?, 1)
			ON CONFLICT(event_id) DO UPDATE SET count = count + 1
		`, id); err != nil {
			logging.Error("store: toggle saved: increment", "id", id, "err", err)
			return
		}
	}

	v, err := bumpVersion(tx)
	if err != nil {
		logging.Error("store: toggle saved: bump version", "id", id, "err", err)
		return
	}
	if err := tx.Commit(); err != nil {
		logging.Error("store: toggle saved: commit", "id", id, "err", err)
		return
	}
	s.lastLocal = v
}

// GetCustomEvents returns locally submitted events, oldest first.
// Unreadable rows are skipped. Never nil.
func (s *Store) GetCustomEvents() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]event.Event, 0)
	rows, err := s.db.Query(`
		SELECT id, title, description, organizer, location, url, level, faculty, tags, start_at, end_at
		FROM custom_events
		ORDER BY created_at ASC
	`)
	if err != nil {
		logging.Warn("store: read custom events", "err", err)
		return events
	}
	defer rows.Close()

	for rows.Next() {
		var e event.Event
		var level, tagsJSON string
		var start, end sql.NullTime
		err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Organizer,
			&e.Location, &e.URL, &level, &e.Faculty, &tagsJSON, &start, &end)
		if err != nil {
			logging.Warn("store: scan custom event", "err", err)
			continue
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			logging.Warn("store: corrupt custom event tags, skipping row", "id", e.ID, "err", err)
			continue
		}
		e.Level = event.ParseLevel(level)
		if start.Valid {
			e.Start = start.Time
		}
		if end.Valid {
			e.End = end.Time
		}
		e.IsCustom = true
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		logging.Warn("store: read custom events", "err", err)
	}
	return events
}

// AddCustomEvent stores a locally submitted event and returns its id,
// assigning a fresh one when the event has none. Bumps the state version
// so other contexts re-read the catalog.
func (s *Store) AddCustomEvent(e event.Event) string {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		logging.Error("store: encode custom event tags", "err", err)
		return e.ID
	}

	var start, end any
	if e.Scheduled() {
		start = e.Start
	}
	if !e.End.IsZero() {
		end = e.End
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		logging.Error("store: add custom event: begin", "err", err)
		return e.ID
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO custom_events (
			id, title, description, organizer, location, url, level, faculty,
			tags, start_at, end_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Description, e.Organizer, e.Location, e.URL,
		string(e.Level), e.Faculty, string(tags), start, end, time.Now())
	if err != nil {
		logging.Error("store: add custom event", "id", e.ID, "err", err)
		return e.ID
	}

	v, err := bumpVersion(tx)
	if err != nil {
		logging.Error("store: add custom event: bump version", "err", err)
		return e.ID
	}
	if err := tx.Commit(); err != nil {
		logging.Error("store: add custom event: commit", "err", err)
		return e.ID
	}
	s.lastLocal = v
	return e.ID
}

// StateVersion returns the current durable state version. Every mutation
// in any process sharing this database increments it, so it only moves
// forward. Zero means unreadable or never written.
func (s *Store) StateVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'state_version'").Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0
	}
	if err != nil {
		logging.Warn("store: read state version", "err", err)
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		logging.Warn("store: corrupt state version", "value", raw, "err", err)
		return 0
	}
	return v
}

// LastLocalVersion returns the highest state version this process wrote.
func (s *Store) LastLocalVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLocal
}

// bumpVersion increments the state version inside tx and returns the new
// value. The caller's transaction makes the data write and the version
// advance atomic, so the signal can never precede the state it announces.
func bumpVersion(tx *sql.Tx) (uint64, error) {
	var raw string
	if err := tx.QueryRow("SELECT value FROM meta WHERE key = 'state_version'").Scan(&raw); err != nil {
		return 0, err
	}
	cur, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		// Corrupt counter: restart it rather than fail the data write.
		cur = 0
	}
	next := cur + 1
	if _, err := tx.Exec("UPDATE meta SET value = ? WHERE key = 'state_version'",
		strconv.FormatUint(next, 10)); err != nil {
		return 0, err
	}
	return next, nil
}
