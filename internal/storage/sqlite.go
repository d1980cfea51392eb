// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-platformer/internal/journal"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

var (
	// ErrSessionNotFound is returned when no session has the requested id.
	ErrSessionNotFound = errors.New("storage: session not found")

	// ErrAmbiguousID is returned when an id prefix matches several sessions.
	ErrAmbiguousID = errors.New("storage: ambiguous session id")
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionSummary is a session row without its world and events.
type SessionSummary struct {
	ID         string
	Frontend   string
	Policy     string
	JumpRule   string
	Ticks      uint64
	EventCount int
	FinalX     float64
	FinalY     float64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			frontend TEXT NOT NULL,
			world_yaml BLOB NOT NULL,
			policy TEXT NOT NULL,
			jump_rule TEXT NOT NULL,
			viewport_w REAL NOT NULL,
			viewport_h REAL NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			final_x REAL NOT NULL DEFAULT 0,
			final_y REAL NOT NULL DEFAULT 0,
			final_vx REAL NOT NULL DEFAULT 0,
			final_vy REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS session_events (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			direction TEXT NOT NULL DEFAULT '',
			width REAL NOT NULL DEFAULT 0,
			height REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, seq)
		);
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

// SaveSession stores a session and its events, replacing any earlier copy
// with the same id.
func (s *Store) SaveSession(sess journal.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session_events WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO sessions
		 (id, frontend, world_yaml, policy, jump_rule, viewport_w, viewport_h,
		  ticks, final_x, final_y, final_vx, final_vy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Frontend,
		sess.WorldYAML,
		sess.Policy,
		sess.JumpRule,
		sess.Viewport.W,
		sess.Viewport.H,
		int64(sess.Ticks),
		sess.FinalPosition.X,
		sess.FinalPosition.Y,
		sess.FinalVelocity.X,
		sess.FinalVelocity.Y,
		createdAt(sess.CreatedAt),
	); err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO session_events (session_id, seq, tick, kind, direction, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range sess.Events {
		dir := ""
		if e.Kind != journal.KindResize {
			dir = e.Direction.String()
		}
		if _, err := stmt.Exec(sess.ID, i, int64(e.Tick), string(e.Kind), dir, e.W, e.H); err != nil {
			return fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

// Session loads a full session by id.
func (s *Store) Session(id string) (journal.Session, error) {
	var sess journal.Session
	var ticks int64
	var created any

	err := s.db.QueryRow(
		`SELECT id, frontend, world_yaml, policy, jump_rule, viewport_w, viewport_h,
		        ticks, final_x, final_y, final_vx, final_vy, created_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(
		&sess.ID,
		&sess.Frontend,
		&sess.WorldYAML,
		&sess.Policy,
		&sess.JumpRule,
		&sess.Viewport.W,
		&sess.Viewport.H,
		&ticks,
		&sess.FinalPosition.X,
		&sess.FinalPosition.Y,
		&sess.FinalVelocity.X,
		&sess.FinalVelocity.Y,
		&created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot query session: %w", err)
	}
	sess.Ticks = uint64(ticks)
	sess.CreatedAt = parseTime(created)

	events, err := s.events(id)
	if err != nil {
		return sess, err
	}
	sess.Events = events
	return sess, nil
}

func (s *Store) events(id string) ([]journal.Event, error) {
	rows, err := s.db.Query(
		`SELECT tick, kind, direction, width, height
		 FROM session_events
		 WHERE session_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []journal.Event
	for rows.Next() {
		var e journal.Event
		var tick int64
		var kind, dir string
		if err := rows.Scan(&tick, &kind, &dir, &e.W, &e.H); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		e.Tick = uint64(tick)
		e.Kind = journal.Kind(kind)
		if dir != "" {
			if e.Direction, err = physics.ParseDirection(dir); err != nil {
				return nil, fmt.Errorf("storage: %w", err)
			}
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

// ResolveID expands a unique id prefix to the full session id.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrSessionNotFound)
	}
	rows, err := s.db.Query(
		"SELECT id FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// RecentSessions lists the newest sessions first.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.frontend, s.policy, s.jump_rule, s.ticks, s.final_x, s.final_y, s.created_at,
		        (SELECT COUNT(*) FROM session_events e WHERE e.session_id = s.id)
		 FROM sessions s
		 ORDER BY s.created_at DESC, s.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var ticks int64
		var created any
		if err := rows.Scan(&sum.ID, &sum.Frontend, &sum.Policy, &sum.JumpRule, &ticks,
			&sum.FinalX, &sum.FinalY, &created, &sum.EventCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.Ticks = uint64(ticks)
		sum.CreatedAt = parseTime(created)
		result = append(result, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// DeleteSession removes a session and its events.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM session_events WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

func createdAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
