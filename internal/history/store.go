package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS history (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	expression  TEXT NOT NULL,
	result      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store keeps the newest calculations in SQLite, newest first.
type Store struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations. A dsn of ":memory:"
// keeps the history for the lifetime of the process only. limit <= 0 selects
// DefaultLimit.
func NewStore(dsn string, limit int) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{db: db, limit: limit, now: time.Now}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Limit returns the retention cap.
func (s *Store) Limit() int {
	return s.limit
}

// #endregion db-accessor

// #region add
// Add records a calculation and drops entries beyond the retention cap in the
// same transaction.
func (s *Store) Add(expression, result string) (Entry, error) {
	e := Entry{
		ID:         uuid.New().String(),
		Expression: expression,
		Result:     result,
		CreatedAt:  s.now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Entry{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO history (id, expression, result, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Expression, e.Result, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		s.limit,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("prune: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

// Record implements keypad.Recorder.
func (s *Store) Record(expression, result string) error {
	_, err := s.Add(expression, result)
	return err
}

// #endregion add

// #region list
// List returns up to limit entries, newest first. limit <= 0 returns all
// stored rows, even when the file was written under a larger retention cap.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT id, expression, result, created_at FROM history ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var createdStr string
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves a single entry by ID.
func (s *Store) Get(id string) (Entry, error) {
	var e Entry
	var createdStr string
	err := s.db.QueryRow(
		`SELECT id, expression, result, created_at FROM history WHERE id = ?`, id,
	).Scan(&e.ID, &e.Expression, &e.Result, &createdStr)
	if err != nil {
		return Entry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return e, nil
}

// #endregion list

// #region count-clear
// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear() (int, error) {
	res, err := s.db.Exec(`DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear rows affected: %w", err)
	}
	return int(n), nil
}

// #endregion count-clear
