package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/reign/calleditor/internal/calllog"

	_ "modernc.org/sqlite"
)

// Store provides access to the call-log SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".calleditor", "calllog.sqlite")
}

// Open opens (creating if needed) the database with WAL and a busy timeout,
// and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// RecentCalls returns at most limit calls, newest first. Ties keep the
// store's native order.
func (s *Store) RecentCalls(ctx context.Context, limit int) ([]calllog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT _id, number, date, type, duration, name
		FROM calls
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	entries := []calllog.Entry{}
	for rows.Next() {
		var e calllog.Entry
		var id int64
		var number, name sql.NullString
		if err := rows.Scan(&id, &number, &e.Date, &e.Type, &e.Duration, &name); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		if number.Valid {
			e.Number = &number.String
		}
		if name.Valid {
			e.Name = &name.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertCall adds a row and returns its id.
func (s *Store) InsertCall(ctx context.Context, v calllog.Values) (string, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO calls (number, date, duration, new, type, name)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.Number, v.Date, v.Duration, v.New, int(v.Type), v.CachedName)
	if err != nil {
		return "", fmt.Errorf("insert call: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("insert call id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Grants returns the recorded permission grants. Capabilities never
// recorded are absent from the map.
func (s *Store) Grants(ctx context.Context) (map[calllog.Capability]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT capability, granted FROM permissions`)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer rows.Close()

	grants := make(map[calllog.Capability]bool)
	for rows.Next() {
		var capability string
		var granted bool
		if err := rows.Scan(&capability, &granted); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		grants[calllog.Capability(capability)] = granted
	}
	return grants, rows.Err()
}

// SetGrants records every grant in one transaction.
func (s *Store) SetGrants(ctx context.Context, grants map[calllog.Capability]bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for capability, granted := range grants {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO permissions (capability, granted) VALUES (?, ?)
			ON CONFLICT(capability) DO UPDATE SET granted = excluded.granted
		`, string(capability), granted); err != nil {
			return fmt.Errorf("record %s: %w", capability, err)
		}
	}
	return tx.Commit()
}
