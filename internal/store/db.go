// Package store reads Pareto input series from SQLite databases.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/blackwell-systems/pareto/internal/input"
	"github.com/blackwell-systems/pareto/internal/pareto"
)

// Store provides read access to a SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the specified database path.
// Use ":memory:" for in-memory databases (useful for testing).
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database connection. LoadSeries is the only
// read path; DB is for callers that seed or inspect the database, such as
// test fixtures.
func (s *Store) DB() *sql.DB {
	return s.db
}

// LoadSeries runs query and reads its first column as the item label and
// its second as the frequency. Row order is kept; sorting is left to the
// table build. Extra columns are ignored.
func (s *Store) LoadSeries(query string, args ...any) (input.Series, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return input.Series{}, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return input.Series{}, fmt.Errorf("failed to read columns: %w", err)
	}
	if len(cols) < 2 {
		return input.Series{}, fmt.Errorf("%w: query returns %d column(s), want label and frequency",
			pareto.ErrInvalidInput, len(cols))
	}

	dest := make([]any, len(cols))
	var label sql.NullString
	var freq sql.NullFloat64
	dest[0] = &label
	dest[1] = &freq
	for i := 2; i < len(cols); i++ {
		dest[i] = new(any)
	}

	var series input.Series
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return input.Series{}, fmt.Errorf("%w: row %d: %v", pareto.ErrInvalidInput, series.Len()+1, err)
		}
		if !freq.Valid {
			return input.Series{}, fmt.Errorf("%w: row %d (%s) has a NULL frequency",
				pareto.ErrInvalidInput, series.Len()+1, label.String)
		}
		series.Items = append(series.Items, label.String)
		series.Frequencies = append(series.Frequencies, freq.Float64)
	}
	if err := rows.Err(); err != nil {
		return input.Series{}, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return series, nil
}
