// Package history records completed conversions in a SQLite database so a
// user can audit what was converted, when, and to what digest.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): Uses mattn/go-sqlite3
//
// Use Open() instead of sql.Open() to ensure the correct driver is used.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id            TEXT PRIMARY KEY,
	converted_at  TEXT NOT NULL,
	source_model  TEXT NOT NULL,
	target_model  TEXT NOT NULL,
	input_path    TEXT NOT NULL,
	output_path   TEXT NOT NULL,
	input_digest  TEXT NOT NULL,
	output_digest TEXT NOT NULL
);
`

// DriverName returns the SQL driver name in use.
func DriverName() string {
	return driverName
}

// DriverType returns a string identifying the underlying implementation.
// Returns "cgo" for mattn/go-sqlite3, "purego" for modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Info contains information about the SQLite driver configuration.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns information about the current SQLite configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}

// Record is one completed conversion.
type Record struct {
	ID           string
	ConvertedAt  time.Time
	SourceModel  string
	TargetModel  string
	InputPath    string
	OutputPath   string
	InputDigest  string
	OutputDigest string
}

// Store is an open conversion history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a conversion and returns the record with its assigned ID
// and timestamp filled in.
func (s *Store) Append(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO conversions
		 (id, converted_at, source_model, target_model, input_path, output_path, input_digest, output_digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.ConvertedAt.Format(time.RFC3339Nano),
		rec.SourceModel,
		rec.TargetModel,
		rec.InputPath,
		rec.OutputPath,
		rec.InputDigest,
		rec.OutputDigest,
	)
	if err != nil {
		return Record{}, fmt.Errorf("append history record: %w", err)
	}
	return rec, nil
}

// List returns every recorded conversion, newest first.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, converted_at, source_model, target_model, input_path, output_path, input_digest, output_digest
		 FROM conversions ORDER BY converted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var ts string
		if err := rows.Scan(
			&rec.ID, &ts, &rec.SourceModel, &rec.TargetModel,
			&rec.InputPath, &rec.OutputPath, &rec.InputDigest, &rec.OutputDigest,
		); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp %q: %w", ts, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history records: %w", err)
	}
	return out, nil
}
