// Package sink writes generated fixture rows to their output file. Three
// encodings are supported: CSV with a fixed column order, pretty-printed
// JSON arrays, and SQLite databases migrated from the row type itself.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studyflow/fixturegen/internal/database"
)

// Format selects an output encoding.
type Format string

const (
	// FormatCSV writes a header row plus one record per fixture row.
	FormatCSV Format = "csv"
	// FormatJSON writes a 2-space indented JSON array.
	FormatJSON Format = "json"
	// FormatSQLite writes rows into a fresh SQLite database file.
	FormatSQLite Format = "sqlite"
)

// ErrUnknownFormat reports a format the sink cannot write.
var ErrUnknownFormat = errors.New("unknown output format")

// sqliteBatchSize bounds each insert statement.
const sqliteBatchSize = 200

// Row is any record that can express itself as a CSV line.
type Row interface {
	CSVHeader() []string
	CSVRecord() []string
}

// Resolve picks the output format for a path. An explicit JSON flag wins;
// otherwise the file extension decides, defaulting to CSV.
func Resolve(path string, jsonOut bool) Format {
	if jsonOut {
		return FormatJSON
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return FormatCSV
}

// Write dispatches rows to the writer for format, replacing any existing
// file at path.
func Write[T Row](format Format, path string, rows []T) error {
	switch format {
	case FormatCSV:
		return WriteCSV(path, rows)
	case FormatJSON:
		return WriteJSON(path, rows)
	case FormatSQLite:
		return WriteSQLite(path, rows)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteCSV writes a header row followed by one record per fixture row.
func WriteCSV[T Row](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	var zero T
	if err := w.Write(zero.CSVHeader()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row.CSVRecord()); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes rows as a 2-space indented array. An empty batch
// serializes as [] rather than null.
func WriteJSON[T any](path string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteSQLite replaces the database file at path with one table holding
// rows, created from the row type's schema tags.
func WriteSQLite[T any](path string, rows []T) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	db, err := database.Open(path)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := db.AutoMigrate(new(T)); err != nil {
		return fmt.Errorf("failed to migrate schema for %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, sqliteBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert rows into %s: %w", path, err)
	}
	return nil
}
