// Package refdata loads identifier pools and reference rows from the CSV
// and JSON files written by sibling generators. Loaders are tolerant by
// default: a missing or mangled optional file degrades to an empty result
// so the caller can synthesize a fallback pool, while the Required and
// strict Load variants surface errors for inputs a generator cannot run
// without.
package refdata

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Format is a recognized reference file encoding.
type Format string

const (
	// FormatCSV is a comma-separated table with a header row.
	FormatCSV Format = "csv"
	// FormatJSON is an array of objects, or of bare id strings.
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat reports a file that is neither CSV nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported reference file format")
	// ErrMissingColumns reports a table without the columns a loader needs.
	ErrMissingColumns = errors.New("reference file is missing required columns")
	// ErrEmptyReference reports a required file that yielded no usable rows.
	ErrEmptyReference = errors.New("reference file yielded no usable rows")
)

// DetectFormat resolves a file's encoding from its extension, falling
// back to content sniffing for unrecognized extensions.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to sniff %s: %w", path, err)
	}
	switch {
	case mime.Is("application/json"):
		return FormatJSON, nil
	case mime.Is("text/csv"):
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, path, mime.String())
}

// scalarCol is the synthetic column holding bare JSON array elements.
const scalarCol = ""

// table is a parsed reference file: the set of column names seen plus one
// map per row. Bare JSON scalars become rows with the single scalarCol.
type table struct {
	columns map[string]bool
	rows    []map[string]any
}

func loadTable(path string) (*table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return readJSONTable(path)
	}
	return readCSVTable(path)
}

func readCSVTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &table{columns: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	tbl := &table{columns: make(map[string]bool, len(header))}
	for _, col := range header {
		tbl.columns[col] = true
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		tbl.rows = append(tbl.rows, row)
	}
	return tbl, nil
}

func readJSONTable(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var elems []any
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	tbl := &table{columns: map[string]bool{}}
	for _, elem := range elems {
		switch v := elem.(type) {
		case map[string]any:
			for col := range v {
				tbl.columns[col] = true
			}
			tbl.rows = append(tbl.rows, v)
		default:
			tbl.columns[scalarCol] = true
			tbl.rows = append(tbl.rows, map[string]any{scalarCol: v})
		}
	}
	return tbl, nil
}

// isScalar reports whether the row came from a bare JSON array element.
func isScalar(row map[string]any) bool {
	_, ok := row[scalarCol]
	return ok
}

// stringField coerces a cell to a trimmed string, "" when absent.
func stringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// intField coerces a cell to an integer, truncating fractional values.
// It returns nil when the cell is absent or not numeric.
func intField(row map[string]any, key string) *int {
	switch v := row[key].(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		n := int(f)
		return &n
	default:
		return nil
	}
}

// stableID derives a deterministic v5 UUID from a basis string, so the
// same reference row always maps to the same synthetic id.
func stableID(basis string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(basis)).String()
}
