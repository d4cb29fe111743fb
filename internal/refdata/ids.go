package refdata

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Header aliases accepted when extracting id pools, in priority order.
var (
	ParticipantIDAliases    = []string{"participant_id", "id"}
	StudyIDAliases          = []string{"study_id"}
	ResearcherIDAliases     = []string{"researcher_id"}
	ConsentVersionIDAliases = []string{"consent_version_id", "id"}
)

// LoadIDs extracts identifier values from a reference file using the
// first alias column present. Bare JSON string arrays are accepted as-is.
// An empty file yields an empty pool; a populated file without any alias
// column is an ErrMissingColumns error.
func LoadIDs(path string, aliases []string) ([]string, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return nil, err
	}

	key, found := "", false
	for _, alias := range aliases {
		if tbl.columns[alias] {
			key, found = alias, true
			break
		}
	}
	if !found && tbl.columns[scalarCol] {
		key, found = scalarCol, true
	}
	if !found {
		if len(tbl.rows) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s has none of %s", ErrMissingColumns, path, strings.Join(aliases, ", "))
	}

	ids := make([]string, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if id := stringField(row, key); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// OptionalIDs loads an id pool, treating any failure as an empty pool so
// the caller can fall back to a synthesized one.
func OptionalIDs(path string, aliases []string, logger zerolog.Logger) []string {
	ids, err := LoadIDs(path, aliases)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("reference file unavailable")
		return nil
	}
	return ids
}

// RequiredIDs loads an id pool the caller cannot run without. Any load
// failure, or a pool with zero usable ids, is an error.
func RequiredIDs(path string, aliases []string) ([]string, error) {
	ids, err := LoadIDs(path, aliases)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyReference, path)
	}
	return ids, nil
}
