package refdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/models"
)

// RoomRef is a room row as seen by the session scheduler. Capacity is nil
// when the source file omitted or mangled it.
type RoomRef struct {
	ID       string
	Capacity *int
}

// SessionRef is a session row as seen by the enrollment builder. Start
// and End are zero when the source file omitted or mangled them.
type SessionRef struct {
	ID       string
	Start    time.Time
	End      time.Time
	Capacity *int
}

// EnrollmentRef is the (participant, session, status) triple the payment
// generator keys off.
type EnrollmentRef struct {
	ParticipantID string
	SessionID     string
	Status        string
}

// VersionRef is a consent version row with its effective window. A zero
// From means the row never carried a usable start; a zero To means the
// version is open-ended.
type VersionRef struct {
	ID   string
	From time.Time
	To   time.Time
}

// LoadRooms reads room rows, deriving a stable id from (building, name)
// for rows without an explicit room_id.
func LoadRooms(path string) ([]RoomRef, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	rooms := make([]RoomRef, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if isScalar(row) {
			continue
		}
		id := stringField(row, "room_id")
		if id == "" {
			building := stringField(row, "building")
			name := stringField(row, "name")
			if building != "" || name != "" {
				id = stableID(building + "::" + name)
			} else {
				id = uuid.NewString()
			}
		}
		rooms = append(rooms, RoomRef{ID: id, Capacity: intField(row, "capacity")})
	}
	return rooms, nil
}

// OptionalRooms loads room rows, treating any failure as an empty pool.
func OptionalRooms(path string, logger zerolog.Logger) []RoomRef {
	rooms, err := LoadRooms(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("reference file unavailable")
		return nil
	}
	return rooms
}

// LoadSessions reads session rows, deriving a stable id from the
// (study, room, start) triple for rows without an explicit session_id.
func LoadSessions(path string) ([]SessionRef, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	sessions := make([]SessionRef, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if isScalar(row) {
			continue
		}
		id := stringField(row, "session_id")
		if id == "" {
			basis := stringField(row, "study_id") + "::" + stringField(row, "room_id") + "::" + stringField(row, "startTs")
			id = stableID(basis)
		}
		ref := SessionRef{ID: id, Capacity: intField(row, "capacity")}
		if ts, err := models.ParseTimestamp(stringField(row, "startTs")); err == nil {
			ref.Start = ts.Time
		}
		if ts, err := models.ParseTimestamp(stringField(row, "endTs")); err == nil {
			ref.End = ts.Time
		}
		sessions = append(sessions, ref)
	}
	return sessions, nil
}

// OptionalSessions loads session rows, treating any failure as an empty
// pool.
func OptionalSessions(path string, logger zerolog.Logger) []SessionRef {
	sessions, err := LoadSessions(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("reference file unavailable")
		return nil
	}
	return sessions
}

// LoadEnrollments reads enrollment rows. Both id columns must be present;
// rows with a blank id are skipped.
func LoadEnrollments(path string) ([]EnrollmentRef, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	if len(tbl.rows) > 0 && (!tbl.columns["participant_id"] || !tbl.columns["session_id"]) {
		return nil, fmt.Errorf("%w: %s needs participant_id and session_id", ErrMissingColumns, path)
	}
	out := make([]EnrollmentRef, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if isScalar(row) {
			continue
		}
		pid := stringField(row, "participant_id")
		sid := stringField(row, "session_id")
		if pid == "" || sid == "" {
			continue
		}
		out = append(out, EnrollmentRef{
			ParticipantID: pid,
			SessionID:     sid,
			Status:        stringField(row, "status"),
		})
	}
	return out, nil
}

// OptionalEnrollments loads enrollment rows, treating any failure as an
// empty pool.
func OptionalEnrollments(path string, logger zerolog.Logger) []EnrollmentRef {
	out, err := LoadEnrollments(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("reference file unavailable")
		return nil
	}
	return out
}

// LoadConsentVersions reads consent version rows with their effective
// windows. The file must carry an id column; unusable timestamps load as
// zero so the caller can apply its own window policy.
func LoadConsentVersions(path string) ([]VersionRef, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	key, found := "", false
	for _, alias := range ConsentVersionIDAliases {
		if tbl.columns[alias] {
			key, found = alias, true
			break
		}
	}
	if !found {
		if len(tbl.rows) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyReference, path)
		}
		return nil, fmt.Errorf("%w: %s has none of %s", ErrMissingColumns, path, strings.Join(ConsentVersionIDAliases, ", "))
	}
	out := make([]VersionRef, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		id := stringField(row, key)
		if id == "" {
			continue
		}
		ref := VersionRef{ID: id}
		if ts, err := models.ParseTimestamp(stringField(row, "effectiveFrom")); err == nil {
			ref.From = ts.Time
		}
		if ts, err := models.ParseTimestamp(stringField(row, "effectiveTo")); err == nil {
			ref.To = ts.Time
		}
		out = append(out, ref)
	}
	return out, nil
}
