package models

import "strconv"

// Session is a scheduled sitting of a study in a room. Sessions carry no
// id of their own; downstream loaders derive one from the
// (study, room, start) triple.
type Session struct {
	StudyID  string    `json:"study_id" gorm:"size:36;not null;index"`
	RoomID   string    `json:"room_id" gorm:"size:36;not null;index"`
	StartTs  Timestamp `json:"startTs" gorm:"not null"`
	EndTs    Timestamp `json:"endTs" gorm:"not null"`
	Capacity int       `json:"capacity" gorm:"not null"`
}

// CSVHeader returns the session column order.
func (Session) CSVHeader() []string {
	return []string{"study_id", "room_id", "startTs", "endTs", "capacity"}
}

// CSVRecord returns the session as one CSV row.
func (s Session) CSVRecord() []string {
	return []string{
		s.StudyID,
		s.RoomID,
		s.StartTs.String(),
		s.EndTs.String(),
		strconv.Itoa(s.Capacity),
	}
}

// Overlaps reports whether two sessions share any instant. Touching
// endpoints do not count as overlap.
func (s Session) Overlaps(other Session) bool {
	return s.StartTs.Before(other.EndTs.Time) && other.StartTs.Before(s.EndTs.Time)
}
