package models

import "strconv"

// Study is a research study participants can enroll into. Eligibility
// bounds use the camelCase keys the scheduling importer expects.
type Study struct {
	StudyID      string    `json:"study_id" gorm:"size:36;primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	MinAge       int       `json:"minAge"`
	MaxAge       int       `json:"maxAge"`
	MinGPA       float64   `json:"minGPA"`
	CooldownDays int       `json:"cooldownDays"`
	Active       bool      `json:"active" gorm:"index"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// CSVHeader returns the study column order.
func (Study) CSVHeader() []string {
	return []string{
		"study_id", "title", "description", "minAge", "maxAge",
		"minGPA", "cooldownDays", "active", "created_at", "updated_at",
	}
}

// CSVRecord returns the study as one CSV row.
func (s Study) CSVRecord() []string {
	return []string{
		s.StudyID,
		s.Title,
		s.Description,
		strconv.Itoa(s.MinAge),
		strconv.Itoa(s.MaxAge),
		strconv.FormatFloat(s.MinGPA, 'f', -1, 64),
		strconv.Itoa(s.CooldownDays),
		strconv.FormatBool(s.Active),
		s.CreatedAt.String(),
		s.UpdatedAt.String(),
	}
}
