package models

import "strconv"

// Researcher is a staff member who runs or supports studies.
type Researcher struct {
	ResearcherID string    `json:"researcher_id" gorm:"size:36;primaryKey"`
	FirstName    string    `json:"first_name" gorm:"size:100;not null"`
	LastName     string    `json:"last_name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;index"`
	Department   string    `json:"department" gorm:"size:100"`
	Title        string    `json:"title" gorm:"size:100"`
	Active       bool      `json:"active" gorm:"index"`
	CreatedAt    Timestamp `json:"created_at"`
}

// CSVHeader returns the researcher column order.
func (Researcher) CSVHeader() []string {
	return []string{
		"researcher_id", "first_name", "last_name", "email",
		"department", "title", "active", "created_at",
	}
}

// CSVRecord returns the researcher as one CSV row.
func (r Researcher) CSVRecord() []string {
	return []string{
		r.ResearcherID,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Department,
		r.Title,
		strconv.FormatBool(r.Active),
		r.CreatedAt.String(),
	}
}
