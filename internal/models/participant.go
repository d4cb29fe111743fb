package models

import "strconv"

// Participant statuses describe standing in the subject pool.
const (
	// ParticipantStatusActive marks a participant eligible for new sessions.
	ParticipantStatusActive = "active"
	// ParticipantStatusPaused marks a participant who stepped back for a while.
	ParticipantStatusPaused = "paused"
	// ParticipantStatusIneligible marks a participant who fails pool criteria.
	ParticipantStatusIneligible = "ineligible"
	// ParticipantStatusBanned marks a participant removed for cause.
	ParticipantStatusBanned = "banned"
)

// Participant is one member of the research subject pool.
type Participant struct {
	ParticipantID string    `json:"participant_id" gorm:"size:36;primaryKey"`
	FirstName     string    `json:"first_name" gorm:"size:100;not null"`
	LastName      string    `json:"last_name" gorm:"size:100;not null"`
	Email         string    `json:"email" gorm:"size:255;not null;index"`
	Phone         string    `json:"phone" gorm:"size:20"`
	DateOfBirth   Date      `json:"date_of_birth"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender" gorm:"size:32"`
	Ethnicity     string    `json:"ethnicity" gorm:"size:64"`
	Major         string    `json:"major" gorm:"size:100"`
	ClassYear     int       `json:"class_year"`
	GPA           float64   `json:"gpa"`
	Status        string    `json:"status" gorm:"size:20;not null;index"`
	Bio           string    `json:"bio" gorm:"type:text"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// CSVHeader returns the participant column order.
func (Participant) CSVHeader() []string {
	return []string{
		"participant_id", "first_name", "last_name", "email", "phone",
		"date_of_birth", "age", "gender", "ethnicity", "major",
		"class_year", "gpa", "status", "bio", "created_at", "updated_at",
	}
}

// CSVRecord returns the participant as one CSV row.
func (p Participant) CSVRecord() []string {
	return []string{
		p.ParticipantID,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		p.DateOfBirth.String(),
		strconv.Itoa(p.Age),
		p.Gender,
		p.Ethnicity,
		p.Major,
		strconv.Itoa(p.ClassYear),
		strconv.FormatFloat(p.GPA, 'f', -1, 64),
		p.Status,
		p.Bio,
		p.CreatedAt.String(),
		p.UpdatedAt.String(),
	}
}
