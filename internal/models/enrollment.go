package models

// Enrollment statuses cover the whole lifecycle of a seat request.
const (
	// EnrollmentStatusEnrolled marks a confirmed seat in a session.
	EnrollmentStatusEnrolled = "enrolled"
	// EnrollmentStatusWaitlisted marks a request queued behind a full session.
	EnrollmentStatusWaitlisted = "waitlisted"
	// EnrollmentStatusCancelled marks a seat given up before the session ran.
	EnrollmentStatusCancelled = "cancelled"
	// EnrollmentStatusAttended marks a participant who showed up.
	EnrollmentStatusAttended = "attended"
	// EnrollmentStatusNoShow marks a participant who held a seat but never came.
	EnrollmentStatusNoShow = "no_show"
)

// Enrollment ties a participant to a session. The (participant, session)
// pair is unique.
type Enrollment struct {
	ParticipantID string    `json:"participant_id" gorm:"size:36;primaryKey"`
	SessionID     string    `json:"session_id" gorm:"size:36;primaryKey"`
	Status        string    `json:"status" gorm:"size:20;not null;index"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// HoldsSeat reports whether the enrollment occupies one of the session's
// seats. Waitlisted and cancelled enrollments do not.
func (e Enrollment) HoldsSeat() bool {
	switch e.Status {
	case EnrollmentStatusEnrolled, EnrollmentStatusAttended, EnrollmentStatusNoShow:
		return true
	}
	return false
}

// CSVHeader returns the enrollment column order.
func (Enrollment) CSVHeader() []string {
	return []string{"participant_id", "session_id", "status", "created_at", "updated_at"}
}

// CSVRecord returns the enrollment as one CSV row.
func (e Enrollment) CSVRecord() []string {
	return []string{
		e.ParticipantID,
		e.SessionID,
		e.Status,
		e.CreatedAt.String(),
		e.UpdatedAt.String(),
	}
}
