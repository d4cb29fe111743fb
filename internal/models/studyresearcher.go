package models

// Study team roles, from most to least senior.
const (
	// RolePI is the principal investigator accountable for the study.
	RolePI = "PI"
	// RoleCoordinator schedules sessions and manages the participant flow.
	RoleCoordinator = "coordinator"
	// RoleRA is a research assistant running sessions day to day.
	RoleRA = "RA"
)

// StudyResearcher assigns a researcher to a study under one role. The
// (study, researcher) pair is unique regardless of role.
type StudyResearcher struct {
	StudyID      string `json:"study_id" gorm:"size:36;primaryKey"`
	ResearcherID string `json:"researcher_id" gorm:"size:36;primaryKey"`
	Role         string `json:"role" gorm:"size:32;not null"`
}

// CSVHeader returns the assignment column order.
func (StudyResearcher) CSVHeader() []string {
	return []string{"study_id", "researcher_id", "role"}
}

// CSVRecord returns the assignment as one CSV row.
func (sr StudyResearcher) CSVRecord() []string {
	return []string{sr.StudyID, sr.ResearcherID, sr.Role}
}
