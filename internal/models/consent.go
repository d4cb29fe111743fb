package models

// ConsentVersion is one revision of a study's consent form. Version labels
// run v1..vK per study. An open-ended revision has a zero EffectiveTo, which
// serializes as an empty string.
type ConsentVersion struct {
	ConsentVersionID string    `json:"consent_version_id" gorm:"size:36;primaryKey"`
	StudyID          string    `json:"study_id" gorm:"size:36;not null;index"`
	Version          string    `json:"version" gorm:"size:16;not null"`
	EffectiveFrom    Timestamp `json:"effectiveFrom"`
	EffectiveTo      Timestamp `json:"effectiveTo"`
}

// CSVHeader returns the consent version column order.
func (ConsentVersion) CSVHeader() []string {
	return []string{"consent_version_id", "study_id", "version", "effectiveFrom", "effectiveTo"}
}

// CSVRecord returns the consent version as one CSV row.
func (v ConsentVersion) CSVRecord() []string {
	return []string{
		v.ConsentVersionID,
		v.StudyID,
		v.Version,
		v.EffectiveFrom.String(),
		v.EffectiveTo.String(),
	}
}

// ParticipantConsent records a participant signing a consent version, and
// optionally withdrawing from it later.
type ParticipantConsent struct {
	ParticipantConsentID string    `json:"participant_consent_id" gorm:"size:36;primaryKey"`
	ParticipantID        string    `json:"participant_id" gorm:"size:36;not null;index"`
	ConsentVersionID     string    `json:"consent_version_id" gorm:"size:36;not null;index"`
	SignedAt             Timestamp `json:"signedAt"`
	WithdrawnAt          Timestamp `json:"withdrawnAt"`
}

// CSVHeader returns the participant consent column order.
func (ParticipantConsent) CSVHeader() []string {
	return []string{"participant_consent_id", "participant_id", "consent_version_id", "signedAt", "withdrawnAt"}
}

// CSVRecord returns the participant consent as one CSV row.
func (c ParticipantConsent) CSVRecord() []string {
	return []string{
		c.ParticipantConsentID,
		c.ParticipantID,
		c.ConsentVersionID,
		c.SignedAt.String(),
		c.WithdrawnAt.String(),
	}
}
