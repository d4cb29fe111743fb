package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadParticipantsDefaults(t *testing.T) {
	opts, err := LoadParticipants(nil)
	require.NoError(t, err)

	require.Equal(t, 60, opts.Count)
	require.Equal(t, "participants.csv", opts.OutFile)
	require.False(t, opts.JSONOut)
	require.EqualValues(t, 1337, opts.Seed)
	require.Equal(t, time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), opts.ReferenceDate)
}

func TestLoadParticipantsFlagsOverride(t *testing.T) {
	opts, err := LoadParticipants([]string{
		"--n", "5", "--outfile", "people.json", "--seed", "7", "--reference-date", "2024-01-15",
	})
	require.NoError(t, err)

	require.Equal(t, 5, opts.Count)
	require.Equal(t, "people.json", opts.OutFile)
	require.EqualValues(t, 7, opts.Seed)
	require.Equal(t, 2024, opts.ReferenceDate.Year())
}

func TestEnvironmentFillsUnsetFlags(t *testing.T) {
	t.Setenv("FIXTUREGEN_SEED", "4242")
	t.Setenv("FIXTUREGEN_REFERENCE_DATE", "2023-06-01")

	opts, err := LoadStudies(nil)
	require.NoError(t, err)
	require.EqualValues(t, 4242, opts.Seed)
	require.Equal(t, time.June, opts.ReferenceDate.Month())
}

func TestChangedFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("FIXTUREGEN_SEED", "4242")

	opts, err := LoadStudies([]string{"--seed", "11"})
	require.NoError(t, err)
	require.EqualValues(t, 11, opts.Seed)
}

func TestInvalidReferenceDate(t *testing.T) {
	_, err := LoadRooms([]string{"--reference-date", "21-09-2025"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "reference date")
}

func TestCountMustBePositive(t *testing.T) {
	_, err := LoadParticipants([]string{"--n", "0"})
	require.Error(t, err)

	_, err = LoadPayments([]string{"--n", "-3"})
	require.Error(t, err)
}

func TestStudyResearchersAllowZeroCount(t *testing.T) {
	opts, err := LoadStudyResearchers(nil)
	require.NoError(t, err)
	require.Zero(t, opts.Count)
	require.Equal(t, "study.csv", opts.StudiesFile)
	require.Equal(t, "studies.csv", opts.AltStudiesFile)
	require.Equal(t, 300, opts.StudyPool)
	require.Equal(t, 500, opts.ResearcherPool)
}

func TestStudyResearchersClampTeamShape(t *testing.T) {
	opts, err := LoadStudyResearchers([]string{"--pi-per-study", "0", "--ra-min", "-2", "--ra-max", "-9"})
	require.NoError(t, err)

	require.Equal(t, 1, opts.PIPerStudy)
	require.Equal(t, 0, opts.RAMin)
	require.Equal(t, 1, opts.RAMax)

	opts, err = LoadStudyResearchers([]string{"--ra-min", "4", "--ra-max", "2"})
	require.NoError(t, err)
	require.Equal(t, 4, opts.RAMin)
	require.Equal(t, 4, opts.RAMax)
}

func TestWithdrawRateBounds(t *testing.T) {
	_, err := LoadParticipantConsents([]string{"--withdraw-rate", "1.5"})
	require.Error(t, err)

	opts, err := LoadParticipantConsents([]string{"--withdraw-rate", "0"})
	require.NoError(t, err)
	require.Zero(t, opts.WithdrawRate)
}

func TestParticipantConsentFilePairing(t *testing.T) {
	_, err := LoadParticipantConsents([]string{"--participants-file", "participants.csv"})
	require.Error(t, err, "versions-file must accompany participants-file")

	opts, err := LoadParticipantConsents([]string{
		"--participants-file", "participants.csv", "--versions-file", "versions.csv",
	})
	require.NoError(t, err)
	require.True(t, opts.FileDriven())

	opts, err = LoadParticipantConsents(nil)
	require.NoError(t, err)
	require.False(t, opts.FileDriven())
}

func TestConsentVersionBounds(t *testing.T) {
	_, err := LoadConsentVersions([]string{"--min-versions", "3", "--max-versions", "2"})
	require.Error(t, err)

	opts, err := LoadConsentVersions(nil)
	require.NoError(t, err)
	require.Equal(t, 1, opts.MinVersions)
	require.Equal(t, 4, opts.MaxVersions)
	require.InDelta(t, 0.7, opts.OpenEndedRate, 1e-9)
}

func TestSessionDefaults(t *testing.T) {
	opts, err := LoadSessions(nil)
	require.NoError(t, err)

	require.Equal(t, 500, opts.Count)
	require.Equal(t, "study.csv", opts.StudiesFile)
	require.Equal(t, "rooms.csv", opts.RoomsFile)
	require.Equal(t, 200, opts.StudyPool)
	require.Equal(t, 80, opts.RoomPool)
	require.Equal(t, 20, opts.PlacementRetries)
	require.False(t, opts.Strict)
}

func TestEnrollmentDefaults(t *testing.T) {
	opts, err := LoadEnrollments(nil)
	require.NoError(t, err)

	require.Equal(t, 1000, opts.Count)
	require.Equal(t, 1200, opts.ParticipantPool)
	require.Equal(t, 400, opts.SessionPool)
	require.Equal(t, 15, opts.AttemptsPerRow)
}
