package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/refdata"
)

func consentOptions(count int, seed int64) config.ParticipantConsentOptions {
	return config.ParticipantConsentOptions{
		Common:          testCommon(count, seed),
		ParticipantPool: 40,
		VersionPool:     30,
		WithdrawRate:    0.15,
		AttemptsPerRow:  10,
	}
}

func fileDriven(opts config.ParticipantConsentOptions) config.ParticipantConsentOptions {
	opts.ParticipantsFile = "participants.csv"
	opts.VersionsFile = "consent_versions.csv"
	return opts
}

func TestConsentGeneratorSyntheticWithdrawals(t *testing.T) {
	opts := consentOptions(300, 24)
	opts.WithdrawRate = 1
	gen := NewConsentGenerator(opts, nil, nil, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 300)

	refEnd := dayEnd(opts.ReferenceDate)
	signedFrom := dayStart(opts.ReferenceDate).AddDate(0, 0, -signedWindowDays)
	withdrawn := 0
	for _, c := range rows {
		require.False(t, c.SignedAt.IsZero())
		require.False(t, c.SignedAt.Before(signedFrom))
		require.False(t, c.SignedAt.After(refEnd))

		if c.WithdrawnAt.IsZero() {
			continue
		}
		withdrawn++
		require.True(t, c.WithdrawnAt.After(c.SignedAt.Time), "withdrawal not after signature")
		require.False(t, c.WithdrawnAt.After(refEnd))
		require.LessOrEqual(t, c.WithdrawnAt.Sub(c.SignedAt.Time), time.Duration(withdrawMaxDays)*24*time.Hour)
	}
	require.Greater(t, withdrawn, 290)
}

func TestConsentGeneratorNoWithdrawals(t *testing.T) {
	opts := consentOptions(100, 38)
	opts.WithdrawRate = 0
	rows, err := NewConsentGenerator(opts, nil, nil, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	for _, c := range rows {
		require.True(t, c.WithdrawnAt.IsZero())
	}
}

func TestConsentGeneratorFileDrivenWindows(t *testing.T) {
	opts := fileDriven(consentOptions(35, 29))
	opts.WithdrawRate = 0.5
	refStart := dayStart(opts.ReferenceDate)
	refEnd := dayEnd(opts.ReferenceDate)

	versions := []refdata.VersionRef{
		{ID: "v-closed", From: refStart.AddDate(0, 0, -100), To: refStart.AddDate(0, 0, -50)},
		{ID: "v-open", From: refStart.AddDate(0, 0, -50)},
		{ID: "v-future", From: refStart.AddDate(0, 0, 10), To: refStart.AddDate(0, 0, 40)},
		{ID: "v-mangled"},
	}
	gen := NewConsentGenerator(opts, idPool("part", 20), versions, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 35)

	for _, c := range rows {
		require.Contains(t, []string{"v-closed", "v-open"}, c.ConsentVersionID)

		var window refdata.VersionRef
		if c.ConsentVersionID == "v-closed" {
			window = versions[0]
		} else {
			window = versions[1]
		}
		last := refEnd
		if !window.To.IsZero() && window.To.Before(last) {
			last = window.To
		}

		require.False(t, c.SignedAt.Before(window.From))
		require.False(t, c.SignedAt.After(last))
		if !c.WithdrawnAt.IsZero() {
			require.True(t, c.WithdrawnAt.After(c.SignedAt.Time))
			require.False(t, c.WithdrawnAt.After(last))
		}
	}
}

func TestConsentGeneratorFileDrivenRequiresPools(t *testing.T) {
	opts := fileDriven(consentOptions(10, 3))

	_, err := NewConsentGenerator(opts, nil, []refdata.VersionRef{{ID: "v1", From: dayStart(opts.ReferenceDate)}}, testLogger()).Generate(context.Background())
	require.ErrorIs(t, err, ErrNoParticipants)

	futureOnly := []refdata.VersionRef{
		{ID: "v1", From: dayStart(opts.ReferenceDate).AddDate(0, 0, 30)},
		{ID: "v2"},
	}
	_, err = NewConsentGenerator(opts, idPool("part", 5), futureOnly, testLogger()).Generate(context.Background())
	require.ErrorIs(t, err, ErrNoUsableVersions)
}

func TestConsentGeneratorDuplicatePolicy(t *testing.T) {
	opts := fileDriven(consentOptions(10, 47))
	versions := []refdata.VersionRef{{ID: "v1", From: dayStart(opts.ReferenceDate).AddDate(0, 0, -30)}}
	participants := idPool("part", 2)

	rows, err := NewConsentGenerator(opts, participants, versions, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	opts.AllowDuplicates = true
	rows, err = NewConsentGenerator(opts, participants, versions, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 10)

	opts.AllowDuplicates = false
	opts.Strict = true
	_, err = NewConsentGenerator(opts, participants, versions, testLogger()).Generate(context.Background())
	require.ErrorIs(t, err, ErrTargetMissed)
}

func TestConsentGeneratorDeterministic(t *testing.T) {
	opts := consentOptions(150, 52)

	first, err := NewConsentGenerator(opts, nil, nil, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := NewConsentGenerator(opts, nil, nil, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
