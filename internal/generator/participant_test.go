package generator

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
)

var phonePattern = regexp.MustCompile(`^[2-9]\d{2}-[2-9]\d{2}-\d{4}$`)

func TestParticipantGeneratorShapesRows(t *testing.T) {
	opts := config.ParticipantOptions{Common: testCommon(200, 1)}
	gen := NewParticipantGenerator(opts, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 200)

	ref := opts.ReferenceDate
	active := 0
	for _, p := range rows {
		_, err := uuid.Parse(p.ParticipantID)
		require.NoError(t, err)

		// The widened birthday window lets recomputed ages land one
		// year either side of the drawn 18..65.
		require.GreaterOrEqual(t, p.Age, 17)
		require.LessOrEqual(t, p.Age, 66)
		require.False(t, p.DateOfBirth.IsZero())

		require.GreaterOrEqual(t, p.GPA, 2.0)
		require.LessOrEqual(t, p.GPA, 4.0)

		require.GreaterOrEqual(t, p.ClassYear, ref.Year())
		require.LessOrEqual(t, p.ClassYear, ref.Year()+5)

		require.Contains(t, p.Bio, p.Major)
		require.Regexp(t, phonePattern, p.Phone)

		at := strings.Index(p.Email, "@")
		require.Positive(t, at)
		require.Contains(t, emailDomains, p.Email[at+1:])

		require.False(t, p.CreatedAt.After(dayStart(ref)))
		require.False(t, p.CreatedAt.Before(dayStart(ref).AddDate(0, 0, -365)))
		require.False(t, p.UpdatedAt.Before(p.CreatedAt.Time))

		if p.Status == models.ParticipantStatusActive {
			active++
		}
	}
	// 78% weight on active; anything under half would mean a broken table.
	require.Greater(t, active, 100)
}

func TestParticipantGeneratorAgeMatchesBirthday(t *testing.T) {
	opts := config.ParticipantOptions{Common: testCommon(300, 7)}
	gen := NewParticipantGenerator(opts, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)

	ref := opts.ReferenceDate
	for _, p := range rows {
		dob := p.DateOfBirth.Time
		want := ref.Year() - dob.Year()
		if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
			want--
		}
		require.Equal(t, want, p.Age)
	}
}

func TestParticipantGeneratorDeterministic(t *testing.T) {
	opts := config.ParticipantOptions{Common: testCommon(50, 42)}

	first, err := NewParticipantGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := NewParticipantGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)

	opts.Seed = 43
	third, err := NewParticipantGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first, third)
}

func TestParticipantGeneratorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewParticipantGenerator(config.ParticipantOptions{Common: testCommon(10, 1)}, testLogger())
	_, err := gen.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
