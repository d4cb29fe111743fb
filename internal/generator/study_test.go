package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
)

func TestStudyGeneratorShapesRows(t *testing.T) {
	opts := config.StudyOptions{Common: testCommon(150, 3)}
	gen := NewStudyGenerator(opts, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 150)

	ref := opts.ReferenceDate
	for _, s := range rows {
		require.NotEmpty(t, s.StudyID)
		require.NotEmpty(t, s.Title)
		require.Contains(t, s.Description, "study uses a")
		require.Contains(t, s.Description, "withdraw at any time")

		require.Contains(t, studyMinAges, s.MinAge)
		require.GreaterOrEqual(t, s.MaxAge, s.MinAge)
		require.GreaterOrEqual(t, s.MinGPA, 2.0)
		require.LessOrEqual(t, s.MinGPA, 3.5)
		require.Contains(t, studyCooldowns, s.CooldownDays)

		require.False(t, s.CreatedAt.After(dayStart(ref)))
		require.False(t, s.CreatedAt.Before(dayStart(ref).AddDate(0, 0, -540)))
		require.False(t, s.UpdatedAt.Before(s.CreatedAt.Time))
	}
}

func TestStudyGeneratorDeterministic(t *testing.T) {
	opts := config.StudyOptions{Common: testCommon(40, 99)}

	first, err := NewStudyGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := NewStudyGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
