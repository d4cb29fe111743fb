package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
)

func TestRoomGeneratorUniquePairs(t *testing.T) {
	opts := config.RoomOptions{Common: testCommon(500, 11)}
	gen := NewRoomGenerator(opts, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 500)

	seen := make(map[pair]bool, len(rows))
	for _, r := range rows {
		key := pair{r.Building, r.Name}
		require.False(t, seen[key], "duplicate room %s / %s", r.Building, r.Name)
		seen[key] = true

		require.Contains(t, buildings, r.Building)
		require.NotEmpty(t, r.Name)
		require.GreaterOrEqual(t, r.Capacity, 10)
		require.LessOrEqual(t, r.Capacity, 300)
	}
}

func TestRoomGeneratorDeterministic(t *testing.T) {
	opts := config.RoomOptions{Common: testCommon(120, 5)}

	first, err := NewRoomGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := NewRoomGenerator(opts, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
