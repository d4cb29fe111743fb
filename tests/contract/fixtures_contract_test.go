package contract_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/generator"
	"github.com/studyflow/fixturegen/internal/sink"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

// writeAndValidate checks the bytes the JSON sink actually writes, not the
// in-memory rows, so marshalling slips surface here too.
func writeAndValidate[T any](t *testing.T, schema *jsonschema.Schema, rows []T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, sink.WriteJSON(path, rows))

	body, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func contractCommon(count int, seed int64) config.Common {
	return config.Common{
		Count:         count,
		OutFile:       "fixtures.json",
		JSONOut:       true,
		Seed:          seed,
		ReferenceDate: time.Date(2025, time.September, 21, 0, 0, 0, 0, time.UTC),
	}
}

func TestParticipantFixturesContract(t *testing.T) {
	schema := compileSchema(t, "participants.schema.json")

	gen := generator.NewParticipantGenerator(config.ParticipantOptions{Common: contractCommon(40, 7)}, zerolog.Nop())
	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 40)

	writeAndValidate(t, schema, rows)
}

func TestSessionFixturesContract(t *testing.T) {
	schema := compileSchema(t, "sessions.schema.json")

	opts := config.SessionOptions{
		Common:           contractCommon(60, 7),
		StudyPool:        40,
		RoomPool:         20,
		PlacementRetries: 20,
	}
	gen := generator.NewSessionGenerator(opts, nil, nil, zerolog.Nop())
	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 60)

	writeAndValidate(t, schema, rows)
}

func TestEnrollmentFixturesContract(t *testing.T) {
	schema := compileSchema(t, "enrollments.schema.json")

	opts := config.EnrollmentOptions{
		Common:          contractCommon(80, 7),
		ParticipantPool: 200,
		SessionPool:     60,
		AttemptsPerRow:  15,
	}
	gen := generator.NewEnrollmentGenerator(opts, nil, nil, zerolog.Nop())
	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 80)

	writeAndValidate(t, schema, rows)
}

func TestPaymentFixturesContract(t *testing.T) {
	schema := compileSchema(t, "payments.schema.json")

	opts := config.PaymentOptions{
		Common:         contractCommon(80, 7),
		FallbackPool:   2000,
		AttemptsPerRow: 10,
	}
	gen := generator.NewPaymentGenerator(opts, nil, zerolog.Nop())
	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 80)

	writeAndValidate(t, schema, rows)
}

func TestParticipantConsentFixturesContract(t *testing.T) {
	schema := compileSchema(t, "participant_consents.schema.json")

	opts := config.ParticipantConsentOptions{
		Common:          contractCommon(80, 7),
		ParticipantPool: 200,
		VersionPool:     60,
		WithdrawRate:    0.5,
		AttemptsPerRow:  10,
	}
	gen := generator.NewConsentGenerator(opts, nil, nil, zerolog.Nop())
	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 80)

	writeAndValidate(t, schema, rows)
}
