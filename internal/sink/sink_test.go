package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/database"
	"github.com/studyflow/fixturegen/internal/models"
)

func TestResolve(t *testing.T) {
	require.Equal(t, FormatCSV, Resolve("participants.csv", false))
	require.Equal(t, FormatCSV, Resolve("participants.out", false))
	require.Equal(t, FormatJSON, Resolve("participants.json", false))
	require.Equal(t, FormatJSON, Resolve("participants.csv", true), "explicit flag wins")
	require.Equal(t, FormatSQLite, Resolve("participants.db", false))
	require.Equal(t, FormatSQLite, Resolve("participants.sqlite3", false))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payments.csv")
	rows := []models.Payment{
		{ParticipantID: "p-1", SessionID: "x-1", Amount: 25, Method: models.PaymentMethodCash, Status: models.PaymentStatusPaid},
		{ParticipantID: "p-2", SessionID: "x-2", Amount: 0, Method: models.PaymentMethodNone, Status: models.PaymentStatusVoid},
	}
	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, models.Payment{}.CSVHeader(), records[0])
	require.Equal(t, []string{"p-1", "x-1", "25", "cash", "paid"}, records[1])
	require.Equal(t, []string{"p-2", "x-2", "0", "none", "void"}, records[2])
}

func TestWriteCSVEmptyKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.csv")
	require.NoError(t, WriteCSV(path, []models.Room{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "name,building,capacity\n", string(data))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	rows := []models.Room{{Name: "Lab 7", Building: "Watson Hall", Capacity: 24}}
	require.NoError(t, WriteJSON(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.Room
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, rows, got)
}

func TestWriteJSONEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	var rows []models.Room
	require.NoError(t, WriteJSON(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.db")
	rows := []models.Room{
		{Name: "Lab 7", Building: "Watson Hall", Capacity: 24},
		{Name: "Seminar 210", Building: "Mercer Annex", Capacity: 16},
	}
	require.NoError(t, WriteSQLite(path, rows))

	db, err := database.Open(path)
	require.NoError(t, err)
	defer database.Close(db)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	require.EqualValues(t, 2, count)

	var got models.Room
	require.NoError(t, db.Where("building = ?", "Watson Hall").First(&got).Error)
	require.Equal(t, rows[0], got)
}

func TestWriteSQLiteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.db")
	require.NoError(t, WriteSQLite(path, []models.Room{{Name: "Lab 1", Building: "Old", Capacity: 10}}))
	require.NoError(t, WriteSQLite(path, []models.Room{{Name: "Lab 2", Building: "New", Capacity: 12}}))

	db, err := database.Open(path)
	require.NoError(t, err)
	defer database.Close(db)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(Format("yaml"), filepath.Join(t.TempDir(), "rooms.yaml"), []models.Room{})
	require.ErrorIs(t, err, ErrUnknownFormat)
}
