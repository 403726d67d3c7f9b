package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollbook/internal/store"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	// Persistent flag state leaks between executions; reset it.
	storeFile = ""
	importSource = ""
	exportOutput = ""
	return err
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "attendance.json")
	exportPath := filepath.Join(dir, "export.csv")
	csv := "Name,Email,Date\nAlice,a@x.com,2024-03-01 09:00\nBob,b@x.com,2024-03-01 09:05\n"
	require.NoError(t, os.WriteFile(exportPath, []byte(csv), 0o644))

	err := runCLI(t, "import", exportPath, "--store", storePath, "--source", "standup")
	require.NoError(t, err)

	st, err := store.Open(storePath)
	require.NoError(t, err)
	require.Len(t, st.Profiles(), 2)
	alice, ok := st.Lookup("a@x.com")
	require.True(t, ok)
	require.Len(t, alice.Events, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), alice.Events[0].Timestamp)
	assert.Equal(t, "standup", alice.Events[0].Source)
}

func TestImportCommand_BadTimestampLeavesStoreUntouched(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "attendance.json")
	exportPath := filepath.Join(dir, "export.csv")
	csv := "Name,Email,Date\nAlice,a@x.com,not-a-date\n"
	require.NoError(t, os.WriteFile(exportPath, []byte(csv), 0o644))

	err := runCLI(t, "import", exportPath, "--store", storePath)
	require.Error(t, err)

	_, statErr := os.Stat(storePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportCommand_Reimport(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "attendance.json")
	exportPath := filepath.Join(dir, "export.csv")
	csv := "Name,Email,Date\nAlice,a@x.com,2024-03-01 09:00\n"
	require.NoError(t, os.WriteFile(exportPath, []byte(csv), 0o644))

	require.NoError(t, runCLI(t, "import", exportPath, "--store", storePath))
	require.NoError(t, runCLI(t, "import", exportPath, "--store", storePath))

	st, err := store.Open(storePath)
	require.NoError(t, err)
	alice, ok := st.Lookup("a@x.com")
	require.True(t, ok)
	assert.Len(t, alice.Events, 1)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "attendance.json")
	outPath := filepath.Join(dir, "out.json")

	st, err := store.Open(storePath)
	require.NoError(t, err)
	st.RecordAttendance("Alice", "a@x.com", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "standup")
	require.NoError(t, st.Save())

	require.NoError(t, runCLI(t, "export", "--store", storePath, "--output", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a@x.com"`)
	assert.Contains(t, string(data), `"timestamp": "2024-03-01T09:00:00"`)
}
