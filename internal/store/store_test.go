package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "attendance.json"))
	require.NoError(t, err)
	return s
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s := tempStore(t)
	assert.Empty(t, s.Profiles())
	assert.False(t, s.Exists())
}

func TestRecordAttendance_DedupByTimestamp(t *testing.T) {
	s := tempStore(t)
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, s.RecordAttendance("Alice", "a@x.com", ts, "standup"))
	assert.False(t, s.RecordAttendance("Alice", "a@x.com", ts, "retro"))

	profile, ok := s.Lookup("a@x.com")
	require.True(t, ok)
	require.Len(t, profile.Events, 1)
	// Source is not part of event identity; the first recording wins.
	assert.Equal(t, "standup", profile.Events[0].Source)
}

func TestRecordAttendance_EventsSortedAscending(t *testing.T) {
	s := tempStore(t)
	later := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s.RecordAttendance("Alice", "a@x.com", later, "")
	s.RecordAttendance("Alice", "a@x.com", earlier, "")

	profile, _ := s.Lookup("a@x.com")
	require.Len(t, profile.Events, 2)
	assert.True(t, profile.Events[0].Timestamp.Before(profile.Events[1].Timestamp))
}

func TestGetOrCreate_KeysByLowerCasedEmail(t *testing.T) {
	s := tempStore(t)
	s.GetOrCreate("Alice", "Alice@X.com")

	profile, ok := s.Lookup("alice@x.COM")
	require.True(t, ok)
	// Original casing is kept for display; the key is normalized.
	assert.Equal(t, "Alice@X.com", profile.Email)

	doc := s.Document()
	_, ok = doc["alice@x.com"]
	assert.True(t, ok)
}

func TestGetOrCreate_NameReconciliation(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		incoming string
		want     string
	}{
		{name: "blank stored adopts new", stored: "", incoming: "Alice", want: "Alice"},
		{name: "case-only change suppressed", stored: "Alice", incoming: "alice", want: "Alice"},
		{name: "different name wins", stored: "Alice", incoming: "Alicia", want: "Alicia"},
		{name: "blank never overwrites", stored: "Alice", incoming: "", want: "Alice"},
		{name: "whitespace never overwrites", stored: "Alice", incoming: "   ", want: "Alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			s.GetOrCreate(tt.stored, "a@x.com")
			profile := s.GetOrCreate(tt.incoming, "a@x.com")
			assert.Equal(t, tt.want, profile.Name)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.json")
	s, err := Open(path)
	require.NoError(t, err)

	s.RecordAttendance("Alice", "a@x.com", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "standup")
	s.RecordAttendance("Alice", "a@x.com", time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC), "")
	s.RecordAttendance("Bob", "B@x.com", time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC), "standup")
	require.NoError(t, s.Save())

	reloaded, err := Open(path)
	require.NoError(t, err)

	require.Len(t, reloaded.Profiles(), 2)
	alice, ok := reloaded.Lookup("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	require.Len(t, alice.Events, 2)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), alice.Events[0].Timestamp)
	assert.Equal(t, "standup", alice.Events[0].Source)
	assert.Equal(t, "", alice.Events[1].Source)

	bob, ok := reloaded.Lookup("b@x.com")
	require.True(t, ok)
	assert.Equal(t, "B@x.com", bob.Email)
}

func TestSave_OmitsBlankSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.RecordAttendance("Alice", "a@x.com", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "")
	require.NoError(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"source"`)
	assert.Contains(t, string(data), `"timestamp": "2024-03-01T09:00:00"`)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestLoad_MalformedDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "not json"},
		{name: "wrong shape", content: `["a@x.com"]`},
		{
			name:    "missing name",
			content: `{"a@x.com": {"email": "a@x.com", "events": []}}`,
		},
		{
			name:    "key does not match email",
			content: `{"b@x.com": {"name": "Alice", "email": "a@x.com", "events": []}}`,
		},
		{
			name:    "key not lower-cased",
			content: `{"A@x.com": {"name": "Alice", "email": "A@x.com", "events": []}}`,
		},
		{
			name:    "event missing timestamp",
			content: `{"a@x.com": {"name": "Alice", "email": "a@x.com", "events": [{"source": "x"}]}}`,
		},
		{
			name:    "bad timestamp format",
			content: `{"a@x.com": {"name": "Alice", "email": "a@x.com", "events": [{"timestamp": "2024-03-01 09:00:00"}]}}`,
		},
		{
			name:    "unexpected field",
			content: `{"a@x.com": {"name": "Alice", "email": "a@x.com", "nickname": "Al", "events": []}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "attendance.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Open(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReplacesInMemoryState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.RecordAttendance("Alice", "a@x.com", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "")
	require.NoError(t, s.Save())

	s.RecordAttendance("Bob", "b@x.com", time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC), "")
	require.NoError(t, s.Load())

	_, ok := s.Lookup("b@x.com")
	assert.False(t, ok)
}

func TestLoad_ResortsEventsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.json")
	content := `{"a@x.com": {"name": "Alice", "email": "a@x.com", "events": [
		{"timestamp": "2024-03-02T09:00:00"},
		{"timestamp": "2024-03-01T09:00:00"}
	]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	profile, _ := s.Lookup("a@x.com")
	require.Len(t, profile.Events, 2)
	assert.True(t, profile.Events[0].Timestamp.Before(profile.Events[1].Timestamp))
}

func TestIdempotentImport(t *testing.T) {
	s := tempStore(t)
	rows := []struct {
		name, email string
		ts          time.Time
	}{
		{"Alice", "a@x.com", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"Alice", "a@x.com", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
		{"Bob", "b@x.com", time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)},
	}

	for i := 0; i < 2; i++ {
		for _, row := range rows {
			s.RecordAttendance(row.name, row.email, row.ts, "weekly")
		}
	}

	require.Len(t, s.Profiles(), 2)
	alice, _ := s.Lookup("a@x.com")
	bob, _ := s.Lookup("b@x.com")
	assert.Len(t, alice.Events, 2)
	assert.Len(t, bob.Events, 1)
}
