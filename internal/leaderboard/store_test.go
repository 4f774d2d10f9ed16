package leaderboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "leaderboard.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Exists())
	assert.Equal(t, Board{}, s.Load())
}

func TestLoadEmptyAndCorruptFiles(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"whitespace": " \n",
		"garbage":    "{not json",
		"object":     `{"name":"AA"}`,
		"null":       "null",
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

			assert.Equal(t, Board{}, s.Load())
		})
	}
}

func TestSaveWritesNormalizedPrettyJSON(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Board{entry("LOW", 1), entry("HIGH-É", 9)}))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(raw)

	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"name\": \"HIGH-É\""), text)
	assert.Contains(t, text, `"date": "2026-10-19T12:00:00Z"`)
	assert.Equal(t, Board{entry("HIGH-É", 9), entry("LOW", 1)}, s.Load())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Board{entry("AA", 1)}))
	require.NoError(t, s.Save(Board{entry("AA", 2)}))

	files, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "leaderboard.json", files[0].Name())
}

func TestSaveFailsIntoMissingDirectory(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing", "leaderboard.json"))

	assert.Error(t, s.Save(Board{}))
	assert.Equal(t, Board{}, s.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	board := Normalize(Board{entry("A", 3), entry("B", 2), entry("C", 1)})
	require.NoError(t, s.Save(board))

	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save(s.Load()))

	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoadReadsZonelessDates(t *testing.T) {
	s := newTestStore(t)
	legacy := `[
  {"name": "AA", "score": 100, "level": 2, "date": "2025-01-02T03:04:05.678901"}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0o644))

	board := s.Load()

	require.Len(t, board, 1)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 678901000, time.UTC), board[0].Date.Time)
	assert.Equal(t, 2, board[0].Level)
}

func TestLoadKeepsEntriesWithOddDates(t *testing.T) {
	s := newTestStore(t)
	mixed := `[
  {"name": "AA", "score": 900, "level": 1, "date": "2025-01-02 03:04:05"},
  {"name": "BB", "score": 800, "level": 1, "date": "2025-01-02T03:04:05"},
  {"name": "DD", "score": 700, "level": 1, "date": "last tuesday"},
  {"name": "EE", "score": 600, "level": 1, "date": 1735787045}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(mixed), 0o644))

	board := s.Load()

	require.Len(t, board, 4)
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, want, board[0].Date.Time)
	assert.Equal(t, want, board[1].Date.Time)
	assert.True(t, board[2].Date.IsZero())
	assert.True(t, board[3].Date.IsZero())
}

func TestSubmitAfterOddDateKeepsExistingEntries(t *testing.T) {
	svc, store, _ := newTestService(t)
	legacy := `[
  {"name": "AA", "score": 900, "level": 1, "date": "2025-01-02 03:04:05"},
  {"name": "BB", "score": 800, "level": 1, "date": "2025-01-02T03:04:05"}
]`
	require.NoError(t, os.WriteFile(store.Path(), []byte(legacy), 0o644))

	board, _ := svc.Submit(entry("CC", 1))

	require.Len(t, board, 3)
	assert.Equal(t, []string{"AA", "BB", "CC"}, []string{board[0].Name, board[1].Name, board[2].Name})
}
