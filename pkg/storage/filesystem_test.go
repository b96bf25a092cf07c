package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "exports"))
	require.NoError(t, err)

	path, err := store.Save("cse/timetable.ics", []byte("BEGIN:VCALENDAR"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "cse", "timetable.ics"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(body))

	path, err = store.Save("cse/timetable.ics", []byte("v2"))
	require.NoError(t, err)
	body, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(body))

	entries, err := os.ReadDir(filepath.Join(dir, "exports", "cse"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../outside.csv", []byte("x"))
	assert.Error(t, err)

	_, err = store.Save("/etc/passwd", []byte("x"))
	assert.Error(t, err)

	_, err = store.Path("")
	assert.Error(t, err)
}
