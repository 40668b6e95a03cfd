package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kanbatryoshka/internal/db"
	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func sample(t *testing.T) *nest.Nest {
	t.Helper()
	n := nest.New()
	b := n.CreateBoard("Main", "")
	require.True(t, n.SelectBoard(b.ID))
	task := n.AddTaskToList(b.Lists[0].ID, "T1", "")
	require.True(t, n.NavigateToTaskBoard(b.Lists[0].ID, task.ID))
	return n
}

func TestOpenPicksBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(filepath.Join(dir, "nest.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(filepath.Join(dir, "nest.db"))
	require.NoError(t, err)
	assert.IsType(t, &db.DB{}, s)
	require.NoError(t, s.Close())
}

func TestFileStoreMissing(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "none.json")}
	assert.ErrorIs(t, s.Load(nest.New()), nest.ErrNoDocument)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "nest.json")
	s := &FileStore{Path: path}
	n := sample(t)
	require.NoError(t, s.Save(n))

	restored := nest.New()
	require.NoError(t, s.Load(restored))
	assert.Equal(t, n.Serialize(), restored.Serialize())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file is renamed away")
	assert.Equal(t, "nest.json", entries[0].Name())
}

func TestFileStoreCorruptKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"boards": [{"id": "x"}], "current_board_id": "missing"}`), 0o644))

	n := sample(t)
	before := n.Serialize()
	err := (&FileStore{Path: path}).Load(n)
	require.Error(t, err)
	assert.ErrorIs(t, err, nest.ErrMalformed)
	assert.Equal(t, before, n.Serialize())
}
