package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "data", "nest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleNest(t *testing.T) *nest.Nest {
	t.Helper()
	n := nest.New()
	main := n.CreateBoard("Main", "")
	n.CreateBoard("Side", "")
	require.True(t, n.SelectBoard(main.ID))
	todo := main.Lists[0]
	t1 := n.AddTaskToList(todo.ID, "T1", "first")
	n.AddTaskToList(todo.ID, "T2", "")
	require.True(t, n.NavigateToTaskBoard(todo.ID, t1.ID))
	sub := n.AddListToCurrentBoard("Sub")
	n.AddTaskToList(sub.ID, "S1", "")
	return n
}

func TestLoadEmpty(t *testing.T) {
	database := openTemp(t)
	err := database.Load(nest.New())
	assert.ErrorIs(t, err, nest.ErrNoDocument)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	database := openTemp(t)
	n := sampleNest(t)
	require.NoError(t, database.Save(n))

	restored := nest.New()
	require.NoError(t, database.Load(restored))

	assert.Equal(t, n.Serialize(), restored.Serialize())
	assert.Equal(t, n.BoardPath(), restored.BoardPath())
	assert.Equal(t, n.NavigationStack(), restored.NavigationStack())

	boards, err := boardCount(database)
	require.NoError(t, err)
	assert.Equal(t, len(n.Boards()), boards)
	tasks, err := taskCount(database)
	require.NoError(t, err)
	assert.Equal(t, 3, tasks)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	database := openTemp(t)
	n := sampleNest(t)
	require.NoError(t, database.Save(n))

	require.True(t, n.BackToParent())
	todo := n.CurrentBoard().Lists[0]
	t2 := todo.Tasks[1]
	require.True(t, n.RemoveTaskFromList(todo.ID, t2.ID))
	require.NoError(t, database.Save(n))

	restored := nest.New()
	require.NoError(t, database.Load(restored))
	assert.Equal(t, n.Serialize(), restored.Serialize())
	assert.Zero(t, restored.Depth())

	tasks, err := taskCount(database)
	require.NoError(t, err)
	assert.Equal(t, 2, tasks)
}

func TestSettings(t *testing.T) {
	database := openTemp(t)
	v, err := getSetting(database, "theme")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, setSetting(database, "theme", "tokyo"))
	require.NoError(t, setSetting(database, "theme", "night"))
	v, err = getSetting(database, "theme")
	require.NoError(t, err)
	assert.Equal(t, "night", v)
}
