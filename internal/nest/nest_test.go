package nest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kanbatryoshka/internal/models"
)

// newMain returns a nest with a selected "Main" board
func newMain(t *testing.T) (*Nest, *models.Board) {
	t.Helper()
	n := New()
	b := n.CreateBoard("Main", "Default Board")
	require.True(t, n.SelectBoard(b.ID))
	return n, b
}

func TestNewNest(t *testing.T) {
	n := New()
	assert.Empty(t, n.Boards())
	assert.Nil(t, n.CurrentBoard())
	assert.Zero(t, n.Depth())
	assert.Empty(t, n.BoardPath())
}

func TestCreateAndSelectBoard(t *testing.T) {
	n := New()
	b := n.CreateBoard("Main", "desc")

	require.Len(t, n.Boards(), 1)
	assert.Same(t, b, n.Boards()[0])
	assert.Nil(t, n.CurrentBoard())

	assert.False(t, n.SelectBoard("missing"))
	assert.Nil(t, n.CurrentBoard())

	assert.True(t, n.SelectBoard(b.ID))
	assert.Same(t, b, n.CurrentBoard())
}

func TestNoCurrentBoard(t *testing.T) {
	n := New()
	assert.Nil(t, n.AddListToCurrentBoard("x"))
	assert.Nil(t, n.AddTaskToList("l", "x", ""))
	assert.False(t, n.RemoveListFromCurrentBoard("l"))
	assert.False(t, n.RemoveTaskFromList("l", "t"))
	assert.False(t, n.MoveTaskBetweenLists("t", "a", "b"))
	assert.False(t, n.ReorderTaskInList("l", "t", 0))
	assert.False(t, n.MoveListInCurrentBoard("l", 0))
	assert.False(t, n.RenameList("l", "x"))
	assert.False(t, n.UpdateTask("t", nil, nil))
	assert.False(t, n.NavigateToTaskBoard("l", "t"))
	assert.False(t, n.BackToParent())
	assert.False(t, n.TaskHasSubtasks("t"))
}

func TestNavigateAndBack(t *testing.T) {
	n, main := newMain(t)
	listID := main.Lists[0].ID
	task := n.AddTaskToList(listID, "T1", "")
	require.NotNil(t, task)

	assert.False(t, n.NavigateToTaskBoard("missing", task.ID))
	assert.False(t, n.NavigateToTaskBoard(listID, "missing"))
	assert.False(t, n.NavigateToTaskBoard(main.Lists[1].ID, task.ID))
	assert.Zero(t, n.Depth())

	require.True(t, n.NavigateToTaskBoard(listID, task.ID))
	assert.Same(t, task.Board, n.CurrentBoard())
	assert.Equal(t, []Frame{{BoardID: main.ID, ListID: listID, TaskID: task.ID}}, n.NavigationStack())

	require.True(t, n.BackToParent())
	assert.Same(t, main, n.CurrentBoard())
	assert.Zero(t, n.Depth())
	l, tid := n.ArrivedFrom()
	assert.Equal(t, listID, l)
	assert.Equal(t, task.ID, tid)

	assert.False(t, n.BackToParent())
}

func TestNavigationDepthAndPath(t *testing.T) {
	n, main := newMain(t)

	// Drill three levels deep, checking depth and path at each step.
	var previous []string
	for depth := 1; depth <= 3; depth++ {
		cur := n.CurrentBoard()
		listID := cur.Lists[0].ID
		task := n.AddTaskToList(listID, "level", "")
		require.NotNil(t, task)
		previous = append(previous, cur.ID)

		require.True(t, n.NavigateToTaskBoard(listID, task.ID))
		assert.Equal(t, depth, n.Depth())
		path := n.BoardPath()
		require.Len(t, path, n.Depth()+1)
		assert.Equal(t, n.CurrentBoard().Title, path[len(path)-1])
		assert.Equal(t, "Main", path[0])
	}

	for depth := 2; depth >= 0; depth-- {
		require.True(t, n.BackToParent())
		assert.Equal(t, depth, n.Depth())
		assert.Equal(t, previous[depth], n.CurrentBoard().ID)
		assert.Len(t, n.BoardPath(), depth+1)
	}
	assert.Same(t, main, n.CurrentBoard())
}

func TestBoardPathTitles(t *testing.T) {
	n, main := newMain(t)
	listID := main.Lists[0].ID
	task := n.AddTaskToList(listID, "Test Task", "")
	require.True(t, n.NavigateToTaskBoard(listID, task.ID))
	assert.Equal(t, []string{"Main", "Board: Test Task"}, n.BoardPath())

	sub := n.AddListToCurrentBoard("New list")
	subtask := n.AddTaskToList(sub.ID, "Subtask", "")
	require.True(t, n.NavigateToTaskBoard(sub.ID, subtask.ID))
	assert.Equal(t, []string{"Main", "Board: Test Task", "Board: Subtask"}, n.BoardPath())
}

func TestSelectBoardDoesNotTouchStack(t *testing.T) {
	n, main := newMain(t)
	other := n.CreateBoard("Other", "")
	task := n.AddTaskToList(main.Lists[0].ID, "T", "")
	require.True(t, n.NavigateToTaskBoard(main.Lists[0].ID, task.ID))

	require.True(t, n.SelectBoard(other.ID))
	assert.Equal(t, 1, n.Depth())

	require.True(t, n.JumpToBoard(other.ID))
	assert.Zero(t, n.Depth())
	assert.Len(t, n.BoardPath(), n.Depth()+1)
	assert.False(t, n.BackToParent())
}

func TestJumpToBoardRebuildsStack(t *testing.T) {
	n, main := newMain(t)
	side := n.CreateBoard("Side", "")
	todo := main.Lists[0]
	n.AddTaskToList(todo.ID, "T0", "")
	t1 := n.AddTaskToList(todo.ID, "T1", "")
	require.True(t, n.NavigateToTaskBoard(todo.ID, t1.ID))
	sub := n.AddListToCurrentBoard("Sub")
	s1 := n.AddTaskToList(sub.ID, "S1", "")
	require.True(t, n.NavigateToTaskBoard(sub.ID, s1.ID))
	drilled := n.NavigationStack()

	require.True(t, n.JumpToBoard(side.ID))
	require.Zero(t, n.Depth())

	assert.False(t, n.JumpToBoard("missing"))
	require.True(t, n.JumpToBoard(s1.Board.ID))
	assert.Equal(t, drilled, n.NavigationStack())
	assert.Equal(t, []string{"Main", "Board: T1", "Board: S1"}, n.BoardPath())
	assert.Len(t, n.BoardPath(), n.Depth()+1)

	require.True(t, n.BackToParent())
	assert.Same(t, t1.Board, n.CurrentBoard())
	l, tk := n.ArrivedFrom()
	assert.Equal(t, sub.ID, l)
	assert.Equal(t, s1.ID, tk)
	require.True(t, n.BackToParent())
	assert.Same(t, main, n.CurrentBoard())
}

func TestBackToParentAfterBoardDeleted(t *testing.T) {
	n, main := newMain(t)
	task := n.AddTaskToList(main.Lists[0].ID, "T", "")
	require.True(t, n.NavigateToTaskBoard(main.Lists[0].ID, task.ID))

	// Jump back, empty the board and delete it while the frame is still stacked.
	require.True(t, n.SelectBoard(main.ID))
	require.True(t, n.RemoveTaskFromList(main.Lists[0].ID, task.ID))
	other := n.CreateBoard("Other", "")
	require.True(t, n.SelectBoard(other.ID))
	require.True(t, n.DeleteBoard(main.ID))
	require.Equal(t, 1, n.Depth())

	assert.False(t, n.BackToParent())
	assert.Zero(t, n.Depth(), "stale frame is popped")
	assert.Same(t, other, n.CurrentBoard())
}

func TestDeleteBoard(t *testing.T) {
	n, main := newMain(t)
	task := n.AddTaskToList(main.Lists[0].ID, "T", "")

	assert.False(t, n.DeleteBoard("missing"))
	assert.False(t, n.DeleteBoard(main.ID), "board with tasks")
	assert.False(t, n.DeleteBoard(task.Board.ID), "nested board")

	task.Board.ParentTaskID = ""
	assert.False(t, n.DeleteBoard(task.Board.ID), "board still owned by a task")
	task.Board.ParentTaskID = task.ID

	require.True(t, n.RemoveTaskFromList(main.Lists[0].ID, task.ID))
	require.True(t, n.DeleteBoard(main.ID))
	assert.Nil(t, n.CurrentBoard())
	assert.Empty(t, n.Boards())
}

func TestTopLevelBoards(t *testing.T) {
	n, main := newMain(t)
	n.AddTaskToList(main.Lists[0].ID, "T", "")
	other := n.CreateBoard("Other", "")

	assert.Len(t, n.Boards(), 3)
	assert.Equal(t, []*models.Board{main, other}, n.TopLevelBoards())
}

func TestAddAndRemoveList(t *testing.T) {
	n, main := newMain(t)
	l := n.AddListToCurrentBoard("Backlog")
	require.NotNil(t, l)
	require.Len(t, main.Lists, 4)
	assert.Same(t, l, main.Lists[3])

	assert.True(t, n.RemoveListFromCurrentBoard(l.ID))
	assert.Len(t, main.Lists, 3)
	assert.True(t, n.RemoveListFromCurrentBoard("missing"))
}

func TestRemoveListRefusesNonEmpty(t *testing.T) {
	n, main := newMain(t)
	listID := main.Lists[0].ID
	task := n.AddTaskToList(listID, "T", "")

	assert.True(t, n.ListHasTasks(listID))
	assert.False(t, n.RemoveListFromCurrentBoard(listID))
	assert.Len(t, main.Lists, 3)

	require.True(t, n.RemoveTaskFromList(listID, task.ID))
	assert.True(t, n.RemoveListFromCurrentBoard(listID))
}

func TestAddTaskToList(t *testing.T) {
	n, main := newMain(t)
	assert.Nil(t, n.AddTaskToList("missing", "x", ""))

	task := n.AddTaskToList(main.Lists[0].ID, "Test Task Title", "Test Task Description")
	require.NotNil(t, task)
	require.Len(t, main.Lists[0].Tasks, 1)
	assert.Same(t, task, main.Lists[0].Tasks[0])
	assert.Equal(t, main.ID, task.ParentBoardID)
	assert.Equal(t, main.ID, task.Board.ParentBoardID)
	assert.Equal(t, task.ID, task.Board.ParentTaskID)

	nested, ok := n.Board(task.Board.ID)
	require.True(t, ok)
	assert.Same(t, task.Board, nested)
}

func TestRemoveTaskDropsNestedBoard(t *testing.T) {
	n, main := newMain(t)
	listID := main.Lists[0].ID
	task := n.AddTaskToList(listID, "T", "")

	assert.False(t, n.RemoveTaskFromList("missing", task.ID))
	assert.True(t, n.RemoveTaskFromList(listID, "missing"))

	require.True(t, n.RemoveTaskFromList(listID, task.ID))
	assert.Empty(t, main.Lists[0].Tasks)
	_, ok := n.Board(task.Board.ID)
	assert.False(t, ok)
}

func TestSubtaskGuardScenario(t *testing.T) {
	n, main := newMain(t)
	todo := main.Lists[0]
	require.Equal(t, "To Do", todo.Title)

	t1 := n.AddTaskToList(todo.ID, "T1", "")
	require.NotNil(t, t1)
	assert.False(t, n.TaskHasSubtasks(t1.ID))

	require.True(t, n.NavigateToTaskBoard(todo.ID, t1.ID))
	sub := n.AddListToCurrentBoard("Sub")
	require.NotNil(t, sub)
	require.NotNil(t, n.AddTaskToList(sub.ID, "T2", ""))
	require.True(t, n.BackToParent())

	assert.True(t, n.TaskHasSubtasks(t1.ID))
	assert.False(t, n.RemoveTaskFromList(todo.ID, t1.ID))
	assert.Len(t, todo.Tasks, 1)
}

func TestTaskHasSubtasksSearchesNestedBoards(t *testing.T) {
	n, main := newMain(t)
	listID := main.Lists[0].ID
	outer := n.AddTaskToList(listID, "outer", "")
	require.True(t, n.NavigateToTaskBoard(listID, outer.ID))
	inner := n.AddTaskToList(n.CurrentBoard().Lists[0].ID, "inner", "")
	require.True(t, n.NavigateToTaskBoard(n.CurrentBoard().Lists[0].ID, inner.ID))
	n.AddTaskToList(n.CurrentBoard().Lists[0].ID, "leaf", "")
	require.True(t, n.BackToParent())
	require.True(t, n.BackToParent())

	found, ok := n.FindTask(inner.ID)
	require.True(t, ok)
	assert.Same(t, inner, found)
	assert.True(t, n.TaskHasSubtasks(inner.ID))
	assert.False(t, n.TaskHasSubtasks("missing"))
}

func TestMoveTaskBetweenLists(t *testing.T) {
	n, main := newMain(t)
	src, dst := main.Lists[0], main.Lists[1]
	a := n.AddTaskToList(src.ID, "a", "")
	n.AddTaskToList(dst.ID, "b", "")
	total := main.TaskCount()

	assert.False(t, n.MoveTaskBetweenLists(a.ID, "missing", dst.ID))
	assert.False(t, n.MoveTaskBetweenLists(a.ID, src.ID, "missing"))
	assert.False(t, n.MoveTaskBetweenLists("missing", src.ID, dst.ID))
	assert.False(t, n.MoveTaskBetweenLists(a.ID, dst.ID, src.ID), "task is not in source")

	require.True(t, n.MoveTaskBetweenLists(a.ID, src.ID, dst.ID))
	assert.Equal(t, total, main.TaskCount())
	assert.Empty(t, src.Tasks)
	require.Len(t, dst.Tasks, 2)
	assert.Same(t, a, dst.Tasks[1], "moved task lands at the end")
}

func taskIDs(l *models.List) []string {
	ids := make([]string, len(l.Tasks))
	for i, t := range l.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestReorderTaskInList(t *testing.T) {
	n, main := newMain(t)
	l := main.Lists[0]
	a := n.AddTaskToList(l.ID, "a", "")
	b := n.AddTaskToList(l.ID, "b", "")
	c := n.AddTaskToList(l.ID, "c", "")
	before := taskIDs(l)

	assert.False(t, n.ReorderTaskInList("missing", a.ID, 0))
	assert.False(t, n.ReorderTaskInList(l.ID, "missing", 0))

	require.True(t, n.ReorderTaskInList(l.ID, a.ID, 0))
	assert.Equal(t, before, taskIDs(l), "unchanged index is a no-op")

	require.True(t, n.ReorderTaskInList(l.ID, a.ID, 2))
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, taskIDs(l))
	require.True(t, n.ReorderTaskInList(l.ID, a.ID, 0))
	assert.Equal(t, before, taskIDs(l))

	require.True(t, n.ReorderTaskInList(l.ID, b.ID, 99))
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, taskIDs(l))
	require.True(t, n.ReorderTaskInList(l.ID, b.ID, -5))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, taskIDs(l))
}

func TestMoveListInCurrentBoard(t *testing.T) {
	n, main := newMain(t)
	first := main.Lists[0]

	assert.False(t, n.MoveListInCurrentBoard("missing", 1))

	require.True(t, n.MoveListInCurrentBoard(first.ID, 99))
	require.Len(t, main.Lists, 3)
	assert.Same(t, first, main.Lists[2])

	require.True(t, n.MoveListInCurrentBoard(first.ID, 2))
	assert.Same(t, first, main.Lists[2])

	require.True(t, n.MoveListInCurrentBoard(first.ID, 0))
	assert.Same(t, first, main.Lists[0])
	assert.Equal(t, "In Progress", main.Lists[1].Title)
}

func TestUpdateTask(t *testing.T) {
	n, main := newMain(t)
	task := n.AddTaskToList(main.Lists[0].ID, "old", "desc")

	title := "new"
	assert.False(t, n.UpdateTask("missing", &title, nil))
	require.True(t, n.UpdateTask(task.ID, &title, nil))
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "desc", task.Description)
	assert.Equal(t, "Board: new", task.Board.Title)

	desc := "changed"
	require.True(t, n.UpdateTask(task.ID, nil, &desc))
	assert.Equal(t, "Board for task: changed", task.Board.Description)
}

func TestRenameList(t *testing.T) {
	n, main := newMain(t)
	assert.False(t, n.RenameList("missing", "x"))
	require.True(t, n.RenameList(main.Lists[1].ID, "Doing"))
	assert.Equal(t, "Doing", main.Lists[1].Title)
}
