package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kanbatryoshka/internal/models"
	"github.com/tgienger/kanbatryoshka/internal/nest"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func press(t *testing.T, v *BoardView, msgs ...tea.KeyMsg) tea.Msg {
	t.Helper()
	var last tea.Cmd
	for _, m := range msgs {
		_, last = v.Update(m)
	}
	if last == nil {
		return nil
	}
	return last()
}

func setupBoard(t *testing.T) (*nest.Nest, *models.Board) {
	t.Helper()
	n := nest.New()
	b := n.CreateBoard("Main", "")
	require.True(t, n.SelectBoard(b.ID))
	require.NotNil(t, n.AddTaskToList(b.Lists[0].ID, "first", ""))
	require.NotNil(t, n.AddTaskToList(b.Lists[0].ID, "second", ""))
	return n, b
}

func TestBoardViewDrillDownAndBack(t *testing.T) {
	n, b := setupBoard(t)
	v := NewBoardView(n)

	msg := press(t, v, runes("j"), enter)
	assert.IsType(t, SaveRequested{}, msg)
	assert.Equal(t, 1, n.Depth())
	assert.Equal(t, "Board: second", n.CurrentBoard().Title)

	l, tk := v.Cursor()
	assert.Equal(t, 0, l)
	assert.Equal(t, 0, tk)

	press(t, v, esc)
	assert.Equal(t, b.ID, n.CurrentBoard().ID)
	l, tk = v.Cursor()
	assert.Equal(t, 0, l)
	assert.Equal(t, 1, tk, "cursor returns to the task we came from")

	msg = press(t, v, esc)
	assert.IsType(t, BackToBoards{}, msg)
}

func TestBoardViewRefusesDeletingTaskWithSubtasks(t *testing.T) {
	n, b := setupBoard(t)
	first := b.Lists[0].Tasks[0]
	require.NotNil(t, n.AddTaskToList(b.Lists[0].ID, "x", ""))
	require.True(t, n.NavigateToTaskBoard(b.Lists[0].ID, first.ID))
	require.NotNil(t, n.AddTaskToList(n.CurrentBoard().Lists[0].ID, "sub", ""))
	require.True(t, n.BackToParent())

	v := NewBoardView(n)
	press(t, v, runes("d"))
	assert.Equal(t, modeNormal, v.mode)
	assert.Contains(t, v.status, "subtasks")
	assert.Len(t, b.Lists[0].Tasks, 3)

	press(t, v, runes("j"), runes("d"))
	assert.Equal(t, modeConfirmDelete, v.mode)
	msg := press(t, v, runes("y"))
	assert.IsType(t, SaveRequested{}, msg)
	assert.Len(t, b.Lists[0].Tasks, 2)
}

func TestBoardViewRefusesDeletingNonEmptyList(t *testing.T) {
	n, b := setupBoard(t)
	v := NewBoardView(n)

	press(t, v, runes("D"))
	assert.Equal(t, modeNormal, v.mode)
	assert.Len(t, b.Lists, 3)

	press(t, v, runes("l"), runes("D"), runes("y"))
	assert.Len(t, b.Lists, 2)
	assert.Equal(t, "To Do", b.Lists[0].Title)
}

func TestBoardViewMovesTasks(t *testing.T) {
	n, b := setupBoard(t)
	v := NewBoardView(n)
	first, second := b.Lists[0].Tasks[0], b.Lists[0].Tasks[1]

	press(t, v, runes("J"))
	assert.Equal(t, []*models.Task{second, first}, b.Lists[0].Tasks)
	_, tk := v.Cursor()
	assert.Equal(t, 1, tk)

	press(t, v, runes("L"))
	assert.Equal(t, []*models.Task{second}, b.Lists[0].Tasks)
	assert.Equal(t, []*models.Task{first}, b.Lists[1].Tasks)
	l, tk := v.Cursor()
	assert.Equal(t, 1, l)
	assert.Equal(t, 0, tk)

	press(t, v, runes(">"))
	assert.Equal(t, "In Progress", b.Lists[2].Title)
	l, _ = v.Cursor()
	assert.Equal(t, 2, l)
}

func TestBoardViewTaskForm(t *testing.T) {
	n, b := setupBoard(t)
	v := NewBoardView(n)

	press(t, v, runes("n"))
	require.Equal(t, modeNewTask, v.mode)
	msg := press(t, v, runes("third"), ctrlS)
	assert.IsType(t, SaveRequested{}, msg)
	require.Len(t, b.Lists[0].Tasks, 3)
	assert.Equal(t, "third", b.Lists[0].Tasks[2].Title)
	_, tk := v.Cursor()
	assert.Equal(t, 2, tk)

	press(t, v, runes("e"))
	require.Equal(t, modeEditTask, v.mode)
	press(t, v, runes("!"), ctrlS)
	assert.Equal(t, "third!", b.Lists[0].Tasks[2].Title)
	assert.Equal(t, "Board: third!", b.Lists[0].Tasks[2].Board.Title)

	press(t, v, runes("n"), esc)
	assert.Equal(t, modeNormal, v.mode)
	assert.Len(t, b.Lists[0].Tasks, 3)
}

func TestBoardViewListForm(t *testing.T) {
	n, b := setupBoard(t)
	v := NewBoardView(n)

	press(t, v, runes("N"), runes("Later"), enter, enter)
	require.Len(t, b.Lists, 4)
	assert.Equal(t, "Later", b.Lists[3].Title)
	l, _ := v.Cursor()
	assert.Equal(t, 3, l)

	press(t, v, runes("r"), runes("!"), ctrlS)
	assert.Equal(t, "Later!", b.Lists[3].Title)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "…", truncate("abcd", 1))
	assert.Equal(t, "", truncate("abcd", 0))
}

func TestBoardViewHelpPopup(t *testing.T) {
	n, _ := setupBoard(t)
	v := NewBoardView(n)

	press(t, v, runes("?"))
	require.Equal(t, modeHelp, v.mode)
	out := v.View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "open task board")
	assert.Contains(t, out, "reorder task")

	press(t, v, runes("x"))
	assert.Equal(t, modeNormal, v.mode)
}
