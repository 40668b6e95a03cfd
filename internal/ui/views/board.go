package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanbatryoshka/internal/models"
	"github.com/tgienger/kanbatryoshka/internal/nest"
	"github.com/tgienger/kanbatryoshka/internal/ui/keys"
	"github.com/tgienger/kanbatryoshka/internal/ui/styles"
)

// mode is what the board view is currently doing with key presses
type mode int

const (
	modeNormal mode = iota
	modeNewTask
	modeEditTask
	modeNewList
	modeRenameList
	modeConfirmDelete
	modeHelp
)

// BoardView shows the nest's current board as columns of tasks
type BoardView struct {
	nest   *nest.Nest
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode    mode
	listIdx int
	taskIdx int
	offset  int // first visible column

	taskForm form
	listForm form

	deleteList bool
	deleteID   string
	deleteName string

	status    string
	statusErr bool
}

func NewBoardView(n *nest.Nest) *BoardView {
	v := &BoardView{
		nest:     n,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		taskForm: newForm("New Task", "Save", "Title", "Description"),
		listForm: newForm("New List", "Save", "Title"),
	}
	v.restoreCursor()
	return v
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

// Cursor returns the focused list and task positions
func (v *BoardView) Cursor() (listIdx, taskIdx int) {
	return v.listIdx, v.taskIdx
}

func (v *BoardView) board() *models.Board {
	return v.nest.CurrentBoard()
}

func (v *BoardView) currentList() *models.List {
	b := v.board()
	if b == nil || v.listIdx < 0 || v.listIdx >= len(b.Lists) {
		return nil
	}
	return b.Lists[v.listIdx]
}

func (v *BoardView) currentTask() *models.Task {
	l := v.currentList()
	if l == nil || v.taskIdx < 0 || v.taskIdx >= len(l.Tasks) {
		return nil
	}
	return l.Tasks[v.taskIdx]
}

// restoreCursor puts the cursor on the task we last came back from, if any
func (v *BoardView) restoreCursor() {
	v.listIdx, v.taskIdx, v.offset = 0, 0, 0
	b := v.board()
	if b == nil {
		return
	}
	listID, taskID := v.nest.ArrivedFrom()
	if i := b.ListIndex(listID); i >= 0 {
		v.listIdx = i
		if t := b.Lists[i].TaskIndex(taskID); t >= 0 {
			v.taskIdx = t
		}
	}
	v.ensureVisible()
}

// fixCursor keeps the cursor inside the board after a mutation
func (v *BoardView) fixCursor() {
	b := v.board()
	if b == nil || len(b.Lists) == 0 {
		v.listIdx, v.taskIdx = 0, 0
		return
	}
	v.listIdx = clamp(v.listIdx, 0, len(b.Lists)-1)
	v.taskIdx = clamp(v.taskIdx, 0, max(len(b.Lists[v.listIdx].Tasks)-1, 0))
	v.ensureVisible()
}

func (v *BoardView) visibleColumns() int {
	return max(styles.ContentWidth(v.width)/styles.ColumnWidth, 1)
}

func (v *BoardView) ensureVisible() {
	cols := v.visibleColumns()
	if v.listIdx < v.offset {
		v.offset = v.listIdx
	} else if v.listIdx >= v.offset+cols {
		v.offset = v.listIdx - cols + 1
	}
}

func (v *BoardView) setStatus(msg string, isErr bool) {
	v.status = msg
	v.statusErr = isErr
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case Saved:
		if msg.Err != nil {
			v.setStatus("save failed: "+msg.Err.Error(), true)
		}
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeHelp:
			v.mode = modeNormal
			return v, nil
		case modeConfirmDelete:
			return v.updateConfirmDelete(msg)
		case modeNewTask, modeEditTask:
			return v.updateTaskForm(msg)
		case modeNewList, modeRenameList:
			return v.updateListForm(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.setStatus("", false)
	b := v.board()
	if b == nil {
		return v, func() tea.Msg { return BackToBoards{} }
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, requestQuit

	case key.Matches(msg, v.keys.Save):
		v.setStatus("Saved", false)
		return v, requestSave

	case key.Matches(msg, v.keys.Help):
		v.mode = modeHelp
		return v, nil

	case key.Matches(msg, v.keys.Back):
		if v.nest.Depth() == 0 {
			return v, func() tea.Msg { return BackToBoards{} }
		}
		if !v.nest.BackToParent() {
			log.Warn("parent board of navigation frame no longer exists")
			v.setStatus("Parent board no longer exists", true)
			return v, requestSave
		}
		v.restoreCursor()
		return v, requestSave

	case key.Matches(msg, v.keys.Left):
		if v.listIdx > 0 {
			v.listIdx--
			v.fixCursor()
		}
	case key.Matches(msg, v.keys.Right):
		if v.listIdx < len(b.Lists)-1 {
			v.listIdx++
			v.fixCursor()
		}
	case key.Matches(msg, v.keys.Up):
		if v.taskIdx > 0 {
			v.taskIdx--
		}
	case key.Matches(msg, v.keys.Down):
		if l := v.currentList(); l != nil && v.taskIdx < len(l.Tasks)-1 {
			v.taskIdx++
		}

	case key.Matches(msg, v.keys.Enter):
		l, t := v.currentList(), v.currentTask()
		if t == nil {
			return v, nil
		}
		if v.nest.NavigateToTaskBoard(l.ID, t.ID) {
			v.listIdx, v.taskIdx, v.offset = 0, 0, 0
			return v, requestSave
		}

	case key.Matches(msg, v.keys.New):
		if v.currentList() == nil {
			v.setStatus("Add a list first (N)", true)
			return v, nil
		}
		v.mode = modeNewTask
		v.taskForm.heading = "New Task"
		return v, v.taskForm.open()

	case key.Matches(msg, v.keys.Edit):
		t := v.currentTask()
		if t == nil {
			return v, nil
		}
		v.mode = modeEditTask
		v.taskForm.heading = "Edit Task"
		return v, v.taskForm.open(t.Title, t.Description)

	case key.Matches(msg, v.keys.NewList):
		v.mode = modeNewList
		v.listForm.heading = "New List"
		return v, v.listForm.open()

	case key.Matches(msg, v.keys.Rename):
		l := v.currentList()
		if l == nil {
			return v, nil
		}
		v.mode = modeRenameList
		v.listForm.heading = "Rename List"
		return v, v.listForm.open(l.Title)

	case key.Matches(msg, v.keys.Delete):
		t := v.currentTask()
		if t == nil {
			return v, nil
		}
		if v.nest.TaskHasSubtasks(t.ID) {
			v.setStatus("Task still has subtasks; empty its board first", true)
			return v, nil
		}
		v.mode = modeConfirmDelete
		v.deleteList, v.deleteID, v.deleteName = false, t.ID, t.Title

	case key.Matches(msg, v.keys.DeleteList):
		l := v.currentList()
		if l == nil {
			return v, nil
		}
		if v.nest.ListHasTasks(l.ID) {
			v.setStatus("List still holds tasks; move or remove them first", true)
			return v, nil
		}
		v.mode = modeConfirmDelete
		v.deleteList, v.deleteID, v.deleteName = true, l.ID, l.Title

	case key.Matches(msg, v.keys.MoveLeft), key.Matches(msg, v.keys.MoveRight):
		dir := 1
		if key.Matches(msg, v.keys.MoveLeft) {
			dir = -1
		}
		return v, v.moveTaskAcross(dir)

	case key.Matches(msg, v.keys.MoveUp), key.Matches(msg, v.keys.MoveDown):
		dir := 1
		if key.Matches(msg, v.keys.MoveUp) {
			dir = -1
		}
		return v, v.reorderTask(dir)

	case key.Matches(msg, v.keys.ListLeft), key.Matches(msg, v.keys.ListRight):
		dir := 1
		if key.Matches(msg, v.keys.ListLeft) {
			dir = -1
		}
		return v, v.moveList(dir)
	}

	return v, nil
}

func (v *BoardView) moveTaskAcross(dir int) tea.Cmd {
	b := v.board()
	src, t := v.currentList(), v.currentTask()
	target := v.listIdx + dir
	if t == nil || target < 0 || target >= len(b.Lists) {
		return nil
	}
	dst := b.Lists[target]
	if !v.nest.MoveTaskBetweenLists(t.ID, src.ID, dst.ID) {
		return nil
	}
	v.listIdx = target
	v.taskIdx = len(dst.Tasks) - 1
	v.ensureVisible()
	return requestSave
}

func (v *BoardView) reorderTask(dir int) tea.Cmd {
	l, t := v.currentList(), v.currentTask()
	target := v.taskIdx + dir
	if t == nil || target < 0 || target >= len(l.Tasks) {
		return nil
	}
	if !v.nest.ReorderTaskInList(l.ID, t.ID, target) {
		return nil
	}
	v.taskIdx = target
	return requestSave
}

func (v *BoardView) moveList(dir int) tea.Cmd {
	b, l := v.board(), v.currentList()
	target := v.listIdx + dir
	if l == nil || target < 0 || target >= len(b.Lists) {
		return nil
	}
	if !v.nest.MoveListInCurrentBoard(l.ID, target) {
		return nil
	}
	v.listIdx = target
	v.ensureVisible()
	return requestSave
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeNormal
		var ok bool
		if v.deleteList {
			ok = v.nest.RemoveListFromCurrentBoard(v.deleteID)
		} else if l := v.currentList(); l != nil {
			ok = v.nest.RemoveTaskFromList(l.ID, v.deleteID)
		}
		if !ok {
			v.setStatus(fmt.Sprintf("Could not delete %q", v.deleteName), true)
			return v, nil
		}
		v.fixCursor()
		return v, requestSave
	case "n", "N", "esc":
		v.mode = modeNormal
	}
	return v, nil
}

func (v *BoardView) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := v.taskForm.update(msg)
	switch res {
	case formCancelled:
		v.mode = modeNormal
		return v, nil
	case formSubmitted:
		vals := v.taskForm.values()
		editing := v.mode == modeEditTask
		v.mode = modeNormal
		if editing {
			t := v.currentTask()
			if t == nil || !v.nest.UpdateTask(t.ID, &vals[0], &vals[1]) {
				return v, nil
			}
			return v, requestSave
		}
		l := v.currentList()
		if l == nil || v.nest.AddTaskToList(l.ID, vals[0], vals[1]) == nil {
			return v, nil
		}
		v.taskIdx = len(l.Tasks) - 1
		return v, requestSave
	}
	return v, cmd
}

func (v *BoardView) updateListForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := v.listForm.update(msg)
	switch res {
	case formCancelled:
		v.mode = modeNormal
		return v, nil
	case formSubmitted:
		title := v.listForm.values()[0]
		renaming := v.mode == modeRenameList
		v.mode = modeNormal
		if renaming {
			l := v.currentList()
			if l == nil || !v.nest.RenameList(l.ID, title) {
				return v, nil
			}
			return v, requestSave
		}
		if v.nest.AddListToCurrentBoard(title) == nil {
			return v, nil
		}
		v.listIdx = len(v.board().Lists) - 1
		v.taskIdx = 0
		v.ensureVisible()
		return v, requestSave
	}
	return v, cmd
}

func (v *BoardView) View() string {
	switch v.mode {
	case modeHelp:
		return v.renderHelpPopup()
	case modeConfirmDelete:
		what := "Task"
		if v.deleteList {
			what = "List"
		}
		return confirmView(v.styles, "Delete "+what+"?", fmt.Sprintf("%q will be removed.", v.deleteName), v.width, v.height)
	case modeNewTask, modeEditTask:
		return v.taskForm.view(v.styles, v.width, v.height)
	case modeNewList, modeRenameList:
		return v.listForm.view(v.styles, v.width, v.height)
	}

	var sb strings.Builder
	sb.WriteString(v.renderHeader())
	sb.WriteString("\n\n")
	sb.WriteString(v.renderColumns())
	sb.WriteString("\n")
	if v.status != "" {
		st := v.styles.Status
		if v.statusErr {
			st = v.styles.StatusError
		}
		sb.WriteString(st.Render(v.status))
		sb.WriteString("\n")
	}
	sb.WriteString(v.renderHelp())

	return styles.CenterView(sb.String(), v.width, v.height)
}

func (v *BoardView) renderHeader() string {
	s := v.styles
	b := v.board()
	if b == nil {
		return s.TitleMuted.Render("No board selected")
	}

	path := v.nest.BoardPath()
	crumbs := ""
	if len(path) > 1 {
		crumbs = s.Breadcrumb.Render(strings.Join(path[:len(path)-1], " › ") + " › ")
	}
	header := crumbs + s.Title.Render(b.Title)
	if b.Description != "" {
		header += "\n" + s.TitleMuted.Render(b.Description)
	}
	return header
}

func (v *BoardView) renderColumns() string {
	s := v.styles
	b := v.board()
	if b == nil {
		return ""
	}
	if len(b.Lists) == 0 {
		return s.TitleMuted.Render("No lists. Press 'N' to create one.")
	}

	inner := styles.ColumnWidth - 4
	maxCards := max(v.height-12, 3)

	end := min(v.offset+v.visibleColumns(), len(b.Lists))
	cols := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		l := b.Lists[i]
		focused := i == v.listIdx

		rows := []string{s.ColumnTitle.Render(truncate(fmt.Sprintf("%s (%d)", l.Title, len(l.Tasks)), inner))}
		if len(l.Tasks) == 0 {
			rows = append(rows, s.TitleMuted.Render("empty"))
		}
		start := 0
		if focused && v.taskIdx >= maxCards {
			start = v.taskIdx - maxCards + 1
		}
		for j := start; j < len(l.Tasks) && j < start+maxCards; j++ {
			rows = append(rows, v.renderCard(l.Tasks[j], inner, focused && j == v.taskIdx))
		}

		colStyle := s.Column
		if focused {
			colStyle = s.ColumnFocused
		}
		cols = append(cols, colStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if v.offset > 0 || end < len(b.Lists) {
		out += "\n" + s.TitleMuted.Render(fmt.Sprintf("lists %d-%d of %d", v.offset+1, end, len(b.Lists)))
	}
	return out
}

func (v *BoardView) renderCard(t *models.Task, width int, selected bool) string {
	s := v.styles
	badge := ""
	if t.Board != nil {
		if c := t.Board.TaskCount(); c > 0 {
			badge = fmt.Sprintf(" [%d]", c)
		}
	}
	title := truncate(t.Title, width-len([]rune(badge)))
	if selected {
		return s.CardSelected.Width(width).Render(title + badge)
	}
	return s.Card.Render(title) + s.Subtasks.Render(badge)
}

func (v *BoardView) renderHelp() string {
	if styles.ContentWidth(v.width) < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s back • %s task • %s list • %s move • %s help • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("N"),
			v.styles.HelpKey.Render("HJKL"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	return helpView(v.styles, [][2]string{
		{"↵", "open task board"},
		{"esc", "back to parent"},
		{"h/l", "focus list"},
		{"j/k", "focus task"},
		{"n", "new task"},
		{"e", "edit task"},
		{"d", "delete task"},
		{"N", "new list"},
		{"r", "rename list"},
		{"D", "delete list"},
		{"H/L", "move task across lists"},
		{"J/K", "reorder task"},
		{"</>", "move list"},
		{"ctrl+s", "save"},
		{"q", "quit"},
	}, v.width, v.height)
}
