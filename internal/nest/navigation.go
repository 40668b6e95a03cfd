package nest

import (
	"slices"

	"github.com/tgienger/kanbatryoshka/internal/models"
)

// SelectBoard jumps to any board by id. The navigation stack is left untouched.
func (n *Nest) SelectBoard(id string) bool {
	b, ok := n.boards[id]
	if !ok {
		return false
	}
	n.current = b
	return true
}

// JumpToBoard selects any board and rebuilds the navigation stack from its parent chain,
// as if the user had drilled down to it from its top-level root.
func (n *Nest) JumpToBoard(id string) bool {
	b, ok := n.boards[id]
	if !ok {
		return false
	}
	var frames []Frame
	cur := b
	for steps := 0; cur.ParentBoardID != "" && steps < len(n.boards); steps++ {
		parent, ok := n.boards[cur.ParentBoardID]
		if !ok {
			break
		}
		frames = append(frames, Frame{BoardID: parent.ID, ListID: listHolding(parent, cur.ParentTaskID), TaskID: cur.ParentTaskID})
		cur = parent
	}
	slices.Reverse(frames)

	n.current = b
	n.stack = frames
	n.clearArrived()
	return true
}

func listHolding(b *models.Board, taskID string) string {
	for _, l := range b.Lists {
		if _, ok := l.Task(taskID); ok {
			return l.ID
		}
	}
	return ""
}

// NavigateToTaskBoard drills into the nested board of a task on the current board
func (n *Nest) NavigateToTaskBoard(listID, taskID string) bool {
	if n.current == nil {
		return false
	}
	l, ok := n.current.List(listID)
	if !ok {
		return false
	}
	t, ok := l.Task(taskID)
	if !ok || t.Board == nil {
		return false
	}
	n.stack = append(n.stack, Frame{BoardID: n.current.ID, ListID: listID, TaskID: taskID})
	n.current = t.Board
	n.clearArrived()
	return true
}

// BackToParent pops one drill-down step. If the board recorded in the popped frame no
// longer exists the frame stays popped, the cursor is unchanged and false is returned.
func (n *Nest) BackToParent() bool {
	if len(n.stack) == 0 {
		return false
	}
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]

	b, ok := n.boards[top.BoardID]
	if !ok {
		return false
	}
	n.current = b
	n.arrivedListID = top.ListID
	n.arrivedTaskID = top.TaskID
	return true
}

// BoardPath returns board titles from the top-level root down to the current board,
// following parent links rather than the navigation stack.
func (n *Nest) BoardPath() []string {
	var path []string
	cur := n.current
	// A parent chain can never be longer than the arena; the bound keeps a corrupt cycle finite.
	for steps := 0; cur != nil && steps <= len(n.boards); steps++ {
		path = append([]string{cur.Title}, path...)
		if cur.ParentBoardID == "" {
			break
		}
		cur = n.boards[cur.ParentBoardID]
	}
	return path
}

// FindTask searches the current board and every board nested beneath it
func (n *Nest) FindTask(taskID string) (*models.Task, bool) {
	if n.current == nil {
		return nil, false
	}
	seen := map[string]bool{}
	pending := []*models.Board{n.current}
	for len(pending) > 0 {
		b := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if b == nil || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		for _, l := range b.Lists {
			for _, t := range l.Tasks {
				if t.ID == taskID {
					return t, true
				}
				pending = append(pending, t.Board)
			}
		}
	}
	return nil, false
}

// TaskHasSubtasks reports whether the task's nested board holds at least one task.
// It is the guard consulted before a task may be removed.
func (n *Nest) TaskHasSubtasks(taskID string) bool {
	t, ok := n.FindTask(taskID)
	if !ok || t.Board == nil {
		return false
	}
	return t.Board.HasTasks()
}

// ListHasTasks reports whether a list on the current board holds any task
func (n *Nest) ListHasTasks(listID string) bool {
	if n.current == nil {
		return false
	}
	l, ok := n.current.List(listID)
	return ok && len(l.Tasks) > 0
}
