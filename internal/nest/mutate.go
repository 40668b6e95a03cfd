package nest

import (
	"slices"
	"time"

	"github.com/tgienger/kanbatryoshka/internal/models"
)

// AddListToCurrentBoard appends a new list, or returns nil if no board is selected
func (n *Nest) AddListToCurrentBoard(title string) *models.List {
	if n.current == nil {
		return nil
	}
	return n.current.AddList(models.NewList(title))
}

// RemoveListFromCurrentBoard removes an empty list. A list that still holds tasks is refused;
// an absent list is an idempotent success.
func (n *Nest) RemoveListFromCurrentBoard(listID string) bool {
	if n.current == nil {
		return false
	}
	if n.ListHasTasks(listID) {
		return false
	}
	return n.current.RemoveList(listID)
}

// AddTaskToList creates a task, and its nested board, at the end of a list on the current board
func (n *Nest) AddTaskToList(listID, title, description string) *models.Task {
	if n.current == nil {
		return nil
	}
	l, ok := n.current.List(listID)
	if !ok {
		return nil
	}
	t := models.NewTask(title, description, n.current.ID)
	n.register(t.Board)
	l.AddTask(t)
	n.current.UpdatedAt = time.Now()
	return t
}

// RemoveTaskFromList removes a task whose nested board is empty, together with that board.
func (n *Nest) RemoveTaskFromList(listID, taskID string) bool {
	if n.current == nil {
		return false
	}
	l, ok := n.current.List(listID)
	if !ok {
		return false
	}
	t, ok := l.Task(taskID)
	if !ok {
		return l.RemoveTask(taskID)
	}
	if t.Board != nil && t.Board.HasTasks() {
		return false
	}
	l.RemoveTask(taskID)
	if t.Board != nil {
		n.dropBoardTree(t.Board)
	}
	n.current.UpdatedAt = time.Now()
	return true
}

// MoveTaskBetweenLists moves a task to the end of another list on the current board
func (n *Nest) MoveTaskBetweenLists(taskID, sourceListID, targetListID string) bool {
	if n.current == nil {
		return false
	}
	src, ok := n.current.List(sourceListID)
	if !ok {
		return false
	}
	dst, ok := n.current.List(targetListID)
	if !ok {
		return false
	}
	t, ok := src.Task(taskID)
	if !ok {
		return false
	}
	src.RemoveTask(taskID)
	dst.AddTask(t)
	n.current.UpdatedAt = time.Now()
	return true
}

// ReorderTaskInList moves a task to newIndex within its list. Indexes past the end append.
func (n *Nest) ReorderTaskInList(listID, taskID string, newIndex int) bool {
	if n.current == nil {
		return false
	}
	l, ok := n.current.List(listID)
	if !ok {
		return false
	}
	i := l.TaskIndex(taskID)
	if i < 0 {
		return false
	}
	l.Tasks = move(l.Tasks, i, newIndex)
	return true
}

// MoveListInCurrentBoard moves a list to newPosition. Positions past the end append.
func (n *Nest) MoveListInCurrentBoard(listID string, newPosition int) bool {
	if n.current == nil {
		return false
	}
	i := n.current.ListIndex(listID)
	if i < 0 {
		return false
	}
	n.current.Lists = move(n.current.Lists, i, newPosition)
	return true
}

// UpdateTask changes the supplied fields of a task on the current board
func (n *Nest) UpdateTask(taskID string, title, description *string) bool {
	if n.current == nil {
		return false
	}
	for _, l := range n.current.Lists {
		if t, ok := l.Task(taskID); ok {
			t.Update(title, description)
			return true
		}
	}
	return false
}

// RenameList renames a list on the current board
func (n *Nest) RenameList(listID, newTitle string) bool {
	if n.current == nil {
		return false
	}
	l, ok := n.current.List(listID)
	if !ok {
		return false
	}
	l.Title = newTitle
	return true
}

// move relocates s[from] to position to, clamped into range
func move[T any](s []T, from, to int) []T {
	if to < 0 {
		to = 0
	}
	if from == to {
		return s
	}
	v := s[from]
	s = slices.Delete(s, from, from+1)
	if to >= len(s) {
		return append(s, v)
	}
	return slices.Insert(s, to, v)
}
