package models

import (
	"time"

	"github.com/google/uuid"
)

// Default lists every freshly created board starts with
var DefaultListTitles = []string{"To Do", "In Progress", "Done"}

// NewID returns a fresh opaque identifier
func NewID() string {
	return uuid.NewString()
}

// Board is an ordered set of lists. A board is either top-level or owned by exactly one task,
// in which case ParentTaskID names that task and ParentBoardID the board the task lives on.
type Board struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lists       []*List

	// Empty for top-level boards
	ParentBoardID string
	ParentTaskID  string
}

// List is an ordered column of tasks within a board
type List struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Tasks     []*Task
}

// Task is a unit of work that exclusively owns a nested board
type Task struct {
	ID            string
	Title         string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ParentBoardID string // board the task currently lives on
	Board         *Board // nested board, never shared
}

// NewBoard creates a board populated with the default lists
func NewBoard(title, description string) *Board {
	b := NewEmptyBoard(title, description)
	for _, t := range DefaultListTitles {
		b.AddList(NewList(t))
	}
	return b
}

// NewEmptyBoard creates a board without any lists
func NewEmptyBoard(title, description string) *Board {
	now := time.Now()
	return &Board{
		ID:          NewID(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lists:       []*List{},
	}
}

// NewList creates an empty list
func NewList(title string) *List {
	return &List{
		ID:        NewID(),
		Title:     title,
		CreatedAt: time.Now(),
		Tasks:     []*Task{},
	}
}

// NewTask creates a task together with its nested board
func NewTask(title, description, parentBoardID string) *Task {
	now := time.Now()
	t := &Task{
		ID:            NewID(),
		Title:         title,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
		ParentBoardID: parentBoardID,
	}
	t.Board = NewBoard(NestedBoardTitle(title), NestedBoardDescription(description))
	t.Board.ParentBoardID = parentBoardID
	t.Board.ParentTaskID = t.ID
	return t
}

// NestedBoardTitle derives the title of a task's own board
func NestedBoardTitle(taskTitle string) string {
	return "Board: " + taskTitle
}

// NestedBoardDescription derives the description of a task's own board
func NestedBoardDescription(taskDescription string) string {
	return "Board for task: " + taskDescription
}

// IsTopLevel reports whether the board is not owned by a task
func (b *Board) IsTopLevel() bool {
	return b.ParentTaskID == ""
}

// AddList appends a list and returns it
func (b *Board) AddList(l *List) *List {
	b.Lists = append(b.Lists, l)
	b.UpdatedAt = time.Now()
	return l
}

// RemoveList removes the list with the given id. Removing an absent list succeeds.
func (b *Board) RemoveList(id string) bool {
	if i := b.ListIndex(id); i >= 0 {
		b.Lists = append(b.Lists[:i], b.Lists[i+1:]...)
	}
	b.UpdatedAt = time.Now()
	return true
}

// List returns the list with the given id
func (b *Board) List(id string) (*List, bool) {
	if i := b.ListIndex(id); i >= 0 {
		return b.Lists[i], true
	}
	return nil, false
}

// ListIndex returns the position of a list, or -1
func (b *Board) ListIndex(id string) int {
	for i, l := range b.Lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// TaskCount returns the number of tasks across all lists
func (b *Board) TaskCount() int {
	n := 0
	for _, l := range b.Lists {
		n += len(l.Tasks)
	}
	return n
}

// HasTasks reports whether any list on the board holds a task
func (b *Board) HasTasks() bool {
	for _, l := range b.Lists {
		if len(l.Tasks) > 0 {
			return true
		}
	}
	return false
}

// AddTask appends a task and returns it
func (l *List) AddTask(t *Task) *Task {
	l.Tasks = append(l.Tasks, t)
	return t
}

// RemoveTask removes the task with the given id. Removing an absent task succeeds.
func (l *List) RemoveTask(id string) bool {
	if i := l.TaskIndex(id); i >= 0 {
		l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
	}
	return true
}

// Task returns the task with the given id
func (l *List) Task(id string) (*Task, bool) {
	if i := l.TaskIndex(id); i >= 0 {
		return l.Tasks[i], true
	}
	return nil, false
}

// TaskIndex returns the position of a task, or -1
func (l *List) TaskIndex(id string) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Update applies the supplied fields and keeps the nested board's title and description in sync.
// It reports whether any field was supplied.
func (t *Task) Update(title, description *string) bool {
	if title == nil && description == nil {
		return false
	}
	now := time.Now()
	if title != nil {
		t.Title = *title
		if t.Board != nil {
			t.Board.Title = NestedBoardTitle(*title)
		}
	}
	if description != nil {
		t.Description = *description
		if t.Board != nil {
			t.Board.Description = NestedBoardDescription(*description)
		}
	}
	t.UpdatedAt = now
	if t.Board != nil {
		t.Board.UpdatedAt = now
	}
	return true
}
