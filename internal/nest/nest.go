// Package nest holds every board of a workspace, the board currently being viewed and the
// stack of drill-down steps that led there. All mutations act on the current board and
// report failure through their return value; none of them panic.
package nest

import (
	"slices"

	"github.com/tgienger/kanbatryoshka/internal/models"
)

// Frame records one drill-down step: the board the user left and the task that was opened.
type Frame struct {
	BoardID string
	ListID  string
	TaskID  string
}

// Nest is the aggregate root. It is not safe for concurrent use.
type Nest struct {
	boards map[string]*models.Board
	order  []string // insertion order, used for listing and serialization

	current *models.Board
	stack   []Frame

	// Set by BackToParent so a view can re-focus the task it came back from
	arrivedListID string
	arrivedTaskID string
}

// New returns an empty nest with no board selected
func New() *Nest {
	return &Nest{boards: map[string]*models.Board{}}
}

// CreateBoard adds a new top-level board with the default lists
func (n *Nest) CreateBoard(title, description string) *models.Board {
	b := models.NewBoard(title, description)
	n.register(b)
	return b
}

// DeleteBoard removes a top-level board that holds no tasks and that no task owns.
// Deleting the current board clears the cursor and the navigation stack.
func (n *Nest) DeleteBoard(id string) bool {
	b, ok := n.boards[id]
	if !ok || !b.IsTopLevel() || b.HasTasks() || n.owned(b) {
		return false
	}
	n.unregister(id)
	if n.current == b {
		n.current = nil
		n.stack = nil
		n.clearArrived()
	}
	return true
}

// Board looks up any board, top-level or nested
func (n *Nest) Board(id string) (*models.Board, bool) {
	b, ok := n.boards[id]
	return b, ok
}

// Boards returns every board in creation order
func (n *Nest) Boards() []*models.Board {
	out := make([]*models.Board, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.boards[id])
	}
	return out
}

// TopLevelBoards returns the boards not owned by a task, in creation order
func (n *Nest) TopLevelBoards() []*models.Board {
	var out []*models.Board
	for _, id := range n.order {
		if b := n.boards[id]; b.IsTopLevel() {
			out = append(out, b)
		}
	}
	return out
}

// CurrentBoard returns the board being viewed, or nil before any board is selected
func (n *Nest) CurrentBoard() *models.Board {
	return n.current
}

// NavigationStack returns a copy of the drill-down history, oldest first
func (n *Nest) NavigationStack() []Frame {
	return slices.Clone(n.stack)
}

// Depth is the number of drill-downs below the board that was last selected
func (n *Nest) Depth() int {
	return len(n.stack)
}

// ArrivedFrom returns the list and task the last BackToParent returned from
func (n *Nest) ArrivedFrom() (listID, taskID string) {
	return n.arrivedListID, n.arrivedTaskID
}

// owned reports whether any task in the arena holds b as its nested board
func (n *Nest) owned(b *models.Board) bool {
	for _, other := range n.boards {
		for _, l := range other.Lists {
			for _, t := range l.Tasks {
				if t.Board == b {
					return true
				}
			}
		}
	}
	return false
}

func (n *Nest) register(b *models.Board) {
	if _, exists := n.boards[b.ID]; !exists {
		n.order = append(n.order, b.ID)
	}
	n.boards[b.ID] = b
}

func (n *Nest) unregister(id string) {
	delete(n.boards, id)
	if i := slices.Index(n.order, id); i >= 0 {
		n.order = slices.Delete(n.order, i, i+1)
	}
}

// dropBoardTree unregisters a board and every board nested beneath it
func (n *Nest) dropBoardTree(root *models.Board) {
	seen := map[string]bool{}
	pending := []*models.Board{root}
	for len(pending) > 0 {
		b := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if b == nil || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		for _, l := range b.Lists {
			for _, t := range l.Tasks {
				pending = append(pending, t.Board)
			}
		}
		n.unregister(b.ID)
	}
}

func (n *Nest) clearArrived() {
	n.arrivedListID = ""
	n.arrivedTaskID = ""
}
