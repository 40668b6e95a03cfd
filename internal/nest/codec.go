package nest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tgienger/kanbatryoshka/internal/models"
)

// ErrMalformed marks a document whose shape or references cannot be rebuilt into a nest
var ErrMalformed = errors.New("malformed document")

const timeLayout = time.RFC3339Nano

// Documents written without a zone offset are read as local time
const localTimeLayout = "2006-01-02T15:04:05.999999999"

// Document is the flat, whole-state representation of a nest. Tasks reference the board they
// own by id only, which turns the object graph into a tree.
type Document struct {
	Boards          []BoardRecord `json:"boards"`
	CurrentBoardID  *string       `json:"current_board_id"`
	NavigationStack [][]string    `json:"navigation_stack"`
	CurrentListID   *string       `json:"current_list_id"`
	CurrentTaskID   *string       `json:"current_task_id"`
}

type BoardRecord struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ParentBoardID *string      `json:"parent_board_id"`
	ParentTaskID  *string      `json:"parent_task_id"`
	CreatedAt     string       `json:"created_at,omitempty"`
	UpdatedAt     string       `json:"updated_at,omitempty"`
	Lists         []ListRecord `json:"lists"`
}

type ListRecord struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	CreatedAt string       `json:"created_at"`
	Tasks     []TaskRecord `json:"tasks"`
}

type TaskRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	ParentBoardID *string `json:"parent_board_id"`
	BoardID       *string `json:"board_id"`
}

// Serialize flattens the whole nest into a document
func (n *Nest) Serialize() *Document {
	doc := &Document{
		Boards:          make([]BoardRecord, 0, len(n.order)),
		NavigationStack: make([][]string, 0, len(n.stack)),
		CurrentListID:   optional(n.arrivedListID),
		CurrentTaskID:   optional(n.arrivedTaskID),
	}
	for _, b := range n.Boards() {
		br := BoardRecord{
			ID:            b.ID,
			Title:         b.Title,
			Description:   b.Description,
			ParentBoardID: optional(b.ParentBoardID),
			ParentTaskID:  optional(b.ParentTaskID),
			CreatedAt:     b.CreatedAt.Format(timeLayout),
			UpdatedAt:     b.UpdatedAt.Format(timeLayout),
			Lists:         make([]ListRecord, 0, len(b.Lists)),
		}
		for _, l := range b.Lists {
			lr := ListRecord{
				ID:        l.ID,
				Title:     l.Title,
				CreatedAt: l.CreatedAt.Format(timeLayout),
				Tasks:     make([]TaskRecord, 0, len(l.Tasks)),
			}
			for _, t := range l.Tasks {
				tr := TaskRecord{
					ID:            t.ID,
					Title:         t.Title,
					Description:   t.Description,
					CreatedAt:     t.CreatedAt.Format(timeLayout),
					UpdatedAt:     t.UpdatedAt.Format(timeLayout),
					ParentBoardID: optional(t.ParentBoardID),
				}
				if t.Board != nil {
					tr.BoardID = optional(t.Board.ID)
				}
				lr.Tasks = append(lr.Tasks, tr)
			}
			br.Lists = append(br.Lists, lr)
		}
		doc.Boards = append(doc.Boards, br)
	}
	if n.current != nil {
		doc.CurrentBoardID = optional(n.current.ID)
	}
	for _, f := range n.stack {
		doc.NavigationStack = append(doc.NavigationStack, []string{f.BoardID, f.ListID, f.TaskID})
	}
	return doc
}

// Deserialize replaces the nest's state with the one described by doc. The new state is
// built aside and only installed when every reference resolves, so on error the nest is
// left exactly as it was.
func (n *Nest) Deserialize(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrMalformed)
	}
	next := New()

	// Pass 1: every board, without default lists.
	for _, br := range doc.Boards {
		if br.ID == "" {
			return fmt.Errorf("%w: board without id", ErrMalformed)
		}
		if _, dup := next.boards[br.ID]; dup {
			return fmt.Errorf("%w: duplicate board id %s", ErrMalformed, br.ID)
		}
		b := models.NewEmptyBoard(br.Title, br.Description)
		b.ID = br.ID
		b.ParentBoardID = deref(br.ParentBoardID)
		b.ParentTaskID = deref(br.ParentTaskID)
		var err error
		if b.CreatedAt, err = parseTimeOr(br.CreatedAt, b.CreatedAt); err != nil {
			return fmt.Errorf("board %s: %w", br.ID, err)
		}
		if b.UpdatedAt, err = parseTimeOr(br.UpdatedAt, b.UpdatedAt); err != nil {
			return fmt.Errorf("board %s: %w", br.ID, err)
		}
		next.register(b)
	}

	// Pass 2: lists and tasks, collecting task -> owned board links.
	type link struct {
		task      *models.Task
		container *models.Board
		boardID   string
	}
	var links []link
	var orphans []*models.Task
	taskIDs := map[string]bool{}
	for _, br := range doc.Boards {
		b := next.boards[br.ID]
		for _, lr := range br.Lists {
			if _, dup := b.List(lr.ID); dup || lr.ID == "" {
				return fmt.Errorf("%w: board %s: invalid or duplicate list id %q", ErrMalformed, br.ID, lr.ID)
			}
			l := &models.List{ID: lr.ID, Title: lr.Title, Tasks: make([]*models.Task, 0, len(lr.Tasks))}
			var err error
			if l.CreatedAt, err = parseTime(lr.CreatedAt); err != nil {
				return fmt.Errorf("list %s: %w", lr.ID, err)
			}
			for _, tr := range lr.Tasks {
				if tr.ID == "" || taskIDs[tr.ID] {
					return fmt.Errorf("%w: list %s: invalid or duplicate task id %q", ErrMalformed, lr.ID, tr.ID)
				}
				taskIDs[tr.ID] = true
				t := &models.Task{
					ID:            tr.ID,
					Title:         tr.Title,
					Description:   tr.Description,
					ParentBoardID: deref(tr.ParentBoardID),
				}
				if t.CreatedAt, err = parseTime(tr.CreatedAt); err != nil {
					return fmt.Errorf("task %s: %w", tr.ID, err)
				}
				if t.UpdatedAt, err = parseTime(tr.UpdatedAt); err != nil {
					return fmt.Errorf("task %s: %w", tr.ID, err)
				}
				if id := deref(tr.BoardID); id != "" {
					links = append(links, link{task: t, container: b, boardID: id})
				} else {
					orphans = append(orphans, t)
				}
				l.Tasks = append(l.Tasks, t)
			}
			b.Lists = append(b.Lists, l)
		}
	}

	// Resolve ownership now that every board exists.
	owner := map[string]string{}
	for _, lk := range links {
		b, ok := next.boards[lk.boardID]
		if !ok {
			return fmt.Errorf("%w: task %s owns unknown board %s", ErrMalformed, lk.task.ID, lk.boardID)
		}
		if b == lk.container || b.ParentTaskID != lk.task.ID {
			return fmt.Errorf("%w: board %s does not belong to task %s", ErrMalformed, lk.boardID, lk.task.ID)
		}
		if prev, taken := owner[lk.boardID]; taken {
			return fmt.Errorf("%w: board %s owned by tasks %s and %s", ErrMalformed, lk.boardID, prev, lk.task.ID)
		}
		owner[lk.boardID] = lk.task.ID
		lk.task.Board = b
	}
	for _, t := range orphans {
		t.Board = models.NewBoard(models.NestedBoardTitle(t.Title), models.NestedBoardDescription(t.Description))
		t.Board.ParentBoardID = t.ParentBoardID
		t.Board.ParentTaskID = t.ID
		next.register(t.Board)
	}

	if id := deref(doc.CurrentBoardID); id != "" {
		b, ok := next.boards[id]
		if !ok {
			return fmt.Errorf("%w: unknown current board %s", ErrMalformed, id)
		}
		next.current = b
	}
	for i, entry := range doc.NavigationStack {
		if len(entry) != 3 {
			return fmt.Errorf("%w: navigation entry %d has %d fields", ErrMalformed, i, len(entry))
		}
		if _, ok := next.boards[entry[0]]; !ok {
			return fmt.Errorf("%w: navigation entry %d names unknown board %s", ErrMalformed, i, entry[0])
		}
		next.stack = append(next.stack, Frame{BoardID: entry[0], ListID: entry[1], TaskID: entry[2]})
	}
	next.arrivedListID = deref(doc.CurrentListID)
	next.arrivedTaskID = deref(doc.CurrentTaskID)

	*n = *next
	return nil
}

// Encode writes the nest as an indented JSON document
func (n *Nest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n.Serialize())
}

// Decode reads a JSON document and replaces the nest's state with it
func (n *Nest) Decode(r io.Reader) error {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return n.Deserialize(&doc)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformed, s)
}

func parseTimeOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return parseTime(s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
