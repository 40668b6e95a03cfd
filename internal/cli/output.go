package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/tgienger/kanbatryoshka/internal/models"
	"github.com/tgienger/kanbatryoshka/internal/nest"
)

type boardOut struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ParentBoardID string    `json:"parentBoardId,omitempty"`
	ParentTaskID  string    `json:"parentTaskId,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Lists         []listOut `json:"lists,omitempty"`
}

type listOut struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Tasks []taskOut `json:"tasks"`
}

type taskOut struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	BoardID     string    `json:"boardId"`
	Subtasks    int       `json:"subtasks"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBoardOut(b *models.Board, withLists bool) boardOut {
	out := boardOut{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		ParentBoardID: b.ParentBoardID,
		ParentTaskID:  b.ParentTaskID,
		UpdatedAt:     b.UpdatedAt,
	}
	if withLists {
		out.Lists = make([]listOut, 0, len(b.Lists))
		for _, l := range b.Lists {
			out.Lists = append(out.Lists, toListOut(l))
		}
	}
	return out
}

func toListOut(l *models.List) listOut {
	out := listOut{ID: l.ID, Title: l.Title, Tasks: make([]taskOut, 0, len(l.Tasks))}
	for _, t := range l.Tasks {
		out.Tasks = append(out.Tasks, toTaskOut(t))
	}
	return out
}

func toTaskOut(t *models.Task) taskOut {
	out := taskOut{ID: t.ID, Title: t.Title, Description: t.Description, UpdatedAt: t.UpdatedAt}
	if t.Board != nil {
		out.BoardID = t.Board.ID
		out.Subtasks = t.Board.TaskCount()
	}
	return out
}

// renderBoard formats the current board the way `ls` prints it
func renderBoard(n *nest.Nest, b *models.Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", strings.Join(n.BoardPath(), " > "))
	if b.Description != "" {
		fmt.Fprintf(&sb, "%s\n", b.Description)
	}
	if len(b.Lists) == 0 {
		sb.WriteString("No lists on this board. Use `lists add` to create one.\n")
	}
	for i, l := range b.Lists {
		fmt.Fprintf(&sb, "\n-- %d. ", i+1)
		writeList(&sb, l)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderList(l *models.List) string {
	var sb strings.Builder
	sb.WriteString("-- ")
	writeList(&sb, l)
	return strings.TrimRight(sb.String(), "\n")
}

func writeList(sb *strings.Builder, l *models.List) {
	fmt.Fprintf(sb, "[%s] %s --\n", l.ID, l.Title)
	if len(l.Tasks) == 0 {
		sb.WriteString("  (empty)\n")
	}
	for j, t := range l.Tasks {
		fmt.Fprintf(sb, "  %d. [%s] %s", j+1, t.ID, t.Title)
		if t.Board != nil {
			if c := t.Board.TaskCount(); c > 0 {
				fmt.Fprintf(sb, " (%d subtasks)", c)
			}
		}
		sb.WriteString("\n")
		if t.Description != "" {
			fmt.Fprintf(sb, "     %s\n", t.Description)
		}
	}
}

func renderBoardList(n *nest.Nest) string {
	boards := n.TopLevelBoards()
	if len(boards) == 0 {
		return "No boards yet. Use `boards create <title>` to start."
	}
	var root string
	if cur := n.CurrentBoard(); cur != nil {
		root = rootOf(n, cur).ID
	}
	var sb strings.Builder
	for i, b := range boards {
		marker := " "
		if b.ID == root {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %d. [%s] %s", marker, i+1, b.ID, b.Title)
		if b.Description != "" {
			fmt.Fprintf(&sb, " - %s", b.Description)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// rootOf follows parent links up to the top-level board
func rootOf(n *nest.Nest, b *models.Board) *models.Board {
	cur := b
	for steps := 0; cur.ParentBoardID != "" && steps < len(n.Boards()); steps++ {
		parent, ok := n.Board(cur.ParentBoardID)
		if !ok {
			break
		}
		cur = parent
	}
	return cur
}
