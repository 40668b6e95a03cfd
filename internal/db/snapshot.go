package db

import (
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

const (
	keySavedAt        = "saved_at"
	keyCurrentBoardID = "current_board_id"
	keyCurrentListID  = "current_list_id"
	keyCurrentTaskID  = "current_task_id"
)

// Save replaces the stored document with the nest's current state in a single transaction
func (db *DB) Save(n *nest.Nest) error {
	doc := n.Serialize()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM navigation",
		"DELETE FROM tasks",
		"DELETE FROM lists",
		"DELETE FROM boards",
		"DELETE FROM settings WHERE key IN ('current_board_id', 'current_list_id', 'current_task_id')",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	for i, b := range doc.Boards {
		if err := insertBoard(tx, i, b); err != nil {
			return fmt.Errorf("save board %s: %w", b.ID, err)
		}
		for j, l := range b.Lists {
			if err := insertList(tx, b.ID, j, l); err != nil {
				return fmt.Errorf("save list %s: %w", l.ID, err)
			}
			for k, t := range l.Tasks {
				if err := insertTask(tx, listKey{boardID: b.ID, listID: l.ID}, k, t); err != nil {
					return fmt.Errorf("save task %s: %w", t.ID, err)
				}
			}
		}
	}

	for depth, f := range doc.NavigationStack {
		if _, err := tx.Exec(`
			INSERT INTO navigation (depth, board_id, list_id, task_id) VALUES (?, ?, ?, ?)
		`, depth, f[0], f[1], f[2]); err != nil {
			return fmt.Errorf("save navigation: %w", err)
		}
	}

	cursor := map[string]*string{
		keyCurrentBoardID: doc.CurrentBoardID,
		keyCurrentListID:  doc.CurrentListID,
		keyCurrentTaskID:  doc.CurrentTaskID,
	}
	for key, v := range cursor {
		if v == nil {
			continue
		}
		if err := setSetting(tx, key, *v); err != nil {
			return err
		}
	}
	if err := setSetting(tx, keySavedAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	tasks, err := taskCount(tx)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": db.path, "boards": len(doc.Boards), "tasks": tasks}).Debug("saved nest")
	return nil
}

// Load replaces the nest's state with the stored document. It returns nest.ErrNoDocument
// when nothing has been saved yet.
func (db *DB) Load(n *nest.Nest) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	savedAt, err := getSetting(tx, keySavedAt)
	if err != nil {
		return err
	}
	if savedAt == "" {
		return nest.ErrNoDocument
	}

	doc, err := readDocument(tx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := n.Deserialize(doc); err != nil {
		return fmt.Errorf("load %s: %w", db.path, err)
	}
	log.WithFields(log.Fields{"path": db.path, "boards": len(doc.Boards), "saved_at": savedAt}).Debug("loaded nest")
	return nil
}

func readDocument(tx *sql.Tx) (*nest.Document, error) {
	boards, err := listBoards(tx)
	if err != nil {
		return nil, err
	}
	lists, err := listLists(tx)
	if err != nil {
		return nil, err
	}
	tasks, err := listTasks(tx)
	if err != nil {
		return nil, err
	}

	doc := &nest.Document{Boards: make([]nest.BoardRecord, 0, len(boards))}
	for _, b := range boards {
		b.Lists = lists[b.ID]
		for i := range b.Lists {
			if ts, ok := tasks[listKey{boardID: b.ID, listID: b.Lists[i].ID}]; ok {
				b.Lists[i].Tasks = ts
			}
		}
		doc.Boards = append(doc.Boards, b)
	}

	rows, err := tx.Query("SELECT board_id, list_id, task_id FROM navigation ORDER BY depth")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var boardID, listID, taskID string
		if err := rows.Scan(&boardID, &listID, &taskID); err != nil {
			return nil, err
		}
		doc.NavigationStack = append(doc.NavigationStack, []string{boardID, listID, taskID})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for key, dst := range map[string]**string{
		keyCurrentBoardID: &doc.CurrentBoardID,
		keyCurrentListID:  &doc.CurrentListID,
		keyCurrentTaskID:  &doc.CurrentTaskID,
	} {
		v, err := getSetting(tx, key)
		if err != nil {
			return nil, err
		}
		if v != "" {
			*dst = &v
		}
	}
	return doc, nil
}
