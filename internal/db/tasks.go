package db

import (
	"database/sql"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

type listKey struct {
	boardID string
	listID  string
}

func insertList(tx *sql.Tx, boardID string, position int, l nest.ListRecord) error {
	_, err := tx.Exec(`
		INSERT INTO lists (board_id, id, position, title, created_at) VALUES (?, ?, ?, ?, ?)
	`, boardID, l.ID, position, l.Title, l.CreatedAt)
	return err
}

func insertTask(tx *sql.Tx, key listKey, position int, t nest.TaskRecord) error {
	_, err := tx.Exec(`
		INSERT INTO tasks (id, board_id, list_id, position, title, description, created_at, updated_at, parent_board_id, owned_board_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, key.boardID, key.listID, position, t.Title, t.Description, t.CreatedAt, t.UpdatedAt, t.ParentBoardID, t.BoardID)
	return err
}

// listLists returns the lists of every board, keyed by board id, in saved order
func listLists(tx *sql.Tx) (map[string][]nest.ListRecord, error) {
	rows, err := tx.Query(`
		SELECT board_id, id, title, created_at
		FROM lists ORDER BY board_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := map[string][]nest.ListRecord{}
	for rows.Next() {
		var boardID string
		l := nest.ListRecord{Tasks: []nest.TaskRecord{}}
		if err := rows.Scan(&boardID, &l.ID, &l.Title, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists[boardID] = append(lists[boardID], l)
	}
	return lists, rows.Err()
}

// listTasks returns every task keyed by the list holding it, in saved order
func listTasks(tx *sql.Tx) (map[listKey][]nest.TaskRecord, error) {
	rows, err := tx.Query(`
		SELECT board_id, list_id, id, title, description, created_at, updated_at, parent_board_id, owned_board_id
		FROM tasks ORDER BY board_id, list_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := map[listKey][]nest.TaskRecord{}
	for rows.Next() {
		var key listKey
		var t nest.TaskRecord
		var parentBoard, owned sql.NullString
		if err := rows.Scan(&key.boardID, &key.listID, &t.ID, &t.Title, &t.Description, &t.CreatedAt, &t.UpdatedAt, &parentBoard, &owned); err != nil {
			return nil, err
		}
		t.ParentBoardID = nullable(parentBoard)
		t.BoardID = nullable(owned)
		tasks[key] = append(tasks[key], t)
	}
	return tasks, rows.Err()
}

// taskCount returns the number of saved tasks across all boards
func taskCount(q querier) (int, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count)
	return count, err
}
