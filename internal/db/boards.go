package db

import (
	"database/sql"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

// insertBoard writes one board row; lists and tasks are written separately
func insertBoard(tx *sql.Tx, position int, b nest.BoardRecord) error {
	_, err := tx.Exec(`
		INSERT INTO boards (id, position, title, description, parent_board_id, parent_task_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, position, b.Title, b.Description, b.ParentBoardID, b.ParentTaskID, b.CreatedAt, b.UpdatedAt)
	return err
}

// listBoards returns every board in saved order, without lists
func listBoards(tx *sql.Tx) ([]nest.BoardRecord, error) {
	rows, err := tx.Query(`
		SELECT id, title, description, parent_board_id, parent_task_id, created_at, updated_at
		FROM boards ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []nest.BoardRecord
	for rows.Next() {
		var b nest.BoardRecord
		var parentBoard, parentTask sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &parentBoard, &parentTask, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.ParentBoardID = nullable(parentBoard)
		b.ParentTaskID = nullable(parentTask)
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func boardCount(q querier) (int, error) {
	var count int
	err := q.QueryRow("SELECT COUNT(*) FROM boards").Scan(&count)
	return count, err
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
