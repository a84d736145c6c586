package db

import (
	"database/sql"
	"fmt"

	"github.com/tgienger/tasks/internal/models"
)

// Load returns every stored task in list order. Rows that no longer
// describe a valid task are skipped.
func (db *DB) Load() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, text, priority, due_date, completed, completed_at
		FROM tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			t           models.Task
			priority    string
			dueDate     string
			completedAt sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.Text, &priority, &dueDate, &t.Completed, &completedAt); err != nil {
			return nil, err
		}
		p, ok := models.ParsePriority(priority)
		if !ok {
			continue
		}
		t.Priority = p
		// an unreadable date is treated as no date
		t.DueDate, _ = models.ParseDate(dueDate)
		if t.Completed {
			if !completedAt.Valid {
				continue
			}
			at := completedAt.Time
			t.CompletedAt = &at
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Save replaces the stored list with tasks in a single transaction
func (db *DB) Save(tasks []models.Task) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (position, id, text, priority, due_date, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tasks {
		var completedAt any
		if t.Completed && t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC()
		}
		if _, err := stmt.Exec(i, t.ID, t.Text, string(t.Priority), t.DueDate.String(), t.Completed, completedAt); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// TaskCount returns the number of stored tasks
func (db *DB) TaskCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count)
	return count, err
}
