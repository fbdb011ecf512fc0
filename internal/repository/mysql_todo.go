package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tasklist/tasklist-go/internal/model"
)

// MySQLTodoRepository persists todos in MySQL. Every query is scoped by owner_id.
type MySQLTodoRepository struct {
	db *sql.DB
}

// NewMySQLTodoRepository creates a new MySQLTodoRepository.
func NewMySQLTodoRepository(db *sql.DB) *MySQLTodoRepository {
	return &MySQLTodoRepository{db: db}
}

const todoColumns = `id, owner_id, title, description, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt)
	return t, err
}

// Create inserts a new todo and sets the generated ID on the todo struct.
func (r *MySQLTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id, todo.OwnerID, todo.Title, todo.Description, todo.Status, todo.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	todo.ID = id
	return nil
}

// ListByOwner returns the owner's todos, newest first, optionally narrowed to one status.
func (r *MySQLTodoRepository) ListByOwner(ctx context.Context, ownerID string, status *model.Status) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = ?`
	args := []any{ownerID}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// CountByStatus returns the owner's todo counts grouped by status.
func (r *MySQLTodoRepository) CountByStatus(ctx context.Context, ownerID string) (model.TodoStats, error) {
	query := `SELECT status, COUNT(*) FROM todos WHERE owner_id = ? GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return model.TodoStats{}, err
	}
	defer rows.Close()

	var stats model.TodoStats
	for rows.Next() {
		var (
			status model.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return model.TodoStats{}, err
		}
		switch status {
		case model.StatusPending:
			stats.PendingCount = count
		case model.StatusCompleted:
			stats.CompletedCount = count
		}
	}

	return stats, rows.Err()
}

// Update applies the patch to the todo matching both id and owner, returning the updated row.
// The read and write happen in one transaction so concurrent updates cannot interleave.
func (r *MySQLTodoRepository) Update(ctx context.Context, ownerID, id string, patch model.TodoPatch) (*model.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND owner_id = ? FOR UPDATE`
	todo, err := scanTodo(tx.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	applyPatch(&todo, patch)

	update := `UPDATE todos SET title = ?, description = ?, status = ? WHERE id = ? AND owner_id = ?`
	if _, err := tx.ExecContext(ctx, update, todo.Title, todo.Description, todo.Status, id, ownerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	return &todo, nil
}

// Delete removes the todo matching both id and owner.
func (r *MySQLTodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM todos WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

func applyPatch(todo *model.Todo, patch model.TodoPatch) {
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Status != nil {
		todo.Status = *patch.Status
	}
}
