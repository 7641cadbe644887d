package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/entities"
)

// TodoUpdate describes a partial todo update. Nil fields are left
// unchanged; ClearDescription removes the description entirely.
type TodoUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
	Priority         *string
	DueDate          *time.Time
}

// TodoRepository defines the interface for todo database operations.
// Ownership is enforced the same way as for tasks: id and owner always
// share one predicate.
type TodoRepository interface {
	Create(ctx context.Context, userID, title string, description *string, priority string, dueDate *time.Time) (*entities.Todo, error)
	ListByOwner(ctx context.Context, userID string, opts ListOptions) ([]*entities.Todo, error)
	GetByID(ctx context.Context, id, userID string) (*entities.Todo, error)
	Update(ctx context.Context, id, userID string, upd TodoUpdate) (*entities.Todo, error)
	ToggleCompletion(ctx context.Context, id, userID string) (*entities.Todo, error)
	Delete(ctx context.Context, id, userID string) error
	BulkUpdate(ctx context.Context, ids []string, userID string, upd TodoUpdate) (int64, error)
	BulkDelete(ctx context.Context, ids []string, userID string) (int64, error)
}

type todoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

const todoColumns = `id, user_id, title, description, completed, priority, due_date, created_at, updated_at`

func scanTodo(row *sql.Row) (*entities.Todo, error) {
	var todo entities.Todo
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Create inserts a new todo owned by the given user
func (r *todoRepository) Create(ctx context.Context, userID, title string, description *string, priority string, dueDate *time.Time) (*entities.Todo, error) {
	query := `
		INSERT INTO todos (id, user_id, title, description, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, title, description, priority, dueDate))
	if err != nil {
		return nil, apperrors.Internal("failed to create todo", err)
	}

	return todo, nil
}

// todoOrderClause maps sort options to an ORDER BY clause. Priority sorts
// by rank (low < medium < high), not alphabetically. Unknown values fall
// back to creation-time ascending.
func todoOrderClause(opts ListOptions) string {
	column := "created_at"
	switch strings.ToLower(opts.SortBy) {
	case "title":
		column = "title"
	case "priority":
		column = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"
	}
	direction := "ASC"
	if strings.ToLower(opts.SortOrder) == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// ListByOwner retrieves all todos owned by the given user with optional
// filtering, sorting and pagination
func (r *todoRepository) ListByOwner(ctx context.Context, userID string, opts ListOptions) ([]*entities.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1` +
		statusClause(opts.Status) + " " + todoOrderClause(opts) + ` OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, opts.Skip, opts.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list todos", err)
	}
	defer rows.Close()

	todos := []*entities.Todo{}
	for rows.Next() {
		var todo entities.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&todo.DueDate,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, apperrors.Internal("failed to scan todo", err)
		}
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("error iterating todos", err)
	}

	return todos, nil
}

// GetByID retrieves a todo only if the given user owns it
func (r *todoRepository) GetByID(ctx context.Context, id, userID string) (*entities.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("todo")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to find todo", err)
	}

	return todo, nil
}

func todoSetClause(upd TodoUpdate, args *[]interface{}) string {
	set := []string{"updated_at = NOW()"}
	idx := len(*args) + 1

	appendField := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		*args = append(*args, value)
		idx++
	}

	if upd.Title != nil {
		appendField("title", *upd.Title)
	}
	if upd.ClearDescription {
		set = append(set, "description = NULL")
	} else if upd.Description != nil {
		appendField("description", *upd.Description)
	}
	if upd.Completed != nil {
		appendField("completed", *upd.Completed)
	}
	if upd.Priority != nil {
		appendField("priority", *upd.Priority)
	}
	if upd.DueDate != nil {
		appendField("due_date", upd.DueDate.UTC())
	}

	return strings.Join(set, ", ")
}

// Update applies a partial update to a todo owned by the given user
func (r *todoRepository) Update(ctx context.Context, id, userID string, upd TodoUpdate) (*entities.Todo, error) {
	args := []interface{}{id, userID}
	query := fmt.Sprintf(
		`UPDATE todos SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		todoSetClause(upd, &args), todoColumns,
	)

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("todo")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update todo", err)
	}

	return todo, nil
}

// ToggleCompletion flips the completion flag on a todo owned by the given user
func (r *todoRepository) ToggleCompletion(ctx context.Context, id, userID string) (*entities.Todo, error) {
	query := `
		UPDATE todos
		SET completed = NOT completed, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("todo")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to toggle todo", err)
	}

	return todo, nil
}

// Delete removes a todo owned by the given user
func (r *todoRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperrors.Internal("failed to delete todo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("todo")
	}

	return nil
}

// BulkUpdate applies a partial update to every listed todo the user owns,
// in a single transaction, and returns the number updated
func (r *todoRepository) BulkUpdate(ctx context.Context, ids []string, userID string, upd TodoUpdate) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	args := []interface{}{pq.Array(ids), userID}
	query := fmt.Sprintf(
		`UPDATE todos SET %s WHERE id = ANY($1) AND user_id = $2`,
		todoSetClause(upd, &args),
	)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Internal("failed to bulk update todos", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Internal("failed to get rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.Internal("failed to commit transaction", err)
	}

	return count, nil
}

// BulkDelete removes every listed todo the user owns, in a single
// transaction, and returns the number deleted
func (r *todoRepository) BulkDelete(ctx context.Context, ids []string, userID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ANY($1) AND user_id = $2`, pq.Array(ids), userID)
	if err != nil {
		return 0, apperrors.Internal("failed to bulk delete todos", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Internal("failed to get rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.Internal("failed to commit transaction", err)
	}

	return count, nil
}
