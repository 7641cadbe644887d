package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/entities"
)

// ListOptions controls filtering, sorting and pagination for list queries.
// Unrecognized status/sort values fall back to defaults.
type ListOptions struct {
	Status    string // all, active, completed
	SortBy    string // date, priority, title
	SortOrder string // asc, desc
	Skip      int
	Limit     int
}

// TaskUpdate describes a partial task update. Nil fields are left
// unchanged; ClearDescription removes the description entirely.
type TaskUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

// TaskRepository defines the interface for task database operations.
// Every query that targets a single record carries the owner in the same
// predicate as the id, so a record owned by someone else is
// indistinguishable from one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, userID, title string, description *string) (*entities.Task, error)
	ListByOwner(ctx context.Context, userID string, opts ListOptions) ([]*entities.Task, error)
	GetByID(ctx context.Context, id, userID string) (*entities.Task, error)
	Update(ctx context.Context, id, userID string, upd TaskUpdate) (*entities.Task, error)
	SetCompletion(ctx context.Context, id, userID string, completed bool) (*entities.Task, error)
	Delete(ctx context.Context, id, userID string) error
	BulkUpdate(ctx context.Context, ids []string, userID string, upd TaskUpdate) (int64, error)
	BulkDelete(ctx context.Context, ids []string, userID string) (int64, error)
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

func scanTask(row *sql.Row) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task owned by the given user
func (r *taskRepository) Create(ctx context.Context, userID, title string, description *string) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, title, description))
	if err != nil {
		return nil, apperrors.Internal("failed to create task", err)
	}

	return task, nil
}

// taskOrderClause maps sort options to an ORDER BY clause. Unknown values
// fall back to creation-time ascending.
func taskOrderClause(opts ListOptions) string {
	column := "created_at"
	if strings.ToLower(opts.SortBy) == "title" {
		column = "title"
	}
	direction := "ASC"
	if strings.ToLower(opts.SortOrder) == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// statusClause maps a completion filter to a WHERE fragment; "all" and
// unknown values add no filter.
func statusClause(status string) string {
	switch strings.ToLower(status) {
	case "active":
		return " AND completed = FALSE"
	case "completed":
		return " AND completed = TRUE"
	default:
		return ""
	}
}

// ListByOwner retrieves all tasks owned by the given user with optional
// filtering, sorting and pagination
func (r *taskRepository) ListByOwner(ctx context.Context, userID string, opts ListOptions) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1` +
		statusClause(opts.Status) + " " + taskOrderClause(opts) + ` OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, opts.Skip, opts.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list tasks", err)
	}
	defer rows.Close()

	tasks := []*entities.Task{}
	for rows.Next() {
		var task entities.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, apperrors.Internal("failed to scan task", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("error iterating tasks", err)
	}

	return tasks, nil
}

// GetByID retrieves a task only if the given user owns it
func (r *taskRepository) GetByID(ctx context.Context, id, userID string) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("task")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to find task", err)
	}

	return task, nil
}

// taskSetClause builds the SET fragment for a partial update. updated_at
// is always refreshed, even for an empty update.
func taskSetClause(upd TaskUpdate, args *[]interface{}) string {
	set := []string{"updated_at = NOW()"}
	idx := len(*args) + 1

	if upd.Title != nil {
		set = append(set, fmt.Sprintf("title = $%d", idx))
		*args = append(*args, *upd.Title)
		idx++
	}
	if upd.ClearDescription {
		set = append(set, "description = NULL")
	} else if upd.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", idx))
		*args = append(*args, *upd.Description)
		idx++
	}
	if upd.Completed != nil {
		set = append(set, fmt.Sprintf("completed = $%d", idx))
		*args = append(*args, *upd.Completed)
	}

	return strings.Join(set, ", ")
}

// Update applies a partial update to a task owned by the given user
func (r *taskRepository) Update(ctx context.Context, id, userID string, upd TaskUpdate) (*entities.Task, error) {
	args := []interface{}{id, userID}
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		taskSetClause(upd, &args), taskColumns,
	)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("task")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update task", err)
	}

	return task, nil
}

// SetCompletion sets the completion flag on a task owned by the given user
func (r *taskRepository) SetCompletion(ctx context.Context, id, userID string, completed bool) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET completed = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID, completed))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("task")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update task", err)
	}

	return task, nil
}

// Delete removes a task owned by the given user
func (r *taskRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperrors.Internal("failed to delete task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("task")
	}

	return nil
}

// BulkUpdate applies a partial update to every listed task the user owns,
// in a single transaction. Ids the user does not own are left untouched;
// the returned count covers only the owned subset.
func (r *taskRepository) BulkUpdate(ctx context.Context, ids []string, userID string, upd TaskUpdate) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	args := []interface{}{pq.Array(ids), userID}
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = ANY($1) AND user_id = $2`,
		taskSetClause(upd, &args),
	)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Internal("failed to bulk update tasks", err)
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

// BulkDelete removes every listed task the user owns, in a single
// transaction, and returns the number deleted
func (r *taskRepository) BulkDelete(ctx context.Context, ids []string, userID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ANY($1) AND user_id = $2`, pq.Array(ids), userID)
	if err != nil {
		return 0, apperrors.Internal("failed to bulk delete tasks", err)
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
