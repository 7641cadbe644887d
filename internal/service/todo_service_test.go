package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/entities"
	"taskhub-be/internal/models"
)

func seedTodo(repo *FakeTodoRepository, id, userID, title, priority string, completed bool) *entities.Todo {
	todo := &entities.Todo{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Priority:  priority,
		Completed: completed,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	repo.Seed(todo)
	return todo
}

func TestTodoCreateDefaultsPriority(t *testing.T) {
	svc := NewTodoService(NewFakeTodoRepository())

	todo, err := svc.Create(context.Background(), "user-a", &models.CreateTodoRequest{Title: "T1"})
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityMedium, todo.Priority)
	assert.Nil(t, todo.DueDate)
}

func TestTodoCreateWithPriorityAndDueDate(t *testing.T) {
	svc := NewTodoService(NewFakeTodoRepository())
	due := time.Now().Add(48 * time.Hour)

	todo, err := svc.Create(context.Background(), "user-a", &models.CreateTodoRequest{
		Title:    "T1",
		Priority: entities.PriorityHigh,
		DueDate:  &due,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityHigh, todo.Priority)
	require.NotNil(t, todo.DueDate)
	assert.True(t, todo.DueDate.Equal(due))
}

func TestTodoCreateRejectsUnknownPriority(t *testing.T) {
	svc := NewTodoService(NewFakeTodoRepository())

	_, err := svc.Create(context.Background(), "user-a", &models.CreateTodoRequest{
		Title:    "T1",
		Priority: "urgent",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.From(err).Kind)
}

func TestTodoUpdateRejectsUnknownPriority(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "T1", entities.PriorityMedium, false)

	_, err := svc.Update(context.Background(), "todo-1", "user-a", &models.UpdateTodoRequest{
		Priority: strPtr("whenever"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.From(err).Kind)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "A's todo", entities.PriorityLow, false)

	_, err := svc.Get(context.Background(), "todo-1", "user-b")
	require.Error(t, err)
	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "todo not found", appErr.Message)

	_, err = svc.Toggle(context.Background(), "todo-1", "user-b")
	assert.Equal(t, apperrors.KindNotFound, apperrors.From(err).Kind)
}

func TestTodoToggleFlipsCompletion(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "T1", entities.PriorityMedium, false)

	todo, err := svc.Toggle(context.Background(), "todo-1", "user-a")
	require.NoError(t, err)
	assert.True(t, todo.Completed)

	todo, err = svc.Toggle(context.Background(), "todo-1", "user-a")
	require.NoError(t, err)
	assert.False(t, todo.Completed)
}

func TestTodoListSortByPriority(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "a", entities.PriorityHigh, false)
	seedTodo(repo, "todo-2", "user-a", "b", entities.PriorityLow, false)
	seedTodo(repo, "todo-3", "user-a", "c", entities.PriorityMedium, false)

	todos, err := svc.List(context.Background(), "user-a", &models.ListQuery{
		SortBy:    "priority",
		SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, todos, 3)
	// Priority ranks low < medium < high, so descending starts at high
	assert.Equal(t, entities.PriorityHigh, todos[0].Priority)
	assert.Equal(t, entities.PriorityMedium, todos[1].Priority)
	assert.Equal(t, entities.PriorityLow, todos[2].Priority)
}

func TestTodoBulkComplete(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "a", entities.PriorityLow, false)
	seedTodo(repo, "todo-2", "user-a", "b", entities.PriorityLow, false)
	seedTodo(repo, "todo-3", "user-b", "c", entities.PriorityLow, false)

	count, err := svc.Bulk(context.Background(), "user-a", &models.BulkTodoRequest{
		Operation: "complete",
		IDs:       []string{"todo-1", "todo-2", "todo-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	foreign, err := svc.Get(context.Background(), "todo-3", "user-b")
	require.NoError(t, err)
	assert.False(t, foreign.Completed)
}

func TestTodoBulkUpdatePriority(t *testing.T) {
	repo := NewFakeTodoRepository()
	svc := NewTodoService(repo)
	seedTodo(repo, "todo-1", "user-a", "a", entities.PriorityLow, false)

	count, err := svc.Bulk(context.Background(), "user-a", &models.BulkTodoRequest{
		Operation: "update",
		IDs:       []string{"todo-1"},
		Data:      &models.UpdateTodoRequest{Priority: strPtr(entities.PriorityHigh)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	todo, err := svc.Get(context.Background(), "todo-1", "user-a")
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityHigh, todo.Priority)
}
