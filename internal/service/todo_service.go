package service

import (
	"context"
	"strings"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/entities"
	"taskhub-be/internal/models"
	"taskhub-be/internal/repository"
)

// TodoService defines the interface for todo business logic. It mirrors
// the task service, with priority and due-date handling on top.
type TodoService interface {
	Create(ctx context.Context, userID string, req *models.CreateTodoRequest) (*entities.Todo, error)
	List(ctx context.Context, userID string, query *models.ListQuery) ([]*entities.Todo, error)
	Get(ctx context.Context, id, userID string) (*entities.Todo, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateTodoRequest) (*entities.Todo, error)
	Toggle(ctx context.Context, id, userID string) (*entities.Todo, error)
	Delete(ctx context.Context, id, userID string) error
	Bulk(ctx context.Context, userID string, req *models.BulkTodoRequest) (int64, error)
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a new todo service
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func validatePriority(priority string) error {
	if !entities.ValidPriority(priority) {
		return apperrors.Validation("priority must be one of: low, medium, high")
	}
	return nil
}

func todoUpdateFromRequest(req *models.UpdateTodoRequest) (repository.TodoUpdate, error) {
	upd := repository.TodoUpdate{
		Completed: req.Completed,
		DueDate:   req.DueDate,
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return upd, err
		}
		upd.Title = req.Title
	}
	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return upd, err
		}
		if strings.TrimSpace(*req.Description) == "" {
			upd.ClearDescription = true
		} else {
			upd.Description = req.Description
		}
	}
	if req.Priority != nil {
		if err := validatePriority(*req.Priority); err != nil {
			return upd, err
		}
		upd.Priority = req.Priority
	}

	return upd, nil
}

// Create creates a new todo owned by the given user. Priority defaults to
// medium when omitted.
func (s *todoService) Create(ctx context.Context, userID string, req *models.CreateTodoRequest) (*entities.Todo, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, strings.TrimSpace(req.Title), req.Description, priority, req.DueDate)
}

// List retrieves the user's todos with filtering, sorting and pagination
func (s *todoService) List(ctx context.Context, userID string, query *models.ListQuery) ([]*entities.Todo, error) {
	return s.repo.ListByOwner(ctx, userID, listOptionsFromQuery(query))
}

// Get retrieves a single todo owned by the given user
func (s *todoService) Get(ctx context.Context, id, userID string) (*entities.Todo, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Update applies a partial update to a todo owned by the given user
func (s *todoService) Update(ctx context.Context, id, userID string, req *models.UpdateTodoRequest) (*entities.Todo, error) {
	upd, err := todoUpdateFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, userID, upd)
}

// Toggle flips the completion status of a todo owned by the given user
func (s *todoService) Toggle(ctx context.Context, id, userID string) (*entities.Todo, error) {
	return s.repo.ToggleCompletion(ctx, id, userID)
}

// Delete removes a todo owned by the given user
func (s *todoService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// Bulk performs a bulk operation over the subset of ids the user owns and
// returns how many records were affected
func (s *todoService) Bulk(ctx context.Context, userID string, req *models.BulkTodoRequest) (int64, error) {
	switch req.Operation {
	case "update":
		if req.Data == nil {
			return 0, apperrors.Validation("update data required for update operation")
		}
		upd, err := todoUpdateFromRequest(req.Data)
		if err != nil {
			return 0, err
		}
		return s.repo.BulkUpdate(ctx, req.IDs, userID, upd)
	case "delete":
		return s.repo.BulkDelete(ctx, req.IDs, userID)
	case "complete":
		completed := true
		return s.repo.BulkUpdate(ctx, req.IDs, userID, repository.TodoUpdate{Completed: &completed})
	case "uncomplete":
		completed := false
		return s.repo.BulkUpdate(ctx, req.IDs, userID, repository.TodoUpdate{Completed: &completed})
	default:
		return 0, apperrors.Validation("unsupported operation: " + req.Operation)
	}
}
