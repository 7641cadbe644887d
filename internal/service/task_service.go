package service

import (
	"context"
	"strings"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/entities"
	"taskhub-be/internal/models"
	"taskhub-be/internal/repository"
)

// TaskService defines the interface for task business logic. Every
// operation is scoped to the authenticated owner's id.
type TaskService interface {
	Create(ctx context.Context, userID string, req *models.CreateTaskRequest) (*entities.Task, error)
	List(ctx context.Context, userID string, query *models.ListQuery) ([]*entities.Task, error)
	Get(ctx context.Context, id, userID string) (*entities.Task, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateTaskRequest) (*entities.Task, error)
	SetCompletion(ctx context.Context, id, userID string, completed bool) (*entities.Task, error)
	Delete(ctx context.Context, id, userID string) error
	Bulk(ctx context.Context, userID string, req *models.BulkTaskRequest) (int64, error)
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// validateTitle rejects empty or over-long titles. An empty title is
// always a caller mistake, never an intentional clear.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.Validation("title cannot be empty")
	}
	if len(title) > 255 {
		return apperrors.Validation("title must be at most 255 characters")
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > 1000 {
		return apperrors.Validation("description must be at most 1000 characters")
	}
	return nil
}

// taskUpdateFromRequest converts the API update shape into the repository
// update. An explicit empty description clears the field; an empty title
// is rejected upstream by validation.
func taskUpdateFromRequest(req *models.UpdateTaskRequest) (repository.TaskUpdate, error) {
	upd := repository.TaskUpdate{Completed: req.Completed}

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

	return upd, nil
}

func listOptionsFromQuery(query *models.ListQuery) repository.ListOptions {
	query.Normalize()
	return repository.ListOptions{
		Status:    query.Status,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Skip:      query.Skip,
		Limit:     query.Limit,
	}
}

// Create creates a new task owned by the given user
func (s *taskService) Create(ctx context.Context, userID string, req *models.CreateTaskRequest) (*entities.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, strings.TrimSpace(req.Title), req.Description)
}

// List retrieves the user's tasks with filtering, sorting and pagination
func (s *taskService) List(ctx context.Context, userID string, query *models.ListQuery) ([]*entities.Task, error) {
	return s.repo.ListByOwner(ctx, userID, listOptionsFromQuery(query))
}

// Get retrieves a single task owned by the given user
func (s *taskService) Get(ctx context.Context, id, userID string) (*entities.Task, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Update applies a partial update to a task owned by the given user.
// An empty payload is valid and only advances the updated timestamp.
func (s *taskService) Update(ctx context.Context, id, userID string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	upd, err := taskUpdateFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, userID, upd)
}

// SetCompletion sets the completion flag on a task owned by the given user
func (s *taskService) SetCompletion(ctx context.Context, id, userID string, completed bool) (*entities.Task, error) {
	return s.repo.SetCompletion(ctx, id, userID, completed)
}

// Delete removes a task owned by the given user
func (s *taskService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// Bulk performs a bulk operation over the subset of ids the user owns and
// returns how many records were affected
func (s *taskService) Bulk(ctx context.Context, userID string, req *models.BulkTaskRequest) (int64, error) {
	switch req.Operation {
	case "update":
		if req.Data == nil {
			return 0, apperrors.Validation("update data required for update operation")
		}
		upd, err := taskUpdateFromRequest(req.Data)
		if err != nil {
			return 0, err
		}
		return s.repo.BulkUpdate(ctx, req.IDs, userID, upd)
	case "delete":
		return s.repo.BulkDelete(ctx, req.IDs, userID)
	case "complete":
		completed := true
		return s.repo.BulkUpdate(ctx, req.IDs, userID, repository.TaskUpdate{Completed: &completed})
	case "uncomplete":
		completed := false
		return s.repo.BulkUpdate(ctx, req.IDs, userID, repository.TaskUpdate{Completed: &completed})
	default:
		return 0, apperrors.Validation("unsupported operation: " + req.Operation)
	}
}
