package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/cache"
	"taskhub-be/internal/entities"
	"taskhub-be/internal/repository"
)

// FakeUserRepository is a test-only fake implementing
// repository.UserRepository. It stores users in a map and enforces email
// uniqueness the way the real store's unique index does.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User

	createErr error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[string]*entities.User)}
}

func (f *FakeUserRepository) Create(_ context.Context, email, passwordHash, name string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, apperrors.Conflict("user with this email already exists")
		}
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (f *FakeUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *FakeUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NotFound("user")
}

func (f *FakeUserRepository) UpdateProfile(_ context.Context, id string, name, email *string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	if email != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Email == *email {
				return nil, apperrors.Conflict("user with this email already exists")
			}
		}
		u.Email = *email
	}
	if name != nil {
		u.Name = *name
	}
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

func (f *FakeUserRepository) Deactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	return nil
}

func (f *FakeUserRepository) TouchLastLogin(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

// Seed inserts a user directly, bypassing hashing and uniqueness checks
func (f *FakeUserRepository) Seed(user *entities.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

// FakeTaskRepository is a test-only fake implementing
// repository.TaskRepository. Ownership is enforced exactly like the real
// store: a record owned by someone else behaves as absent.
type FakeTaskRepository struct {
	mu    sync.Mutex
	tasks map[string]*entities.Task
}

func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{tasks: make(map[string]*entities.Task)}
}

func (f *FakeTaskRepository) Seed(task *entities.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[task.ID] = task
}

func (f *FakeTaskRepository) Create(_ context.Context, userID, title string, description *string) (*entities.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	task := &entities.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks[task.ID] = task
	copied := *task
	return &copied, nil
}

func matchStatus(completed bool, status string) bool {
	switch strings.ToLower(status) {
	case "active":
		return !completed
	case "completed":
		return completed
	default:
		return true
	}
}

func (f *FakeTaskRepository) ListByOwner(_ context.Context, userID string, opts repository.ListOptions) ([]*entities.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []*entities.Task{}
	for _, t := range f.tasks {
		if t.UserID == userID && matchStatus(t.Completed, opts.Status) {
			copied := *t
			matched = append(matched, &copied)
		}
	}

	desc := strings.ToLower(opts.SortOrder) == "desc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		if strings.ToLower(opts.SortBy) == "title" {
			less = matched[i].Title < matched[j].Title
		} else {
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	if opts.Skip >= len(matched) {
		return []*entities.Task{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (f *FakeTaskRepository) GetByID(_ context.Context, id, userID string) (*entities.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("task")
	}
	copied := *t
	return &copied, nil
}

func applyTaskUpdate(t *entities.Task, upd repository.TaskUpdate) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.ClearDescription {
		t.Description = nil
	} else if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	t.UpdatedAt = time.Now()
}

func (f *FakeTaskRepository) Update(_ context.Context, id, userID string, upd repository.TaskUpdate) (*entities.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("task")
	}
	applyTaskUpdate(t, upd)
	copied := *t
	return &copied, nil
}

func (f *FakeTaskRepository) SetCompletion(_ context.Context, id, userID string, completed bool) (*entities.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("task")
	}
	t.Completed = completed
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (f *FakeTaskRepository) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return apperrors.NotFound("task")
	}
	delete(f.tasks, id)
	return nil
}

func (f *FakeTaskRepository) BulkUpdate(_ context.Context, ids []string, userID string, upd repository.TaskUpdate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, id := range ids {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			applyTaskUpdate(t, upd)
			count++
		}
	}
	return count, nil
}

func (f *FakeTaskRepository) BulkDelete(_ context.Context, ids []string, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, id := range ids {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			delete(f.tasks, id)
			count++
		}
	}
	return count, nil
}

// FakeTodoRepository is a test-only fake implementing
// repository.TodoRepository
type FakeTodoRepository struct {
	mu    sync.Mutex
	todos map[string]*entities.Todo
}

func NewFakeTodoRepository() *FakeTodoRepository {
	return &FakeTodoRepository{todos: make(map[string]*entities.Todo)}
}

func (f *FakeTodoRepository) Seed(todo *entities.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos[todo.ID] = todo
}

func (f *FakeTodoRepository) Create(_ context.Context, userID, title string, description *string, priority string, dueDate *time.Time) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	todo := &entities.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.todos[todo.ID] = todo
	copied := *todo
	return &copied, nil
}

func (f *FakeTodoRepository) ListByOwner(_ context.Context, userID string, opts repository.ListOptions) ([]*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []*entities.Todo{}
	for _, t := range f.todos {
		if t.UserID == userID && matchStatus(t.Completed, opts.Status) {
			copied := *t
			matched = append(matched, &copied)
		}
	}

	priorityRank := map[string]int{
		entities.PriorityLow:    1,
		entities.PriorityMedium: 2,
		entities.PriorityHigh:   3,
	}
	desc := strings.ToLower(opts.SortOrder) == "desc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch strings.ToLower(opts.SortBy) {
		case "title":
			less = matched[i].Title < matched[j].Title
		case "priority":
			less = priorityRank[matched[i].Priority] < priorityRank[matched[j].Priority]
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	if opts.Skip >= len(matched) {
		return []*entities.Todo{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (f *FakeTodoRepository) GetByID(_ context.Context, id, userID string) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("todo")
	}
	copied := *t
	return &copied, nil
}

func applyTodoUpdate(t *entities.Todo, upd repository.TodoUpdate) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.ClearDescription {
		t.Description = nil
	} else if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	t.UpdatedAt = time.Now()
}

func (f *FakeTodoRepository) Update(_ context.Context, id, userID string, upd repository.TodoUpdate) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("todo")
	}
	applyTodoUpdate(t, upd)
	copied := *t
	return &copied, nil
}

func (f *FakeTodoRepository) ToggleCompletion(_ context.Context, id, userID string) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NotFound("todo")
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (f *FakeTodoRepository) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return apperrors.NotFound("todo")
	}
	delete(f.todos, id)
	return nil
}

func (f *FakeTodoRepository) BulkUpdate(_ context.Context, ids []string, userID string, upd repository.TodoUpdate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, id := range ids {
		if t, ok := f.todos[id]; ok && t.UserID == userID {
			applyTodoUpdate(t, upd)
			count++
		}
	}
	return count, nil
}

func (f *FakeTodoRepository) BulkDelete(_ context.Context, ids []string, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, id := range ids {
		if t, ok := f.todos[id]; ok && t.UserID == userID {
			delete(f.todos, id)
			count++
		}
	}
	return count, nil
}

// FakeCache is a test-only in-memory cache implementing cache.Cache
type FakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewFakeCache() *FakeCache {
	return &FakeCache{entries: make(map[string][]byte)}
}

func (f *FakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *FakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *FakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

// Has reports whether a key is currently cached
func (f *FakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}
