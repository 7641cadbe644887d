package models

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Omitted fields are left unchanged. An explicit empty description clears
// it; an empty title is rejected as a validation error.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Completed   *bool   `json:"completed,omitempty"`
}

// CompleteTaskRequest represents the request body for setting a task's
// completion status
type CompleteTaskRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// BulkTaskRequest represents the request body for bulk task operations
type BulkTaskRequest struct {
	Operation string             `json:"operation" binding:"required,oneof=update delete complete uncomplete"`
	IDs       []string           `json:"ids" binding:"required,min=1"`
	Data      *UpdateTaskRequest `json:"data,omitempty"`
}
