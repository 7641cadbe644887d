package models

import "time"

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=1000"`
	Priority    string     `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTodoRequest represents the request body for a partial todo update.
// Omitted fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=1000"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// BulkTodoRequest represents the request body for bulk todo operations
type BulkTodoRequest struct {
	Operation string             `json:"operation" binding:"required,oneof=update delete complete uncomplete"`
	IDs       []string           `json:"ids" binding:"required,min=1"`
	Data      *UpdateTodoRequest `json:"data,omitempty"`
}
