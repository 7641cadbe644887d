package entities

import "time"

// Task represents a user-owned task entity in the database
type Task struct {
	ID          string    `json:"id"` // UUID
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"` // Pointer allows nil (no description)
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
