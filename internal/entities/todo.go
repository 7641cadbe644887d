package entities

import "time"

// Priority levels for todos
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Todo represents a user-owned todo entity in the database.
// It extends the task shape with a priority level and an optional due date.
type Todo struct {
	ID          string     `json:"id"` // UUID
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"` // low, medium, high
	DueDate     *time.Time `json:"due_date,omitempty"` // Pointer allows nil (no due date)
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
