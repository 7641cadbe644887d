package models

// List option defaults and bounds
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListQuery represents the query parameters for listing records.
// Unrecognized status/sort values fall back to defaults instead of erroring.
type ListQuery struct {
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
	Status    string `form:"status"`     // all, active, completed
	SortBy    string `form:"sort_by"`    // date, priority, title
	SortOrder string `form:"sort_order"` // asc, desc
}

// Normalize clamps pagination values into their allowed ranges
func (q *ListQuery) Normalize() {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
}
