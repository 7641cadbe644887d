package models

// BulkResponse represents the response after a bulk operation
type BulkResponse struct {
	Success       bool  `json:"success"`
	AffectedCount int64 `json:"affected_count"`
}
