package models

// UpdateProfileRequest represents the request body for updating the
// authenticated user's profile. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}
