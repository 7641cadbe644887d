package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/cache"
	"taskhub-be/internal/models"
	"taskhub-be/internal/repository"
)

// profileCacheTTL bounds how stale a cached profile can get
const profileCacheTTL = 5 * time.Minute

// UserService defines the interface for user profile business logic
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	Deactivate(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    cache.Cache
}

// NewUserService creates a new user service. The cache is optional; a nil
// cache disables read-through caching.
func NewUserService(userRepo repository.UserRepository, cacheClient cache.Cache) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    cacheClient,
	}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("user:profile:%s", userID)
}

// GetProfile returns the user's profile, served from cache when possible
func (s *userService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	if s.cache != nil {
		var cached models.UserResponse
		if err := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := models.NewUserResponse(user)
	if s.cache != nil {
		// Best effort; a failed cache write never fails the request
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), response, profileCacheTTL)
	}

	return &response, nil
}

// UpdateProfile applies a partial profile update and invalidates the
// cached profile
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperrors.Validation("name cannot be empty")
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		return nil, apperrors.Validation("email cannot be empty")
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, profileCacheKey(userID))
	}

	response := models.NewUserResponse(user)
	return &response, nil
}

// Deactivate soft-deletes the user's account
func (s *userService) Deactivate(ctx context.Context, userID string) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, profileCacheKey(userID))
	}

	return nil
}
