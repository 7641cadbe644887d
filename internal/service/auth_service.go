package service

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/jwt"
	"taskhub-be/internal/models"
	"taskhub-be/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup creates a new user account and returns it with a token for
// automatic login. Duplicate emails surface as a conflict; the unique
// constraint in the store decides races, not a lookup here.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user, err := s.userRepo.Create(ctx, req.Email, string(hashedPassword), req.Name)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}

// Login authenticates a user by email and password and returns a token.
// Unknown email, wrong password and a deactivated account all produce the
// same response so none of them can be probed apart.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		log.Printf("Warning: failed to record last login for user %s: %v", user.ID, err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}
