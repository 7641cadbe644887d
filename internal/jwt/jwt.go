package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"taskhub-be/internal/apperrors"
)

// Claims holds the identity claims carried by a token. The subject
// registered claim is the user ID.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

// JWTService issues and verifies signed bearer tokens. It is the only
// component that touches the signing secret; tokens minted by an external
// issuer with the same secret and claim shape verify identically.
type JWTService struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewJWTService creates a new JWT service with the given signing secret
// and default token lifetime
func NewJWTService(secret string, defaultTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

// GenerateToken issues a signed token for the given user with the
// service's default TTL
func (s *JWTService) GenerateToken(userID, email, name string) (string, error) {
	return s.GenerateTokenWithTTL(userID, email, name, s.defaultTTL)
}

// GenerateTokenWithTTL issues a signed token with an explicit lifetime.
// A token without a subject is never issued.
func (s *JWTService) GenerateTokenWithTTL(userID, email, name string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", apperrors.Validation("token subject is required")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}

	return signed, nil
}

// ValidateToken verifies a token and returns its claims. Malformed tokens,
// bad signatures and expired tokens all collapse into the same generic
// authentication failure so callers cannot tell them apart.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwtlib.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthenticated("could not validate credentials")
	}

	if claims.Subject == "" {
		return nil, apperrors.Unauthenticated("could not validate credentials")
	}

	return claims, nil
}
