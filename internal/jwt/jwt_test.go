package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-be/internal/apperrors"
)

const testSecret = "test-secret-key-for-signing-tokens"

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, err := svc.GenerateToken("user-123", "a@x.com", "A")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "A", claims.Name)
}

func TestGenerateTokenRejectsMissingSubject(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	_, err := svc.GenerateToken("", "a@x.com", "A")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestValidateTokenFailures(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	expired, err := svc.GenerateTokenWithTTL("user-123", "a@x.com", "A", -time.Minute)
	require.NoError(t, err)

	otherIssuer := NewJWTService("a-completely-different-secret", time.Hour)
	wrongSecret, err := otherIssuer.GenerateToken("user-123", "a@x.com", "A")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "wrong signing secret", token: wrongSecret},
		{name: "malformed token", token: "not-a-jwt"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			require.Error(t, err)

			// Every failure collapses to the same generic classification
			var appErr *apperrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.KindUnauthenticated, appErr.Kind)
			assert.Equal(t, "could not validate credentials", appErr.Message)
		})
	}
}

func TestExternalIssuerWithSharedSecret(t *testing.T) {
	// A token minted elsewhere with the same secret and claim shape must
	// verify identically
	issuer := NewJWTService(testSecret, time.Hour)
	verifier := NewJWTService(testSecret, time.Minute)

	token, err := issuer.GenerateToken("user-456", "b@x.com", "B")
	require.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.Subject)
}

func TestDefaultTTLApplied(t *testing.T) {
	svc := NewJWTService(testSecret, 7*24*time.Hour)

	token, err := svc.GenerateToken("user-123", "", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 7*24*time.Hour-time.Minute)
	assert.LessOrEqual(t, remaining, 7*24*time.Hour)
}
