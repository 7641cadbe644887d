package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/jwt"
)

// identityKey is the gin context key under which the authenticated
// identity is stored
const identityKey = "identity"

// Identity is the resolved, authenticated caller attached to a request
// after successful token verification. It is built from the token claims
// alone; handlers that need the full user record fetch it explicitly.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// AuthMiddleware returns a Gin middleware that authenticates requests via
// a bearer token. It is the single enforcement point for caller identity:
// every protected route composes behind it.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthenticated(c)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(identityKey, Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware. The
// bool is false on routes that did not pass through the middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func abortUnauthenticated(c *gin.Context) {
	err := apperrors.Unauthenticated("could not validate credentials")
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(err.Status(), gin.H{
		"error": gin.H{
			"code":    err.Code(),
			"message": err.Message,
		},
	})
}
