package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-be/internal/apperrors"
	"taskhub-be/internal/middleware"
)

// respondError translates any error into the JSON error envelope. Internal
// causes are logged but never reach the response body.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}
	c.JSON(appErr.Status(), gin.H{
		"error": gin.H{
			"code":    appErr.Code(),
			"message": appErr.Message,
		},
	})
}

// respondBindError reports a request-body or query binding failure
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		},
	})
}

// currentIdentity fetches the authenticated identity set by the auth
// middleware, rejecting the request if it is somehow absent
func currentIdentity(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		respondError(c, apperrors.Unauthenticated("could not validate credentials"))
		return middleware.Identity{}, false
	}
	return identity, true
}
