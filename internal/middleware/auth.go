package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/constants"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
)

// RequireAuth rejects requests without a logged-in session and copies the
// user ID into the request context for the handlers downstream.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, ok := session.Get(constants.ContextKeyUserID).(uint64)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID placed in the context by
// RequireAuth. Login stores the ID as uint64; anything else reads as an
// absent session.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	return userID, ok
}
