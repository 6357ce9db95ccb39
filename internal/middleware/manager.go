package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/database"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
	"github.com/teampulse/daily-report-api/internal/models"
)

const contextKeyCurrentUser = "current_user"

// RequireManager loads the authenticated user and rejects callers without
// the manager role. Team board, pending reports and per-employee history
// are manager-only views.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsManager() {
			apierrors.Forbidden(c, "Manager role required")
			c.Abort()
			return
		}

		c.Set(contextKeyCurrentUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the loaded user from context, if a middleware
// put it there.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get(contextKeyCurrentUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := userInterface.(models.User)
	return user, ok
}
