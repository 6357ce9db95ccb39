package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/database"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
	"github.com/teampulse/daily-report-api/internal/models"
)

// RequireTaskAccess checks that the task exists and that the caller may
// act on it: the owner, or a manager replying to it. Loads both the task
// and the acting user into the request context.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if task.OwnerID != user.ID && !user.IsManager() {
			apierrors.Forbidden(c, "Not your task")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Set(contextKeyCurrentUser, user)
		c.Next()
	}
}
