package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/dto"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
	"github.com/teampulse/daily-report-api/internal/middleware"
	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/services"
)

// TaskHandler coordinates task-reporting HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListMyTasks returns the caller's tasks created today.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.MyTasks(userID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// CreateTask creates a new self-reported task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Text          string            `json:"text" binding:"required"`
		Status        models.TaskStatus `json:"status"`
		BlockerReason string            `json:"blocker_reason"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please add a task description")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:       userID,
		Text:          req.Text,
		Status:        req.Status,
		BlockerReason: req.BlockerReason,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies owner edits or a manager reply to a task.
// The task and acting user are loaded by RequireTaskAccess.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateTaskRequest struct {
		Text          *string            `json:"text"`
		Status        *models.TaskStatus `json:"status"`
		BlockerReason *string            `json:"blocker_reason"`
		ManagerReply  *string            `json:"manager_reply"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, &actor, services.UpdateTaskInput{
		Text:          req.Text,
		Status:        req.Status,
		BlockerReason: req.BlockerReason,
		ManagerReply:  req.ManagerReply,
	}, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes one of the caller's own tasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id": taskID,
	})
}

// MyHistory returns the caller's full task history grouped by day.
func (h *TaskHandler) MyHistory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	history, err := h.taskService.MyHistory(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
	})
}

// AssignTask lets a manager create a task on an employee's behalf.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	manager, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AssignTaskRequest struct {
		Text     string `json:"text" binding:"required"`
		UserID   uint64 `json:"user_id" binding:"required"`
		Deadline string `json:"deadline"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please add text and select a user")
		return
	}

	task, err := h.taskService.AssignTask(services.AssignTaskInput{
		ManagerID: manager.ID,
		OwnerID:   req.UserID,
		Text:      req.Text,
		Deadline:  req.Deadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// EmployeeHistory returns a single employee's day-bucketed history inside
// the requested range. Manager only.
func (h *TaskHandler) EmployeeHistory(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	history, err := h.taskService.EmployeeHistory(userID, c.Query("range"), time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTextRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrAssignTargetRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAssignTargetNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
