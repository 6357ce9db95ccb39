package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/dto"
	apierrors "github.com/teampulse/daily-report-api/internal/errors"
	"github.com/teampulse/daily-report-api/internal/middleware"
	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/services"
	"github.com/teampulse/daily-report-api/internal/utils"
)

// SnapshotHandler coordinates the daily status snapshot endpoints.
type SnapshotHandler struct {
	snapshotService *services.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Upsert stores today's snapshot, overwriting any earlier one from the
// same day. Responds 201 on first write of the day, 200 on overwrite.
func (h *SnapshotHandler) Upsert(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpsertRequest struct {
		Completed models.StringList `json:"completed"`
		Pending   models.StringList `json:"pending"`
		Blockers  models.StringList `json:"blockers"`
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	snapshot, created, err := h.snapshotService.Upsert(services.UpsertInput{
		UserID:    userID,
		Completed: req.Completed,
		Pending:   req.Pending,
		Blockers:  req.Blockers,
	}, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to save snapshot")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToSnapshotDTO(*snapshot))
}

// Today returns the caller's snapshot for the current day, or null.
func (h *SnapshotHandler) Today(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	snapshot, err := h.snapshotService.Today(userID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch snapshot")
		return
	}

	if snapshot == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDTO(*snapshot))
}

// MyHistory returns all of the caller's snapshots, newest first.
func (h *SnapshotHandler) MyHistory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	snapshots, err := h.snapshotService.History(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch snapshots")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": dto.ToSnapshotDTOs(snapshots),
	})
}

// Team returns a page of every user's snapshots. Manager only.
func (h *SnapshotHandler) Team(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	snapshots, total, err := h.snapshotService.TeamSnapshots(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch snapshots")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": dto.ToSnapshotDTOs(snapshots),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
