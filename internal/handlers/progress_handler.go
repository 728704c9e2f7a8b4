package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/services"
	"github.com/studyboss/study-service/internal/utils"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// RecordResult stores a quiz attempt for the caller
func (h *ProgressHandler) RecordResult(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.progressService.RecordResult(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetProgress returns a user's aggregated task and quiz progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := h.parseIDParam(c, "userId")
	if userID == 0 {
		return
	}

	report, err := h.progressService.Progress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
