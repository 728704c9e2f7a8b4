package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/services"
	"github.com/studyboss/study-service/internal/utils"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService, logger utils.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskService: taskService,
	}
}

// ListTasks returns the caller's tasks plus admin broadcast tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	tasks, err := h.taskService.ListForUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a personal task for the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates a task the caller owns
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), principal.UserID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task the caller owns; admins may delete any task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), principal.UserID, principal.IsAdmin, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Task deleted"})
}

// BroadcastTask creates an admin task for every registered user (admin only)
func (h *TaskHandler) BroadcastTask(c *gin.Context) {
	var req services.BroadcastTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.taskService.Broadcast(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Broadcast completed",
		Data:    result,
	})
}
