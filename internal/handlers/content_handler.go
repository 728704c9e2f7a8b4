package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/services"
	"github.com/studyboss/study-service/internal/utils"
)

type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
	}
}

// parseWeekDay parses the :week and :day path parameters. A false return
// means the response was already written.
func (h *ContentHandler) parseWeekDay(c *gin.Context) (int, int, bool) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid week",
			Details: "must be an integer",
		})
		return 0, 0, false
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid day",
			Details: "must be an integer",
		})
		return 0, 0, false
	}
	return week, day, true
}

// ListSummaries returns all summaries, optionally filtered by ?week=
func (h *ContentHandler) ListSummaries(c *gin.Context) {
	var week *int
	if weekStr := c.Query("week"); weekStr != "" {
		parsed, err := strconv.Atoi(weekStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid week",
				Details: "must be an integer",
			})
			return
		}
		week = &parsed
	}

	summaries, err := h.contentService.ListSummaries(c.Request.Context(), week)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetSummary returns the summary for a specific week and day
func (h *ContentHandler) GetSummary(c *gin.Context) {
	week, day, ok := h.parseWeekDay(c)
	if !ok {
		return
	}

	summary, err := h.contentService.GetSummary(c.Request.Context(), week, day)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CreateSummary publishes a new summary (admin only)
func (h *ContentHandler) CreateSummary(c *gin.Context) {
	var req services.CreateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	summary, err := h.contentService.CreateSummary(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// GetQuiz returns the quiz for a week. Without ?day= it resolves the weekly
// quiz; with it, the daily one.
func (h *ContentHandler) GetQuiz(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid week",
			Details: "must be an integer",
		})
		return
	}

	var day *int
	if dayStr := c.Query("day"); dayStr != "" {
		parsed, err := strconv.Atoi(dayStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid day",
				Details: "must be an integer",
			})
			return
		}
		day = &parsed
	}

	quiz, err := h.contentService.GetQuiz(c.Request.Context(), week, day)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// CreateQuiz publishes a new quiz (admin only)
func (h *ContentHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.contentService.CreateQuiz(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// Search matches summaries and quizzes against ?q=
func (h *ContentHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Search query is required",
			Details: "q must not be empty",
		})
		return
	}

	result, err := h.contentService.Search(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Download returns the download payload for a summary
func (h *ContentHandler) Download(c *gin.Context) {
	week, day, ok := h.parseWeekDay(c)
	if !ok {
		return
	}

	info, err := h.contentService.Download(c.Request.Context(), week, day)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
