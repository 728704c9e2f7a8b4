package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/auth"
	"github.com/studyboss/study-service/internal/services"
	"github.com/studyboss/study-service/internal/utils"
)

type HandlerManager struct {
	userHandler     *UserHandler
	taskHandler     *TaskHandler
	contentHandler  *ContentHandler
	progressHandler *ProgressHandler
	tokens          *auth.TokenManager
}

func NewHandlerManager(
	userService services.UserService,
	taskService services.TaskService,
	contentService services.ContentService,
	progressService services.ProgressService,
	tokens *auth.TokenManager,
	adminEmail string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:     NewUserHandler(userService, tokens, adminEmail, logger),
		taskHandler:     NewTaskHandler(taskService, logger),
		contentHandler:  NewContentHandler(contentService, logger),
		progressHandler: NewProgressHandler(progressService, logger),
		tokens:          tokens,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/users", hm.userHandler.Register)
		api.POST("/auth/login", hm.userHandler.Login)
		api.GET("/summaries", hm.contentHandler.ListSummaries)
		api.GET("/summaries/:week/:day", hm.contentHandler.GetSummary)
		api.GET("/quizzes/:week", hm.contentHandler.GetQuiz)
		api.GET("/progress/:userId", hm.progressHandler.GetProgress)
		api.GET("/download/summary/:week/:day", hm.contentHandler.Download)
		api.GET("/search", hm.contentHandler.Search)

		// Authenticated routes
		authed := api.Group("")
		authed.Use(RequireAuth(hm.tokens))
		{
			authed.GET("/users/me", hm.userHandler.GetProfile)

			authed.GET("/tasks", hm.taskHandler.ListTasks)
			authed.POST("/tasks", hm.taskHandler.CreateTask)
			authed.PATCH("/tasks/:id", hm.taskHandler.UpdateTask)
			authed.DELETE("/tasks/:id", hm.taskHandler.DeleteTask)

			authed.POST("/quiz-results", hm.progressHandler.RecordResult)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(RequireAuth(hm.tokens), RequireAdmin())
		{
			admin.GET("/users", hm.userHandler.ListUsers)
			admin.GET("/users/export", hm.userHandler.ExportUsers)
			admin.PATCH("/users/:id/activate", hm.userHandler.ActivateUser)

			admin.GET("/summaries", hm.contentHandler.ListSummaries)
			admin.POST("/summaries", hm.contentHandler.CreateSummary)

			admin.POST("/tasks", hm.taskHandler.BroadcastTask)
			admin.POST("/quizzes", hm.contentHandler.CreateQuiz)
		}
	}
}
