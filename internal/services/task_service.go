package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyboss/study-service/internal/errors"
	"github.com/studyboss/study-service/internal/events"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsCompleted *bool   `json:"isCompleted"`
}

type BroadcastTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// BroadcastResult reports the per-user outcome of an admin broadcast. A
// broadcast is best-effort: one failing user does not roll back the rest.
type BroadcastResult struct {
	UsersTargeted int             `json:"usersTargeted"`
	TasksCreated  int             `json:"tasksCreated"`
	Tasks         []*models.Task  `json:"tasks"`
	Failures      []BroadcastFail `json:"failures,omitempty"`
}

type BroadcastFail struct {
	UserID uint   `json:"userId"`
	Error  string `json:"error"`
}

type TaskService interface {
	ListForUser(ctx context.Context, userID uint) ([]*models.Task, error)
	Create(ctx context.Context, userID uint, req *CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, userID uint, taskID uint, req *UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, userID uint, isAdmin bool, taskID uint) error
	Broadcast(ctx context.Context, req *BroadcastTaskRequest) (*BroadcastResult, error)
}

type taskService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTaskService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) TaskService {
	return &taskService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ListForUser returns the user's own tasks plus all admin broadcast tasks,
// newest first.
func (s *taskService) ListForUser(ctx context.Context, userID uint) ([]*models.Task, error) {
	tasks, err := s.repo.Tasks().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, userID uint, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	// Clients cannot mint admin or pre-completed tasks; the flags are
	// always reset here.
	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: false,
		IsAdminTask: false,
	}

	if err := s.repo.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *taskService) Update(ctx context.Context, userID uint, taskID uint, req *UpdateTaskRequest) (*models.Task, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	updates := map[string]interface{}{}
	if task.IsAdminTask {
		// A broadcast task shows up in every student's list; students may
		// only toggle their own completion, never edit the content.
		if task.UserID != userID {
			return nil, ErrTaskAccessDenied
		}
		if req.Title != nil || req.Description != nil {
			return nil, ErrTaskAccessDenied
		}
	} else if task.UserID != userID {
		return nil, ErrTaskAccessDenied
	}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.IsCompleted != nil {
		updates["is_completed"] = *req.IsCompleted
	}

	if len(updates) == 0 {
		return task, nil
	}

	updated, err := s.repo.Tasks().Update(ctx, taskID, updates)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, userID uint, isAdmin bool, taskID uint) error {
	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if !isAdmin {
		if task.IsAdminTask || task.UserID != userID {
			return ErrTaskAccessDenied
		}
	}

	deleted, err := s.repo.Tasks().Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// Broadcast creates one admin task per registered user. Failures for
// individual users are collected rather than aborting the loop, so a
// partially applied broadcast still reports what it did.
func (s *taskService) Broadcast(ctx context.Context, req *BroadcastTaskRequest) (*BroadcastResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	users, err := s.repo.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := &BroadcastResult{
		UsersTargeted: len(users),
		Tasks:         make([]*models.Task, 0, len(users)),
	}

	for _, user := range users {
		task := &models.Task{
			UserID:      user.ID,
			Title:       req.Title,
			Description: req.Description,
			IsCompleted: false,
			IsAdminTask: true,
		}
		if err := s.repo.Tasks().Create(ctx, task); err != nil {
			s.logger.Error("Failed to create broadcast task", "user_id", user.ID, "error", err)
			result.Failures = append(result.Failures, BroadcastFail{UserID: user.ID, Error: err.Error()})
			continue
		}
		result.Tasks = append(result.Tasks, task)
	}
	result.TasksCreated = len(result.Tasks)

	taskIDs := make([]uint, 0, len(result.Tasks))
	for _, task := range result.Tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	s.logger.Info("Broadcast tasks created",
		"title", req.Title,
		"users_targeted", result.UsersTargeted,
		"tasks_created", result.TasksCreated)
	s.publishEvent(ctx, events.NewEvent(events.EventTaskBroadcast, events.TaskBroadcastEvent{
		Title:         req.Title,
		UsersTargeted: result.UsersTargeted,
		TasksCreated:  result.TasksCreated,
		TaskIDs:       taskIDs,
	}))

	return result, nil
}

func (s *taskService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
