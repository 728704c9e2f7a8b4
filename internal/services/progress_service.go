package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/studyboss/study-service/internal/errors"
	"github.com/studyboss/study-service/internal/events"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/validator"
	"gorm.io/datatypes"
)

type RecordResultRequest struct {
	QuizID  uint  `json:"quizId" validate:"required"`
	Score   int   `json:"score" validate:"min=0,max=100"`
	Answers []int `json:"answers" validate:"required"`
}

// ProgressReport aggregates a user's task completion and quiz history.
// Rates are percentages rounded to two decimals.
type ProgressReport struct {
	CompletedTasks     int     `json:"completedTasks"`
	TotalTasks         int     `json:"totalTasks"`
	TaskCompletionRate float64 `json:"taskCompletionRate"`
	AverageQuizScore   float64 `json:"averageQuizScore"`
	TotalQuizzesTaken  int     `json:"totalQuizzesTaken"`
}

type ProgressService interface {
	RecordResult(ctx context.Context, userID uint, req *RecordResultRequest) (*models.QuizResult, error)
	Progress(ctx context.Context, userID uint) (*ProgressReport, error)
}

type progressService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProgressService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ProgressService {
	return &progressService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// RecordResult appends a quiz attempt. Retakes are allowed; every attempt
// is kept and all of them count toward the average.
func (s *progressService) RecordResult(ctx context.Context, userID uint, req *RecordResultRequest) (*models.QuizResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	result := &models.QuizResult{
		UserID:  userID,
		QuizID:  req.QuizID,
		Score:   req.Score,
		Answers: datatypes.JSON(answersJSON),
	}

	if err := s.repo.QuizResults().Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to record quiz result: %w", err)
	}

	s.logger.Info("Quiz result recorded", "user_id", userID, "quiz_id", req.QuizID, "score", req.Score)
	s.publishEvent(ctx, events.NewEvent(events.EventQuizResultRecorded, events.QuizResultRecordedEvent{
		ResultID: result.ID,
		UserID:   userID,
		QuizID:   req.QuizID,
		Score:    req.Score,
	}))

	return result, nil
}

func (s *progressService) Progress(ctx context.Context, userID uint) (*ProgressReport, error) {
	tasks, err := s.repo.Tasks().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	results, err := s.repo.QuizResults().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	report := &ProgressReport{
		TotalTasks:        len(tasks),
		TotalQuizzesTaken: len(results),
	}

	for _, task := range tasks {
		if task.IsCompleted {
			report.CompletedTasks++
		}
	}
	if report.TotalTasks > 0 {
		report.TaskCompletionRate = round2(float64(report.CompletedTasks) / float64(report.TotalTasks) * 100)
	}

	if len(results) > 0 {
		total := 0
		for _, result := range results {
			total += result.Score
		}
		report.AverageQuizScore = round2(float64(total) / float64(len(results)))
	}

	return report, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func (s *progressService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
