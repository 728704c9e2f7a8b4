package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyboss/study-service/internal/cache"
	apperrors "github.com/studyboss/study-service/internal/errors"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/validator"
	"gorm.io/datatypes"
)

// summaryCacheTTL keeps published summaries hot; content only changes when
// an admin re-uploads, which also invalidates the entry.
const summaryCacheTTL = 15 * time.Minute

type CreateSummaryRequest struct {
	Week    int     `json:"week" validate:"required,min=1,max=16"`
	Day     int     `json:"day" validate:"required,min=1,max=6"`
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Content *string `json:"content"`
	FileURL *string `json:"fileUrl" validate:"omitempty,url"`
}

type CreateQuizRequest struct {
	Week      int                   `json:"week" validate:"required,min=1,max=16"`
	Day       *int                  `json:"day" validate:"omitempty,min=1,max=6"`
	Title     string                `json:"title" validate:"required,min=1,max=200"`
	Questions []models.QuizQuestion `json:"questions" validate:"required"`
	IsWeekly  bool                  `json:"isWeekly"`
}

type SearchResult struct {
	Summaries []*models.Summary `json:"summaries"`
	Quizzes   []*models.Quiz    `json:"quizzes"`
}

// DownloadInfo is what the download endpoint returns; actual file hosting
// lives behind the fileUrl.
type DownloadInfo struct {
	Title       string  `json:"title"`
	Content     *string `json:"content"`
	DownloadURL *string `json:"downloadUrl"`
}

type ContentService interface {
	CreateSummary(ctx context.Context, req *CreateSummaryRequest) (*models.Summary, error)
	GetSummary(ctx context.Context, week, day int) (*models.Summary, error)
	ListSummaries(ctx context.Context, week *int) ([]*models.Summary, error)
	CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	GetQuiz(ctx context.Context, week int, day *int) (*models.Quiz, error)
	Search(ctx context.Context, query string) (*SearchResult, error)
	Download(ctx context.Context, week, day int) (*DownloadInfo, error)
}

type contentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *validator.Validator,
) ContentService {
	return &contentService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func summaryCacheKey(week, day int) string {
	return fmt.Sprintf("summary:%d:%d", week, day)
}

func (s *contentService) CreateSummary(ctx context.Context, req *CreateSummaryRequest) (*models.Summary, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	exists, err := s.repo.Summaries().ExistsByWeekDay(ctx, req.Week, req.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to check summary uniqueness: %w", err)
	}
	if exists {
		return nil, ErrSummaryExists
	}

	summary := &models.Summary{
		Week:    req.Week,
		Day:     req.Day,
		Title:   req.Title,
		Content: req.Content,
		FileURL: req.FileURL,
	}

	if err := s.repo.Summaries().Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to create summary: %w", err)
	}

	if err := s.cache.Delete(ctx, summaryCacheKey(req.Week, req.Day)); err != nil {
		s.logger.Warn("Failed to invalidate summary cache", "week", req.Week, "day", req.Day, "error", err)
	}

	s.logger.Info("Summary created", "summary_id", summary.ID, "week", summary.Week, "day", summary.Day)
	return summary, nil
}

func (s *contentService) GetSummary(ctx context.Context, week, day int) (*models.Summary, error) {
	key := summaryCacheKey(week, day)

	var cached models.Summary
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Summary cache read failed", "key", key, "error", err)
	}

	summary, err := s.repo.Summaries().GetByWeekDay(ctx, week, day)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	if err := s.cache.Set(ctx, key, summary, summaryCacheTTL); err != nil {
		s.logger.Warn("Summary cache write failed", "key", key, "error", err)
	}

	return summary, nil
}

func (s *contentService) ListSummaries(ctx context.Context, week *int) ([]*models.Summary, error) {
	if week != nil {
		summaries, err := s.repo.Summaries().ListByWeek(ctx, *week)
		if err != nil {
			return nil, fmt.Errorf("failed to list summaries for week: %w", err)
		}
		return summaries, nil
	}

	summaries, err := s.repo.Summaries().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

func (s *contentService) CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	// A weekly quiz covers the whole week and carries no day; a daily quiz
	// must name one.
	if req.IsWeekly != (req.Day == nil) {
		return nil, ErrQuizInvalidSchedule
	}

	if err := s.validator.Quiz().ValidateQuestions(req.Questions); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	exists, err := s.repo.Quizzes().ExistsByWeekDay(ctx, req.Week, req.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to check quiz uniqueness: %w", err)
	}
	if exists {
		return nil, ErrQuizExists
	}

	questionsJSON, err := json.Marshal(req.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	quiz := &models.Quiz{
		Week:      req.Week,
		Day:       req.Day,
		Title:     req.Title,
		Questions: datatypes.JSON(questionsJSON),
		IsWeekly:  req.IsWeekly,
	}

	if err := s.repo.Quizzes().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "week", quiz.Week, "is_weekly", quiz.IsWeekly)
	return quiz, nil
}

func (s *contentService) GetQuiz(ctx context.Context, week int, day *int) (*models.Quiz, error) {
	quiz, err := s.repo.Quizzes().GetByWeekDay(ctx, week, day)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// Search matches the query case-insensitively against summary titles and
// content and quiz titles. An empty query returns empty result sets.
func (s *contentService) Search(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Summaries: []*models.Summary{},
		Quizzes:   []*models.Quiz{},
	}
	if query == "" {
		return result, nil
	}

	summaries, err := s.repo.Summaries().Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search summaries: %w", err)
	}
	quizzes, err := s.repo.Quizzes().Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search quizzes: %w", err)
	}

	result.Summaries = summaries
	result.Quizzes = quizzes
	return result, nil
}

func (s *contentService) Download(ctx context.Context, week, day int) (*DownloadInfo, error) {
	summary, err := s.GetSummary(ctx, week, day)
	if err != nil {
		return nil, err
	}

	return &DownloadInfo{
		Title:       summary.Title,
		Content:     summary.Content,
		DownloadURL: summary.FileURL,
	}, nil
}
