package services

import (
	"context"
	"testing"

	"github.com/studyboss/study-service/internal/events"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/repositories/memory"
	"github.com/studyboss/study-service/internal/validator"
)

func newProgressServiceForTest() (ProgressService, repositories.Repository, *events.MockEventPublisher) {
	repo := memory.NewRepository()
	publisher := events.NewMockEventPublisher(newTestLogger())
	service := NewProgressService(repo, publisher, newTestLogger(), validator.New())
	return service, repo, publisher
}

func TestProgressService_RecordResult(t *testing.T) {
	service, repo, publisher := newProgressServiceForTest()
	ctx := context.Background()

	result, err := service.RecordResult(ctx, 1, &RecordResultRequest{
		QuizID:  3,
		Score:   85,
		Answers: []int{0, 2, 1, 3},
	})
	if err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	if result.ID == 0 || result.CompletedAt.IsZero() {
		t.Errorf("result not fully populated: %+v", result)
	}

	stored, err := repo.QuizResults().ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(stored) != 1 || stored[0].Score != 85 {
		t.Errorf("result not persisted: %+v", stored)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventQuizResultRecorded {
		t.Errorf("expected a single %s event, got %+v", events.EventQuizResultRecorded, published)
	}

	t.Run("RetakesAppend", func(t *testing.T) {
		if _, err := service.RecordResult(ctx, 1, &RecordResultRequest{QuizID: 3, Score: 95, Answers: []int{0}}); err != nil {
			t.Fatalf("retake failed: %v", err)
		}
		stored, err := repo.QuizResults().ListByUser(ctx, 1)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(stored) != 2 {
			t.Errorf("expected both attempts kept, got %d", len(stored))
		}
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		_, err := service.RecordResult(ctx, 1, &RecordResultRequest{QuizID: 3, Score: 120, Answers: []int{0}})
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestProgressService_Progress(t *testing.T) {
	service, repo, _ := newProgressServiceForTest()
	ctx := context.Background()

	tasks := []*models.Task{
		{UserID: 1, Title: "Done task", IsCompleted: true},
		{UserID: 1, Title: "Done broadcast", IsCompleted: true, IsAdminTask: true},
		{UserID: 1, Title: "Open task"},
	}
	for _, task := range tasks {
		if err := repo.Tasks().Create(ctx, task); err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}
	}
	for _, score := range []int{80, 60} {
		if _, err := service.RecordResult(ctx, 1, &RecordResultRequest{QuizID: 1, Score: score, Answers: []int{0}}); err != nil {
			t.Fatalf("failed to seed result: %v", err)
		}
	}

	report, err := service.Progress(ctx, 1)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if report.TotalTasks != 3 || report.CompletedTasks != 2 {
		t.Errorf("task counts wrong: %+v", report)
	}
	if report.TaskCompletionRate != 66.67 {
		t.Errorf("expected completion rate 66.67, got %v", report.TaskCompletionRate)
	}
	if report.TotalQuizzesTaken != 2 || report.AverageQuizScore != 70 {
		t.Errorf("quiz aggregation wrong: %+v", report)
	}
}

func TestProgressService_Progress_Empty(t *testing.T) {
	service, _, _ := newProgressServiceForTest()

	report, err := service.Progress(context.Background(), 42)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if report.TotalTasks != 0 || report.TaskCompletionRate != 0 ||
		report.TotalQuizzesTaken != 0 || report.AverageQuizScore != 0 {
		t.Errorf("expected a zero report, got %+v", report)
	}
}
