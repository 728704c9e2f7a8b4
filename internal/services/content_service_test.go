package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/studyboss/study-service/internal/cache"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/repositories/memory"
	"github.com/studyboss/study-service/internal/validator"
)

func newContentServiceForTest() (ContentService, repositories.Repository) {
	repo := memory.NewRepository()
	service := NewContentService(repo, cache.NewNoopCache(), newTestLogger(), validator.New())
	return service, repo
}

func validQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			Text:          "Which bone is in the upper arm?",
			Options:       []string{"Humerus", "Femur", "Tibia", "Radius"},
			CorrectAnswer: 0,
		},
	}
}

func TestContentService_SummaryLifecycle(t *testing.T) {
	service, _ := newContentServiceForTest()
	ctx := context.Background()

	content := "The humerus articulates with the scapula."
	summary, err := service.CreateSummary(ctx, &CreateSummaryRequest{
		Week:    1,
		Day:     2,
		Title:   "Upper limb anatomy",
		Content: &content,
	})
	if err != nil {
		t.Fatalf("CreateSummary failed: %v", err)
	}

	t.Run("Get", func(t *testing.T) {
		got, err := service.GetSummary(ctx, 1, 2)
		if err != nil {
			t.Fatalf("GetSummary failed: %v", err)
		}
		if got.ID != summary.ID {
			t.Errorf("expected summary %d, got %d", summary.ID, got.ID)
		}
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		_, err := service.CreateSummary(ctx, &CreateSummaryRequest{
			Week:  1,
			Day:   2,
			Title: "Second summary for the same slot",
		})
		if err != ErrSummaryExists {
			t.Fatalf("expected ErrSummaryExists, got %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := service.GetSummary(ctx, 9, 1)
		if err != ErrSummaryNotFound {
			t.Fatalf("expected ErrSummaryNotFound, got %v", err)
		}
	})

	t.Run("WeekOutOfRange", func(t *testing.T) {
		_, err := service.CreateSummary(ctx, &CreateSummaryRequest{Week: 17, Day: 1, Title: "Late week"})
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected validation error for week 17, got %v", err)
		}
	})
}

// fakeCache stores entries in a map and wraps the miss sentinel the way an
// instrumented cache implementation would.
type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("lookup %s: %w", key, cache.ErrCacheMiss)
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestContentService_SummaryCacheReadThrough(t *testing.T) {
	repo := memory.NewRepository()
	cacheStore := newFakeCache()
	service := NewContentService(repo, cacheStore, newTestLogger(), validator.New())
	ctx := context.Background()

	created, err := service.CreateSummary(ctx, &CreateSummaryRequest{Week: 3, Day: 1, Title: "Cached summary"})
	if err != nil {
		t.Fatalf("CreateSummary failed: %v", err)
	}

	// First read misses (wrapped sentinel) and populates the cache
	got, err := service.GetSummary(ctx, 3, 1)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected summary %d, got %d", created.ID, got.ID)
	}
	if cacheStore.sets != 1 {
		t.Fatalf("expected the miss to populate the cache once, got %d sets", cacheStore.sets)
	}

	// Second read is served from the cache
	got, err = service.GetSummary(ctx, 3, 1)
	if err != nil {
		t.Fatalf("cached GetSummary failed: %v", err)
	}
	if got.Title != "Cached summary" {
		t.Errorf("unexpected cached title %q", got.Title)
	}
	if cacheStore.sets != 1 {
		t.Errorf("cache hit should not rewrite the entry, got %d sets", cacheStore.sets)
	}
}

func TestContentService_ListSummaries(t *testing.T) {
	service, _ := newContentServiceForTest()
	ctx := context.Background()

	for _, slot := range []struct{ week, day int }{{1, 1}, {1, 2}, {2, 1}} {
		_, err := service.CreateSummary(ctx, &CreateSummaryRequest{
			Week:  slot.week,
			Day:   slot.day,
			Title: "Summary",
		})
		if err != nil {
			t.Fatalf("CreateSummary failed: %v", err)
		}
	}

	all, err := service.ListSummaries(ctx, nil)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 summaries, got %d", len(all))
	}

	week := 1
	filtered, err := service.ListSummaries(ctx, &week)
	if err != nil {
		t.Fatalf("ListSummaries by week failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 summaries in week 1, got %d", len(filtered))
	}
}

func TestContentService_CreateQuiz(t *testing.T) {
	service, _ := newContentServiceForTest()
	ctx := context.Background()

	day := 3
	quiz, err := service.CreateQuiz(ctx, &CreateQuizRequest{
		Week:      2,
		Day:       &day,
		Title:     "Day 3 quiz",
		Questions: validQuestions(),
		IsWeekly:  false,
	})
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	questions, err := quiz.DecodeQuestions()
	if err != nil {
		t.Fatalf("DecodeQuestions failed: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectAnswer != 0 {
		t.Errorf("questions did not round-trip: %+v", questions)
	}

	t.Run("WeeklyWithDayRejected", func(t *testing.T) {
		_, err := service.CreateQuiz(ctx, &CreateQuizRequest{
			Week:      2,
			Day:       &day,
			Title:     "Broken schedule",
			Questions: validQuestions(),
			IsWeekly:  true,
		})
		if err != ErrQuizInvalidSchedule {
			t.Fatalf("expected ErrQuizInvalidSchedule, got %v", err)
		}
	})

	t.Run("DailyWithoutDayRejected", func(t *testing.T) {
		_, err := service.CreateQuiz(ctx, &CreateQuizRequest{
			Week:      2,
			Title:     "Broken schedule",
			Questions: validQuestions(),
			IsWeekly:  false,
		})
		if err != ErrQuizInvalidSchedule {
			t.Fatalf("expected ErrQuizInvalidSchedule, got %v", err)
		}
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		_, err := service.CreateQuiz(ctx, &CreateQuizRequest{
			Week:      2,
			Day:       &day,
			Title:     "Second quiz for the slot",
			Questions: validQuestions(),
			IsWeekly:  false,
		})
		if err != ErrQuizExists {
			t.Fatalf("expected ErrQuizExists, got %v", err)
		}
	})

	t.Run("BadQuestionsRejected", func(t *testing.T) {
		questions := validQuestions()
		questions[0].Options = []string{"only", "three", "options"}
		otherDay := 4
		_, err := service.CreateQuiz(ctx, &CreateQuizRequest{
			Week:      2,
			Day:       &otherDay,
			Title:     "Malformed quiz",
			Questions: questions,
			IsWeekly:  false,
		})
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("WeeklyLookup", func(t *testing.T) {
		_, err := service.CreateQuiz(ctx, &CreateQuizRequest{
			Week:      2,
			Title:     "Week 2 recap",
			Questions: validQuestions(),
			IsWeekly:  true,
		})
		if err != nil {
			t.Fatalf("weekly CreateQuiz failed: %v", err)
		}

		weekly, err := service.GetQuiz(ctx, 2, nil)
		if err != nil {
			t.Fatalf("GetQuiz failed: %v", err)
		}
		if !weekly.IsWeekly {
			t.Error("expected the weekly quiz for nil day")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := service.GetQuiz(ctx, 14, nil)
		if err != ErrQuizNotFound {
			t.Fatalf("expected ErrQuizNotFound, got %v", err)
		}
	})
}

func TestContentService_Search(t *testing.T) {
	service, _ := newContentServiceForTest()
	ctx := context.Background()

	if _, err := service.CreateSummary(ctx, &CreateSummaryRequest{Week: 1, Day: 1, Title: "Anatomy basics"}); err != nil {
		t.Fatalf("CreateSummary failed: %v", err)
	}
	if _, err := service.CreateQuiz(ctx, &CreateQuizRequest{
		Week:      1,
		Title:     "Anatomy recap quiz",
		Questions: validQuestions(),
		IsWeekly:  true,
	}); err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	t.Run("MatchesBothKinds", func(t *testing.T) {
		result, err := service.Search(ctx, "anatomy")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(result.Summaries) != 1 || len(result.Quizzes) != 1 {
			t.Errorf("expected 1 summary + 1 quiz, got %d/%d", len(result.Summaries), len(result.Quizzes))
		}
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		result, err := service.Search(ctx, "")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(result.Summaries) != 0 || len(result.Quizzes) != 0 {
			t.Errorf("expected empty result for empty query, got %+v", result)
		}
	})
}

func TestContentService_Download(t *testing.T) {
	service, _ := newContentServiceForTest()
	ctx := context.Background()

	fileURL := "https://files.example.com/week1-day1.pdf"
	if _, err := service.CreateSummary(ctx, &CreateSummaryRequest{
		Week:    1,
		Day:     1,
		Title:   "Upper limb anatomy",
		FileURL: &fileURL,
	}); err != nil {
		t.Fatalf("CreateSummary failed: %v", err)
	}

	info, err := service.Download(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if info.Title != "Upper limb anatomy" {
		t.Errorf("unexpected title %q", info.Title)
	}
	if info.DownloadURL == nil || *info.DownloadURL != fileURL {
		t.Errorf("expected download URL %q, got %v", fileURL, info.DownloadURL)
	}

	if _, err := service.Download(ctx, 8, 1); err != ErrSummaryNotFound {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}
