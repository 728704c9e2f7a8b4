package memory

import (
	"context"
	"testing"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

func TestUserRepository_RoundTrip(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user := &models.User{
		Email:       "ahmed@example.com",
		Password:    "hashed",
		FullName:    "Ahmed Hassan",
		StudentCode: "STB-2026-001",
		PlanType:    models.PlanFree,
	}
	if err := repo.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be stamped")
	}

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.Users().GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Email != user.Email {
			t.Errorf("expected email %q, got %q", user.Email, got.Email)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		got, err := repo.Users().GetByEmail(ctx, "ahmed@example.com")
		if err != nil {
			t.Fatalf("GetByEmail failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected ID %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		exists, err := repo.Users().ExistsByEmail(ctx, "ahmed@example.com")
		if err != nil || !exists {
			t.Fatalf("expected email to exist, got exists=%v err=%v", exists, err)
		}
		exists, err = repo.Users().ExistsByEmail(ctx, "nobody@example.com")
		if err != nil || exists {
			t.Fatalf("expected email to not exist, got exists=%v err=%v", exists, err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := repo.Users().Update(ctx, user.ID, map[string]interface{}{
			"plan_type": models.PlanPremium,
			"is_active": true,
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.PlanType != models.PlanPremium || !updated.IsActive {
			t.Errorf("update not applied: plan=%s active=%v", updated.PlanType, updated.IsActive)
		}
	})

	t.Run("UpdateStringPlanType", func(t *testing.T) {
		// Callers working from decoded JSON hand plan_type over as a
		// plain string; the backend must accept both representations.
		updated, err := repo.Users().Update(ctx, user.ID, map[string]interface{}{
			"plan_type": "vip",
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.PlanType != models.PlanVIP {
			t.Errorf("string plan_type not applied, got %s", updated.PlanType)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.Users().GetByID(ctx, 999)
		if !repositories.IsNotFoundError(err) {
			t.Errorf("expected not-found error, got %v", err)
		}
		_, err = repo.Users().Update(ctx, 999, map[string]interface{}{"is_active": true})
		if !repositories.IsNotFoundError(err) {
			t.Errorf("expected not-found error on update, got %v", err)
		}
	})
}

func TestSummaryRepository_CompositeLookup(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, day := range []int{3, 1, 2} {
		summary := &models.Summary{Week: 1, Day: day, Title: "Week 1"}
		if err := repo.Summaries().Create(ctx, summary); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.Summaries().GetByWeekDay(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetByWeekDay failed: %v", err)
	}
	if got.Day != 2 {
		t.Errorf("expected day 2, got %d", got.Day)
	}

	if _, err := repo.Summaries().GetByWeekDay(ctx, 5, 1); !repositories.IsNotFoundError(err) {
		t.Errorf("expected not-found for missing week, got %v", err)
	}

	exists, err := repo.Summaries().ExistsByWeekDay(ctx, 1, 3)
	if err != nil || !exists {
		t.Fatalf("expected (1,3) to exist, got exists=%v err=%v", exists, err)
	}

	byWeek, err := repo.Summaries().ListByWeek(ctx, 1)
	if err != nil {
		t.Fatalf("ListByWeek failed: %v", err)
	}
	if len(byWeek) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(byWeek))
	}
	for i, summary := range byWeek {
		if summary.Day != i+1 {
			t.Errorf("expected day-ascending order, position %d has day %d", i, summary.Day)
		}
	}
}

func TestQuizRepository_WeeklyVsDaily(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	day := 2
	daily := &models.Quiz{Week: 1, Day: &day, Title: "Daily quiz", IsWeekly: false}
	weekly := &models.Quiz{Week: 1, Day: nil, Title: "Weekly quiz", IsWeekly: true}
	for _, quiz := range []*models.Quiz{daily, weekly} {
		if err := repo.Quizzes().Create(ctx, quiz); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.Quizzes().GetByWeekDay(ctx, 1, nil)
	if err != nil {
		t.Fatalf("weekly lookup failed: %v", err)
	}
	if !got.IsWeekly {
		t.Error("expected the weekly quiz for nil day")
	}

	got, err = repo.Quizzes().GetByWeekDay(ctx, 1, &day)
	if err != nil {
		t.Fatalf("daily lookup failed: %v", err)
	}
	if got.IsWeekly || got.Day == nil || *got.Day != day {
		t.Errorf("expected the daily quiz for day %d, got %+v", day, got)
	}

	otherDay := 5
	if _, err := repo.Quizzes().GetByWeekDay(ctx, 1, &otherDay); !repositories.IsNotFoundError(err) {
		t.Errorf("expected not-found for missing day, got %v", err)
	}
}

func TestTaskRepository_ListAndDelete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	own := &models.Task{UserID: 1, Title: "Read chapter 3"}
	other := &models.Task{UserID: 2, Title: "Someone else's task"}
	broadcast := &models.Task{UserID: 2, Title: "Announcement", IsAdminTask: true}
	for _, task := range []*models.Task{own, other, broadcast} {
		if err := repo.Tasks().Create(ctx, task); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tasks, err := repo.Tasks().ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected own task + broadcast task, got %d tasks", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != 1 && !task.IsAdminTask {
			t.Errorf("unexpected task in listing: %+v", task)
		}
	}

	t.Run("DeleteIdempotent", func(t *testing.T) {
		deleted, err := repo.Tasks().Delete(ctx, own.ID)
		if err != nil || !deleted {
			t.Fatalf("expected delete to succeed, got deleted=%v err=%v", deleted, err)
		}
		deleted, err = repo.Tasks().Delete(ctx, own.ID)
		if err != nil {
			t.Fatalf("second delete errored: %v", err)
		}
		if deleted {
			t.Error("second delete reported a removal")
		}
	})
}

func TestSummaryRepository_Search(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	content := "Anatomy of the upper limb"
	summaries := []*models.Summary{
		{Week: 1, Day: 1, Title: "Anatomy basics", Content: &content},
		{Week: 1, Day: 2, Title: "ملخص الفسيولوجي"},
		{Week: 2, Day: 1, Title: "Biochemistry"},
	}
	for _, summary := range summaries {
		if err := repo.Summaries().Create(ctx, summary); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	t.Run("CaseInsensitive", func(t *testing.T) {
		results, err := repo.Summaries().Search(ctx, "ANATOMY")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].Title != "Anatomy basics" {
			t.Errorf("expected the anatomy summary, got %d results", len(results))
		}
	})

	t.Run("ArabicTitle", func(t *testing.T) {
		results, err := repo.Summaries().Search(ctx, "الفسيولوجي")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 result for Arabic query, got %d", len(results))
		}
	})

	t.Run("MatchesContent", func(t *testing.T) {
		results, err := repo.Summaries().Search(ctx, "upper limb")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected content match, got %d results", len(results))
		}
	})
}
