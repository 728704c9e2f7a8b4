package services

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/studyboss/study-service/internal/events"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/repositories/memory"
	"github.com/studyboss/study-service/internal/validator"
)

var studentCodePattern = regexp.MustCompile(`^STB-\d{4}-\d{3}$`)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newUserServiceForTest() (UserService, repositories.Repository, *events.MockEventPublisher) {
	repo := memory.NewRepository()
	publisher := events.NewMockEventPublisher(newTestLogger())
	service := NewUserService(repo, publisher, newTestLogger(), validator.New())
	return service, repo, publisher
}

func validRegistration(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:        email,
		Password:     "secret123",
		FullName:     "Ahmed Hassan",
		Phone:        "01012345678",
		College:      "Cairo Medicine",
		AcademicYear: "First year",
		Governorate:  "Cairo",
	}
}

func TestUserService_Register(t *testing.T) {
	service, repo, publisher := newUserServiceForTest()
	ctx := context.Background()

	resp, err := service.Register(ctx, validRegistration("ahmed@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !studentCodePattern.MatchString(resp.StudentCode) {
		t.Errorf("student code %q does not match STB-<year>-<3 digits>", resp.StudentCode)
	}

	stored, err := repo.Users().GetByID(ctx, resp.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !strings.HasPrefix(stored.Password, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", stored.Password[:4])
	}
	if stored.PlanType != models.PlanFree || stored.IsActive || stored.IsAdmin {
		t.Errorf("unexpected defaults: plan=%s active=%v admin=%v", stored.PlanType, stored.IsActive, stored.IsAdmin)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserRegistered {
		t.Errorf("expected a single %s event, got %+v", events.EventUserRegistered, published)
	}
}

func TestUserService_Register_UniqueStudentCodes(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	ctx := context.Background()

	codes := make(map[string]bool)
	for _, email := range []string{
		"a@example.com", "b@example.com", "c@example.com",
		"d@example.com", "e@example.com", "f@example.com",
	} {
		resp, err := service.Register(ctx, validRegistration(email))
		if err != nil {
			t.Fatalf("registration for %s failed: %v", email, err)
		}
		if !studentCodePattern.MatchString(resp.StudentCode) {
			t.Errorf("student code %q does not match the expected format", resp.StudentCode)
		}
		if codes[resp.StudentCode] {
			t.Errorf("student code %q was issued twice", resp.StudentCode)
		}
		codes[resp.StudentCode] = true
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegistration("ahmed@example.com")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := service.Register(ctx, validRegistration("ahmed@example.com"))
	if err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Register_Invalid(t *testing.T) {
	service, _, _ := newUserServiceForTest()

	req := validRegistration("not-an-email")
	_, err := service.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected validation error for malformed email")
	}
	if !IsValidation(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegistration("ahmed@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("CorrectPassword", func(t *testing.T) {
		user, err := service.Authenticate(ctx, &LoginRequest{Email: "ahmed@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Email != "ahmed@example.com" {
			t.Errorf("unexpected user %q", user.Email)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{Email: "ahmed@example.com", Password: "wrong-pass"})
		if err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		if err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUserService_Activate(t *testing.T) {
	service, _, publisher := newUserServiceForTest()
	ctx := context.Background()

	resp, err := service.Register(ctx, validRegistration("ahmed@example.com"))
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	publisher.ClearEvents()

	user, err := service.Activate(ctx, resp.ID, &ActivateUserRequest{PlanType: models.PlanPremium})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !user.IsActive || user.PlanType != models.PlanPremium {
		t.Errorf("activation not applied: active=%v plan=%s", user.IsActive, user.PlanType)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserActivated {
		t.Errorf("expected a single %s event, got %+v", events.EventUserActivated, published)
	}

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := service.Activate(ctx, 999, &ActivateUserRequest{PlanType: models.PlanVIP})
		if err != ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("InvalidPlan", func(t *testing.T) {
		_, err := service.Activate(ctx, resp.ID, &ActivateUserRequest{PlanType: "platinum"})
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected validation error for bad plan, got %v", err)
		}
	})
}

func TestUserService_ExportRoster(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegistration("ahmed@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	data, err := service.ExportRoster(ctx)
	if err != nil {
		t.Fatalf("ExportRoster failed: %v", err)
	}
	// xlsx files are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("expected a zip-framed xlsx payload")
	}
}
