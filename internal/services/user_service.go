package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/studyboss/study-service/internal/errors"
	"github.com/studyboss/study-service/internal/events"
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// studentCodeAttempts bounds the collision-retry loop for code generation;
// the space is only 1000 codes per year.
const studentCodeAttempts = 50

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FullName     string `json:"fullName" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,min=8,max=20"`
	College      string `json:"college" validate:"required,max=100"`
	AcademicYear string `json:"academicYear" validate:"required,max=50"`
	Governorate  string `json:"governorate" validate:"required,max=50"`
}

type RegisterResponse struct {
	ID          uint   `json:"id"`
	StudentCode string `json:"studentCode"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ActivateUserRequest struct {
	PlanType models.PlanType `json:"planType" validate:"required,plan_type"`
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Activate(ctx context.Context, id uint, req *ActivateUserRequest) (*models.User, error)
	ExportRoster(ctx context.Context) ([]byte, error)
}

type userService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	return &userService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	exists, err := s.repo.Users().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.generateStudentCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Password:     string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		College:      req.College,
		AcademicYear: req.AcademicYear,
		Governorate:  req.Governorate,
		StudentCode:  code,
		PlanType:     models.PlanFree,
		IsActive:     false,
		IsAdmin:      false,
	}

	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "student_code", user.StudentCode)
	s.publishEvent(ctx, events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UserID:      user.ID,
		StudentCode: user.StudentCode,
		PlanType:    user.PlanType,
	}))

	return &RegisterResponse{ID: user.ID, StudentCode: user.StudentCode}, nil
}

func (s *userService) Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	user, err := s.repo.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Activate(ctx context.Context, id uint, req *ActivateUserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, errors.ToValidationErrors(err)
	}

	user, err := s.repo.Users().Update(ctx, id, map[string]interface{}{
		"plan_type": req.PlanType,
		"is_active": true,
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}

	s.logger.Info("User activated", "user_id", user.ID, "plan_type", user.PlanType)
	s.publishEvent(ctx, events.NewEvent(events.EventUserActivated, events.UserActivatedEvent{
		UserID:   user.ID,
		PlanType: user.PlanType,
	}))

	return user, nil
}

// ExportRoster renders the full user list as an xlsx workbook for the admin
// dashboard.
func (s *userService) ExportRoster(ctx context.Context) ([]byte, error) {
	users, err := s.repo.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Student Code", "Full Name", "Email", "Phone", "College", "Academic Year", "Governorate", "Plan", "Active", "Registered At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, user := range users {
		values := []interface{}{
			user.ID,
			user.StudentCode,
			user.FullName,
			user.Email,
			user.Phone,
			user.College,
			user.AcademicYear,
			user.Governorate,
			string(user.PlanType),
			user.IsActive,
			user.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// generateStudentCode draws STB-<year>-<3-digit> codes until one is free.
func (s *userService) generateStudentCode(ctx context.Context) (string, error) {
	year := time.Now().Year()
	for i := 0; i < studentCodeAttempts; i++ {
		code := fmt.Sprintf("STB-%d-%03d", year, rand.Intn(1000))
		exists, err := s.repo.Users().ExistsByStudentCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check student code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique student code after %d attempts", studentCodeAttempts)
}

func (s *userService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
