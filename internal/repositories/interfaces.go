package repositories

import (
	"context"
	"errors"

	"github.com/studyboss/study-service/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by all backends when a referenced id (or composite
// key) does not exist. Callers should test with IsNotFoundError rather than
// comparing directly.
var ErrNotFound = errors.New("record not found")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// UserRepository covers registration, profile reads and the partial updates
// issued by plan activation. Users are never deleted.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update merges the given column/value pairs into the stored record and
	// returns the merged result, or ErrNotFound.
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStudentCode(ctx context.Context, code string) (bool, error)
}

type SummaryRepository interface {
	Create(ctx context.Context, summary *models.Summary) error
	GetByID(ctx context.Context, id uint) (*models.Summary, error)
	GetByWeekDay(ctx context.Context, week, day int) (*models.Summary, error)
	// ListByWeek orders by day ascending; List orders by creation time
	// descending.
	ListByWeek(ctx context.Context, week int) ([]*models.Summary, error)
	List(ctx context.Context) ([]*models.Summary, error)
	ExistsByWeekDay(ctx context.Context, week, day int) (bool, error)
	// Search matches the query case-insensitively against title and content.
	Search(ctx context.Context, query string) ([]*models.Summary, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	// GetByWeekDay with a nil day matches the weekly quiz of that week.
	GetByWeekDay(ctx context.Context, week int, day *int) (*models.Quiz, error)
	List(ctx context.Context) ([]*models.Quiz, error)
	ExistsByWeekDay(ctx context.Context, week int, day *int) (bool, error)
	Search(ctx context.Context, query string) ([]*models.Quiz, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// ListForUser returns the user's own tasks plus every admin-broadcast
	// task, newest first.
	ListForUser(ctx context.Context, userID uint) ([]*models.Task, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error)
	// Delete reports whether a record was actually removed; deleting a
	// missing id is not an error.
	Delete(ctx context.Context, id uint) (bool, error)
}

type QuizResultRepository interface {
	Create(ctx context.Context, result *models.QuizResult) error
	ListByUser(ctx context.Context, userID uint) ([]*models.QuizResult, error)
}

// Repository aggregates the per-entity repositories. Exactly one
// implementation (memory or postgres) is constructed at startup and injected
// into the services; backends are never mixed at runtime.
type Repository interface {
	Users() UserRepository
	Summaries() SummaryRepository
	Quizzes() QuizRepository
	Tasks() TaskRepository
	QuizResults() QuizResultRepository
}
