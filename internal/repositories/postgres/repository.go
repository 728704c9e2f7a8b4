// Package postgres implements the repository interfaces on top of gorm.
// Each call is its own implicit transaction; the application never spans
// multiple entity writes with an explicit one.
package postgres

import (
	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	users       *UserPostgreSQL
	summaries   *SummaryPostgreSQL
	quizzes     *QuizPostgreSQL
	tasks       *TaskPostgreSQL
	quizResults *QuizResultPostgreSQL
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		users:       &UserPostgreSQL{db: db},
		summaries:   &SummaryPostgreSQL{db: db},
		quizzes:     &QuizPostgreSQL{db: db},
		tasks:       &TaskPostgreSQL{db: db},
		quizResults: &QuizResultPostgreSQL{db: db},
	}
}

func (r *Repository) Users() repositories.UserRepository             { return r.users }
func (r *Repository) Summaries() repositories.SummaryRepository     { return r.summaries }
func (r *Repository) Quizzes() repositories.QuizRepository          { return r.quizzes }
func (r *Repository) Tasks() repositories.TaskRepository            { return r.tasks }
func (r *Repository) QuizResults() repositories.QuizResultRepository { return r.quizResults }

// AutoMigrate creates or updates the schema for all entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Summary{},
		&models.Quiz{},
		&models.Task{},
		&models.QuizResult{},
	)
}
