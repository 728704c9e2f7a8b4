// Package memory implements the repository interfaces over mutex-guarded,
// id-indexed maps. State lives for the process lifetime only; it is the
// backend used for tests and local runs.
package memory

import (
	"sync"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

// store holds all entities and the per-entity id counters. Ids are unique
// and monotonically increasing within a single process; they need not agree
// with ids assigned by the postgres backend.
type store struct {
	mu sync.RWMutex

	users       map[uint]models.User
	summaries   map[uint]models.Summary
	quizzes     map[uint]models.Quiz
	tasks       map[uint]models.Task
	quizResults map[uint]models.QuizResult

	nextUserID       uint
	nextSummaryID    uint
	nextQuizID       uint
	nextTaskID       uint
	nextQuizResultID uint
}

func newStore() *store {
	return &store{
		users:            make(map[uint]models.User),
		summaries:        make(map[uint]models.Summary),
		quizzes:          make(map[uint]models.Quiz),
		tasks:            make(map[uint]models.Task),
		quizResults:      make(map[uint]models.QuizResult),
		nextUserID:       1,
		nextSummaryID:    1,
		nextQuizID:       1,
		nextTaskID:       1,
		nextQuizResultID: 1,
	}
}

type Repository struct {
	users       *UserMemory
	summaries   *SummaryMemory
	quizzes     *QuizMemory
	tasks       *TaskMemory
	quizResults *QuizResultMemory
}

func NewRepository() repositories.Repository {
	s := newStore()
	return &Repository{
		users:       &UserMemory{store: s},
		summaries:   &SummaryMemory{store: s},
		quizzes:     &QuizMemory{store: s},
		tasks:       &TaskMemory{store: s},
		quizResults: &QuizResultMemory{store: s},
	}
}

func (r *Repository) Users() repositories.UserRepository             { return r.users }
func (r *Repository) Summaries() repositories.SummaryRepository     { return r.summaries }
func (r *Repository) Quizzes() repositories.QuizRepository          { return r.quizzes }
func (r *Repository) Tasks() repositories.TaskRepository            { return r.tasks }
func (r *Repository) QuizResults() repositories.QuizResultRepository { return r.quizResults }
