package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

type QuizMemory struct {
	store *store
}

func (r *QuizMemory) Create(ctx context.Context, quiz *models.Quiz) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	quiz.ID = r.store.nextQuizID
	r.store.nextQuizID++
	quiz.CreatedAt = time.Now()

	r.store.quizzes[quiz.ID] = *quiz
	return nil
}

func (r *QuizMemory) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	quiz, ok := r.store.quizzes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &quiz, nil
}

func (r *QuizMemory) GetByWeekDay(ctx context.Context, week int, day *int) (*models.Quiz, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, quiz := range r.store.quizzes {
		if quiz.Week == week && sameDay(quiz.Day, day) {
			q := quiz
			return &q, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *QuizMemory) List(ctx context.Context) ([]*models.Quiz, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	quizzes := make([]*models.Quiz, 0, len(r.store.quizzes))
	for _, quiz := range r.store.quizzes {
		q := quiz
		quizzes = append(quizzes, &q)
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes, nil
}

func (r *QuizMemory) ExistsByWeekDay(ctx context.Context, week int, day *int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, quiz := range r.store.quizzes {
		if quiz.Week == week && sameDay(quiz.Day, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *QuizMemory) Search(ctx context.Context, query string) ([]*models.Quiz, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(query)
	var quizzes []*models.Quiz
	for _, quiz := range r.store.quizzes {
		if strings.Contains(strings.ToLower(quiz.Title), needle) {
			q := quiz
			quizzes = append(quizzes, &q)
		}
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes, nil
}

// sameDay treats two nil days as equal; a nil day denotes the weekly quiz.
func sameDay(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
