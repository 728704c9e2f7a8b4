package memory

import (
	"context"
	"sort"
	"time"

	"github.com/studyboss/study-service/internal/models"
)

type QuizResultMemory struct {
	store *store
}

func (r *QuizResultMemory) Create(ctx context.Context, result *models.QuizResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result.ID = r.store.nextQuizResultID
	r.store.nextQuizResultID++
	result.CompletedAt = time.Now()

	r.store.quizResults[result.ID] = *result
	return nil
}

func (r *QuizResultMemory) ListByUser(ctx context.Context, userID uint) ([]*models.QuizResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var results []*models.QuizResult
	for _, result := range r.store.quizResults {
		if result.UserID == userID {
			res := result
			results = append(results, &res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].CompletedAt.Equal(results[j].CompletedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	return results, nil
}
