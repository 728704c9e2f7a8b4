package postgres

import (
	"context"

	"github.com/studyboss/study-service/internal/models"
	"gorm.io/gorm"
)

type QuizResultPostgreSQL struct {
	db *gorm.DB
}

func (r *QuizResultPostgreSQL) Create(ctx context.Context, result *models.QuizResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *QuizResultPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.QuizResult, error) {
	var results []*models.QuizResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC, id DESC").
		Find(&results).Error
	return results, err
}
