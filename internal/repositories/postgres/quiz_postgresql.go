package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func (r *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizPostgreSQL) GetByWeekDay(ctx context.Context, week int, day *int) (*models.Quiz, error) {
	query := r.db.WithContext(ctx).Where("week = ?", week)
	if day == nil {
		query = query.Where("day IS NULL")
	} else {
		query = query.Where("day = ?", *day)
	}

	var quiz models.Quiz
	err := query.Order("id ASC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizPostgreSQL) List(ctx context.Context) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	err := r.db.WithContext(ctx).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizPostgreSQL) ExistsByWeekDay(ctx context.Context, week int, day *int) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Quiz{}).Where("week = ?", week)
	if day == nil {
		query = query.Where("day IS NULL")
	} else {
		query = query.Where("day = ?", *day)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *QuizPostgreSQL) Search(ctx context.Context, query string) ([]*models.Quiz, error) {
	pattern := fmt.Sprintf("%%%s%%", query)
	var quizzes []*models.Quiz
	err := r.db.WithContext(ctx).
		Where("title ILIKE ?", pattern).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}
