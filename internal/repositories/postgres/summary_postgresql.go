package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"gorm.io/gorm"
)

type SummaryPostgreSQL struct {
	db *gorm.DB
}

func (r *SummaryPostgreSQL) Create(ctx context.Context, summary *models.Summary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *SummaryPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Summary, error) {
	var summary models.Summary
	err := r.db.WithContext(ctx).First(&summary, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *SummaryPostgreSQL) GetByWeekDay(ctx context.Context, week, day int) (*models.Summary, error) {
	var summary models.Summary
	err := r.db.WithContext(ctx).
		Where("week = ? AND day = ?", week, day).
		Order("id ASC").
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *SummaryPostgreSQL) ListByWeek(ctx context.Context, week int) ([]*models.Summary, error) {
	var summaries []*models.Summary
	err := r.db.WithContext(ctx).
		Where("week = ?", week).
		Order("day ASC").
		Find(&summaries).Error
	return summaries, err
}

func (r *SummaryPostgreSQL) List(ctx context.Context) ([]*models.Summary, error) {
	var summaries []*models.Summary
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&summaries).Error
	return summaries, err
}

func (r *SummaryPostgreSQL) ExistsByWeekDay(ctx context.Context, week, day int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Summary{}).
		Where("week = ? AND day = ?", week, day).
		Count(&count).Error
	return count > 0, err
}

func (r *SummaryPostgreSQL) Search(ctx context.Context, query string) ([]*models.Summary, error) {
	pattern := fmt.Sprintf("%%%s%%", query)
	var summaries []*models.Summary
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&summaries).Error
	return summaries, err
}
