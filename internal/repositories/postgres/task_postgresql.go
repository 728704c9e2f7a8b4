package postgres

import (
	"context"
	"errors"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
	"gorm.io/gorm"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func (r *TaskPostgreSQL) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskPostgreSQL) ListForUser(ctx context.Context, userID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR is_admin_task = ?", userID, true).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskPostgreSQL) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskPostgreSQL) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	return result.RowsAffected > 0, result.Error
}
