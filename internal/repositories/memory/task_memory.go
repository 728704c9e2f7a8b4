package memory

import (
	"context"
	"sort"
	"time"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

type TaskMemory struct {
	store *store
}

func (r *TaskMemory) Create(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task.ID = r.store.nextTaskID
	r.store.nextTaskID++
	task.CreatedAt = time.Now()

	r.store.tasks[task.ID] = *task
	return nil
}

func (r *TaskMemory) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

func (r *TaskMemory) ListForUser(ctx context.Context, userID uint) ([]*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var tasks []*models.Task
	for _, task := range r.store.tasks {
		if task.UserID == userID || task.IsAdminTask {
			t := task
			tasks = append(tasks, &t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskMemory) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	for column, value := range updates {
		switch column {
		case "title":
			task.Title = value.(string)
		case "description":
			switch v := value.(type) {
			case *string:
				task.Description = v
			case string:
				task.Description = &v
			}
		case "is_completed":
			task.IsCompleted = value.(bool)
		}
	}

	r.store.tasks[id] = task
	return &task, nil
}

func (r *TaskMemory) Delete(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return false, nil
	}
	delete(r.store.tasks, id)
	return true, nil
}
