package memory

import (
	"context"
	"sort"
	"time"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

type UserMemory struct {
	store *store
}

func (r *UserMemory) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user.ID = r.store.nextUserID
	r.store.nextUserID++
	if user.PlanType == "" {
		user.PlanType = models.PlanFree
	}
	user.CreatedAt = time.Now()

	r.store.users[user.ID] = *user
	return nil
}

func (r *UserMemory) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *UserMemory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserMemory) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	for column, value := range updates {
		switch column {
		case "plan_type":
			switch v := value.(type) {
			case models.PlanType:
				user.PlanType = v
			case string:
				user.PlanType = models.PlanType(v)
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				user.IsActive = v
			}
		case "is_admin":
			if v, ok := value.(bool); ok {
				user.IsAdmin = v
			}
		case "full_name":
			if v, ok := value.(string); ok {
				user.FullName = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				user.Phone = v
			}
		case "college":
			if v, ok := value.(string); ok {
				user.College = v
			}
		case "academic_year":
			if v, ok := value.(string); ok {
				user.AcademicYear = v
			}
		case "governorate":
			if v, ok := value.(string); ok {
				user.Governorate = v
			}
		}
	}

	r.store.users[id] = user
	return &user, nil
}

func (r *UserMemory) List(ctx context.Context) ([]*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*models.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		u := user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserMemory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserMemory) ExistsByStudentCode(ctx context.Context, code string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.StudentCode == code {
			return true, nil
		}
	}
	return false, nil
}
