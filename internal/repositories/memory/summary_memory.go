package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/studyboss/study-service/internal/models"
	"github.com/studyboss/study-service/internal/repositories"
)

type SummaryMemory struct {
	store *store
}

func (r *SummaryMemory) Create(ctx context.Context, summary *models.Summary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	summary.ID = r.store.nextSummaryID
	r.store.nextSummaryID++
	summary.CreatedAt = time.Now()

	r.store.summaries[summary.ID] = *summary
	return nil
}

func (r *SummaryMemory) GetByID(ctx context.Context, id uint) (*models.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summary, ok := r.store.summaries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &summary, nil
}

func (r *SummaryMemory) GetByWeekDay(ctx context.Context, week, day int) (*models.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Creation rejects duplicate (week, day), so insertion order cannot
	// leak into the result here.
	for _, summary := range r.store.summaries {
		if summary.Week == week && summary.Day == day {
			s := summary
			return &s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *SummaryMemory) ListByWeek(ctx context.Context, week int) ([]*models.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var summaries []*models.Summary
	for _, summary := range r.store.summaries {
		if summary.Week == week {
			s := summary
			summaries = append(summaries, &s)
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Day < summaries[j].Day })
	return summaries, nil
}

func (r *SummaryMemory) List(ctx context.Context) ([]*models.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summaries := make([]*models.Summary, 0, len(r.store.summaries))
	for _, summary := range r.store.summaries {
		s := summary
		summaries = append(summaries, &s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (r *SummaryMemory) ExistsByWeekDay(ctx context.Context, week, day int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, summary := range r.store.summaries {
		if summary.Week == week && summary.Day == day {
			return true, nil
		}
	}
	return false, nil
}

func (r *SummaryMemory) Search(ctx context.Context, query string) ([]*models.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(query)
	var summaries []*models.Summary
	for _, summary := range r.store.summaries {
		if strings.Contains(strings.ToLower(summary.Title), needle) ||
			(summary.Content != nil && strings.Contains(strings.ToLower(*summary.Content), needle)) {
			s := summary
			summaries = append(summaries, &s)
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}
