// Package memory keeps repositories in process memory for runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
)

// JobRepository implements site.Repository with a map.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]site.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]site.Job)}
}

func (r *JobRepository) Create(ctx context.Context, j site.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.Skills = append([]string(nil), j.Skills...)
	r.jobs[j.ID] = j
	return nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (site.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return site.Job{}, site.ErrNotFound
	}
	return j, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]site.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	var all []site.Job
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			all = append(all, j)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(a, b int) bool {
		if all[a].CreatedAt.Equal(all[b].CreatedAt) {
			return all[a].ID < all[b].ID
		}
		return all[a].CreatedAt.After(all[b].CreatedAt)
	})
	if offset >= len(all) {
		return []site.Job{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID uuid.UUID, id string) (site.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.OwnerID != ownerID {
		return site.Job{}, site.ErrNotFound
	}
	delete(r.jobs, id)
	return j, nil
}
