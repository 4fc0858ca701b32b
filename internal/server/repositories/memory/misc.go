package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type imageRepo struct{ m *Manager }

func (r *imageRepo) GetBySlug(_ context.Context, slug string) (*models.Image, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	i, ok := r.m.images[slug]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &i, nil
}

func (r *imageRepo) List(_ context.Context) ([]*models.Image, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.Image, 0, len(r.m.images))
	for _, i := range r.m.images {
		i := i
		result = append(result, &i)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Slug < result[b].Slug })
	return result, nil
}

func (r *imageRepo) CreateMany(_ context.Context, imgs []*models.Image) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	inserted := 0
	for _, i := range imgs {
		if _, ok := r.m.images[i.Slug]; ok {
			continue
		}
		r.m.images[i.Slug] = *i
		inserted++
	}
	return inserted, nil
}

type profileRepo struct{ m *Manager }

func (r *profileRepo) GetByOwner(_ context.Context, owner string) (*models.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p, ok := r.m.profiles[owner]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.SecretHash = append([]byte(nil), p.SecretHash...)
	return &p, nil
}

func (r *profileRepo) Save(_ context.Context, p *models.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for owner, other := range r.m.profiles {
		if owner != p.Owner && other.Token == p.Token {
			return common.ErrorAlreadyExists
		}
	}
	stored := *p
	stored.SecretHash = append([]byte(nil), p.SecretHash...)
	r.m.profiles[p.Owner] = stored
	return nil
}

type internalEventRepo struct{ m *Manager }

func (r *internalEventRepo) Exists(_ context.Context, name string) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	_, ok := r.m.internalEvents[name]
	return ok, nil
}

func (r *internalEventRepo) Record(_ context.Context, name string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.internalEvents[name]; !ok {
		r.m.internalEvents[name] = r.m.now()
	}
	return nil
}
