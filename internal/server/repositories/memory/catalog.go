package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type statusRepo struct{ m *Manager }

func (r *statusRepo) GetBySlug(_ context.Context, slug string) (*models.Status, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	s, ok := r.m.statuses[slug]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *statusRepo) GetDefault(_ context.Context) (*models.Status, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var found *models.Status
	for _, s := range r.m.statuses {
		if !s.Default {
			continue
		}
		if found == nil || s.Slug < found.Slug {
			s := s
			found = &s
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *statusRepo) List(_ context.Context) ([]*models.Status, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.Status, 0, len(r.m.statuses))
	for _, s := range r.m.statuses {
		s := s
		result = append(result, &s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result, nil
}

func (r *statusRepo) Create(_ context.Context, s *models.Status) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.statuses[s.Slug]; ok {
		return common.ErrorAlreadyExists
	}
	r.m.statuses[s.Slug] = *s
	return nil
}

type listRepo struct{ m *Manager }

func (r *listRepo) GetBySlug(_ context.Context, slug string) (*models.List, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	l, ok := r.m.lists[slug]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

func (r *listRepo) List(_ context.Context) ([]*models.List, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.List, 0, len(r.m.lists))
	for _, l := range r.m.lists {
		l := l
		result = append(result, &l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result, nil
}

func (r *listRepo) Create(_ context.Context, l *models.List) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.lists[l.Slug]; ok {
		return common.ErrorAlreadyExists
	}
	r.m.lists[l.Slug] = *l
	return nil
}

func (r *listRepo) Update(_ context.Context, l *models.List) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.lists[l.Slug]; !ok {
		return common.ErrorNotFound
	}
	r.m.lists[l.Slug] = *l
	return nil
}

type serviceRepo struct{ m *Manager }

func (r *serviceRepo) GetBySlug(_ context.Context, slug string) (*models.Service, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	s, ok := r.m.services[slug]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *serviceRepo) List(_ context.Context) ([]*models.Service, error) {
	return r.filter(func(models.Service) bool { return true }), nil
}

func (r *serviceRepo) ListByList(_ context.Context, listSlug string) ([]*models.Service, error) {
	return r.filter(func(s models.Service) bool { return s.ListSlug == listSlug }), nil
}

func (r *serviceRepo) filter(keep func(models.Service) bool) []*models.Service {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	result := make([]*models.Service, 0)
	for _, s := range r.m.services {
		if keep(s) {
			s := s
			result = append(result, &s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result
}

func (r *serviceRepo) Create(_ context.Context, s *models.Service) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.services[s.Slug]; ok {
		return common.ErrorAlreadyExists
	}
	r.m.services[s.Slug] = *s
	return nil
}

func (r *serviceRepo) Update(_ context.Context, s *models.Service) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.services[s.Slug]; !ok {
		return common.ErrorNotFound
	}
	r.m.services[s.Slug] = *s
	return nil
}
