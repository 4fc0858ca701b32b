// Package memory implements every repository in process memory. It backs
// tests and single-node deployments that do not need durability.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/events"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/images"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/internalevents"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/lists"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/services"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/statuses"
)

// Manager owns all in-memory tables behind a single lock. Values are copied
// on the way in and out so callers never share state with the store.
type Manager struct {
	mu sync.RWMutex

	statuses       map[string]models.Status
	lists          map[string]models.List
	services       map[string]models.Service
	events         []models.Event // insertion order
	images         map[string]models.Image
	profiles       map[string]models.Profile
	internalEvents map[string]time.Time

	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		statuses:       make(map[string]models.Status),
		lists:          make(map[string]models.List),
		services:       make(map[string]models.Service),
		images:         make(map[string]models.Image),
		profiles:       make(map[string]models.Profile),
		internalEvents: make(map[string]time.Time),
		now:            time.Now,
	}
}

func (m *Manager) RunMigrations(context.Context) error { return nil }
func (m *Manager) Close() error                        { return nil }

func (m *Manager) Statuses() statuses.Repository             { return &statusRepo{m} }
func (m *Manager) Lists() lists.Repository                   { return &listRepo{m} }
func (m *Manager) Services() services.Repository             { return &serviceRepo{m} }
func (m *Manager) Events() events.Repository                 { return &eventRepo{m} }
func (m *Manager) Images() images.Repository                 { return &imageRepo{m} }
func (m *Manager) Profiles() profiles.Repository             { return &profileRepo{m} }
func (m *Manager) InternalEvents() internalevents.Repository { return &internalEventRepo{m} }
