// Package firestoredb implements the repositories on Cloud Firestore. Each
// entity lives in its own collection keyed by slug (events by id).
package firestoredb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/events"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/images"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/internalevents"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/lists"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/services"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/statuses"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	statusesCol       = "statuses"
	listsCol          = "lists"
	servicesCol       = "services"
	eventsCol         = "events"
	imagesCol         = "images"
	profilesCol       = "profiles"
	internalEventsCol = "internal_events"
)

// Manager vends Firestore-backed repositories sharing one client.
type Manager struct {
	client *firestore.Client
}

// Open creates a Firestore client for project. With FIRESTORE_EMULATOR_HOST
// set the client talks to the emulator.
func Open(ctx context.Context, project string, opts ...option.ClientOption) (*Manager, error) {
	client, err := firestore.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return NewManager(client), nil
}

func NewManager(client *firestore.Client) *Manager {
	return &Manager{client: client}
}

func (m *Manager) RunMigrations(context.Context) error { return nil }

func (m *Manager) Close() error {
	return m.client.Close()
}

func (m *Manager) Statuses() statuses.Repository {
	return &statusRepo{col: m.client.Collection(statusesCol)}
}

func (m *Manager) Lists() lists.Repository {
	return &listRepo{col: m.client.Collection(listsCol)}
}

func (m *Manager) Services() services.Repository {
	return &serviceRepo{col: m.client.Collection(servicesCol)}
}

func (m *Manager) Events() events.Repository {
	return &eventRepo{col: m.client.Collection(eventsCol)}
}

func (m *Manager) Images() images.Repository {
	return &imageRepo{col: m.client.Collection(imagesCol)}
}

func (m *Manager) Profiles() profiles.Repository {
	return &profileRepo{client: m.client, col: m.client.Collection(profilesCol)}
}

func (m *Manager) InternalEvents() internalevents.Repository {
	return &internalEventRepo{col: m.client.Collection(internalEventsCol)}
}

// mapErr translates Firestore status codes to repository sentinels.
func mapErr(err error) error {
	switch status.Code(err) {
	case codes.OK:
		return nil
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("firestore error: %w", err)
	}
}

// collect drains it, decoding each document into T.
func collect[T any](it *firestore.DocumentIterator) ([]*T, error) {
	defer it.Stop()

	var result []*T
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		result = append(result, &v)
	}
	return result, nil
}

func get[T any](ctx context.Context, ref *firestore.DocumentRef) (*T, error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref.ID, err)
	}
	return &v, nil
}
