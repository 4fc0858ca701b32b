package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"google.golang.org/api/iterator"
)

type statusRepo struct{ col *firestore.CollectionRef }

func (r *statusRepo) GetBySlug(ctx context.Context, slug string) (*models.Status, error) {
	d, err := get[statusDoc](ctx, r.col.Doc(slug))
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *statusRepo) GetDefault(ctx context.Context) (*models.Status, error) {
	docs, err := collect[statusDoc](r.col.Where("default", "==", true).Documents(ctx))
	if err != nil {
		return nil, err
	}
	var found *statusDoc
	for _, d := range docs {
		if found == nil || d.Slug < found.Slug {
			found = d
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found.model(), nil
}

func (r *statusRepo) List(ctx context.Context) ([]*models.Status, error) {
	docs, err := collect[statusDoc](r.col.OrderBy("slug", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]*models.Status, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

func (r *statusRepo) Create(ctx context.Context, s *models.Status) error {
	_, err := r.col.Doc(s.Slug).Create(ctx, toStatusDoc(s))
	return mapErr(err)
}

type listRepo struct{ col *firestore.CollectionRef }

func (r *listRepo) GetBySlug(ctx context.Context, slug string) (*models.List, error) {
	d, err := get[listDoc](ctx, r.col.Doc(slug))
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *listRepo) List(ctx context.Context) ([]*models.List, error) {
	docs, err := collect[listDoc](r.col.OrderBy("slug", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]*models.List, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

func (r *listRepo) Create(ctx context.Context, l *models.List) error {
	_, err := r.col.Doc(l.Slug).Create(ctx, listDoc{Slug: l.Slug, Name: l.Name, Description: l.Description})
	return mapErr(err)
}

func (r *listRepo) Update(ctx context.Context, l *models.List) error {
	_, err := r.col.Doc(l.Slug).Update(ctx, []firestore.Update{
		{Path: "name", Value: l.Name},
		{Path: "description", Value: l.Description},
	})
	return mapErr(err)
}

type serviceRepo struct{ col *firestore.CollectionRef }

func (r *serviceRepo) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	d, err := get[serviceDoc](ctx, r.col.Doc(slug))
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *serviceRepo) List(ctx context.Context) ([]*models.Service, error) {
	return r.query(ctx, r.col.OrderBy("slug", firestore.Asc))
}

func (r *serviceRepo) ListByList(ctx context.Context, listSlug string) ([]*models.Service, error) {
	return r.query(ctx, r.col.Where("list_slug", "==", listSlug).OrderBy("slug", firestore.Asc))
}

func (r *serviceRepo) query(ctx context.Context, q firestore.Query) ([]*models.Service, error) {
	docs, err := collect[serviceDoc](q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]*models.Service, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

func (r *serviceRepo) Create(ctx context.Context, s *models.Service) error {
	_, err := r.col.Doc(s.Slug).Create(ctx, serviceDoc{Slug: s.Slug, Name: s.Name, Description: s.Description, ListSlug: s.ListSlug})
	return mapErr(err)
}

func (r *serviceRepo) Update(ctx context.Context, s *models.Service) error {
	_, err := r.col.Doc(s.Slug).Update(ctx, []firestore.Update{
		{Path: "name", Value: s.Name},
		{Path: "description", Value: s.Description},
		{Path: "list_slug", Value: s.ListSlug},
	})
	return mapErr(err)
}

type eventRepo struct{ col *firestore.CollectionRef }

// seqNow is a seam for the event insertion sequence.
var seqNow = func() int64 { return time.Now().UnixNano() }

func (r *eventRepo) Create(ctx context.Context, e *models.Event) error {
	_, err := r.col.Doc(e.ID).Create(ctx, eventDoc{
		ID: e.ID, ServiceSlug: e.ServiceSlug, StatusSlug: e.StatusSlug,
		Message: e.Message, Start: e.Start, Informational: e.Informational,
		Seq: seqNow(),
	})
	return mapErr(err)
}

func (r *eventRepo) GetByID(ctx context.Context, serviceSlug, id string) (*models.Event, error) {
	d, err := get[eventDoc](ctx, r.col.Doc(id))
	if err != nil {
		return nil, err
	}
	if d.ServiceSlug != serviceSlug {
		return nil, common.ErrorNotFound
	}
	return d.model(), nil
}

func (r *eventRepo) Latest(ctx context.Context, serviceSlug string) (*models.Event, error) {
	evs, err := r.ListByService(ctx, serviceSlug, 1)
	if err != nil {
		return nil, err
	}
	if len(evs) == 0 {
		return nil, common.ErrorNotFound
	}
	return evs[0], nil
}

func (r *eventRepo) ListByService(ctx context.Context, serviceSlug string, limit int) ([]*models.Event, error) {
	q := r.col.Where("service_slug", "==", serviceSlug).
		OrderBy("start", firestore.Desc).
		OrderBy("seq", firestore.Desc).
		Limit(limit)
	return r.query(ctx, q)
}

// Between walks the window newest first and filters excludeStatus on the
// client, so only the start range needs an index.
func (r *eventRepo) Between(ctx context.Context, serviceSlug string, from, to time.Time, excludeStatus string, limit int) ([]*models.Event, error) {
	it := r.col.Where("service_slug", "==", serviceSlug).
		Where("start", ">=", from).
		Where("start", "<", to).
		OrderBy("start", firestore.Desc).
		OrderBy("seq", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var result []*models.Event
	for limit <= 0 || len(result) < limit {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var d eventDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		if excludeStatus != "" && d.StatusSlug == excludeStatus {
			continue
		}
		result = append(result, d.model())
	}
	slices.Reverse(result)
	return result, nil
}

func (r *eventRepo) query(ctx context.Context, q firestore.Query) ([]*models.Event, error) {
	docs, err := collect[eventDoc](q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]*models.Event, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

type imageRepo struct{ col *firestore.CollectionRef }

func (r *imageRepo) GetBySlug(ctx context.Context, slug string) (*models.Image, error) {
	d, err := get[imageDoc](ctx, r.col.Doc(slug))
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *imageRepo) List(ctx context.Context) ([]*models.Image, error) {
	docs, err := collect[imageDoc](r.col.OrderBy("slug", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]*models.Image, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

func (r *imageRepo) CreateMany(ctx context.Context, imgs []*models.Image) (int, error) {
	inserted := 0
	for _, i := range imgs {
		_, err := r.col.Doc(i.Slug).Create(ctx, imageDoc{Slug: i.Slug, IconSet: i.IconSet, Path: i.Path})
		if err := mapErr(err); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

type profileRepo struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

func (r *profileRepo) GetByOwner(ctx context.Context, owner string) (*models.Profile, error) {
	d, err := get[profileDoc](ctx, r.col.Doc(owner))
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

// Save checks token uniqueness and writes inside one transaction.
func (r *profileRepo) Save(ctx context.Context, p *models.Profile) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(r.col.Where("token", "==", p.Token)).GetAll()
		if err != nil {
			return err
		}
		for _, s := range snaps {
			if s.Ref.ID != p.Owner {
				return common.ErrorAlreadyExists
			}
		}
		return tx.Set(r.col.Doc(p.Owner), profileDoc{
			Owner: p.Owner, Token: p.Token, SecretHash: p.SecretHash, CreatedAt: p.CreatedAt,
		})
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return mapErr(err)
}

type internalEventRepo struct{ col *firestore.CollectionRef }

func (r *internalEventRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.col.Doc(name).Get(ctx)
	switch err := mapErr(err); {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *internalEventRepo) Record(ctx context.Context, name string) error {
	_, err := r.col.Doc(name).Create(ctx, internalEventDoc{CreatedAt: time.Now().UTC()})
	if err := mapErr(err); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return nil
}
