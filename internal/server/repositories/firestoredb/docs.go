package firestoredb

import (
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

type statusDoc struct {
	Slug        string `firestore:"slug"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	Image       string `firestore:"image"`
	Default     bool   `firestore:"default"`
	Severity    int    `firestore:"severity"`
}

func toStatusDoc(s *models.Status) statusDoc {
	return statusDoc{Slug: s.Slug, Name: s.Name, Description: s.Description, Image: s.Image, Default: s.Default, Severity: s.Severity}
}

func (d *statusDoc) model() *models.Status {
	return &models.Status{Slug: d.Slug, Name: d.Name, Description: d.Description, Image: d.Image, Default: d.Default, Severity: d.Severity}
}

type listDoc struct {
	Slug        string `firestore:"slug"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
}

func (d *listDoc) model() *models.List {
	return &models.List{Slug: d.Slug, Name: d.Name, Description: d.Description}
}

type serviceDoc struct {
	Slug        string `firestore:"slug"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	ListSlug    string `firestore:"list_slug"`
}

func (d *serviceDoc) model() *models.Service {
	return &models.Service{Slug: d.Slug, Name: d.Name, Description: d.Description, ListSlug: d.ListSlug}
}

// eventDoc carries Seq, the insert time in nanoseconds, to order events that
// share a start time.
type eventDoc struct {
	ID            string    `firestore:"id"`
	ServiceSlug   string    `firestore:"service_slug"`
	StatusSlug    string    `firestore:"status_slug"`
	Message       string    `firestore:"message"`
	Start         time.Time `firestore:"start"`
	Informational bool      `firestore:"informational"`
	Seq           int64     `firestore:"seq"`
}

func (d *eventDoc) model() *models.Event {
	return &models.Event{
		ID: d.ID, ServiceSlug: d.ServiceSlug, StatusSlug: d.StatusSlug,
		Message: d.Message, Start: d.Start, Informational: d.Informational,
	}
}

type imageDoc struct {
	Slug    string `firestore:"slug"`
	IconSet string `firestore:"icon_set"`
	Path    string `firestore:"path"`
}

func (d *imageDoc) model() *models.Image {
	return &models.Image{Slug: d.Slug, IconSet: d.IconSet, Path: d.Path}
}

type profileDoc struct {
	Owner      string    `firestore:"owner"`
	Token      string    `firestore:"token"`
	SecretHash []byte    `firestore:"secret_hash"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func (d *profileDoc) model() *models.Profile {
	return &models.Profile{Owner: d.Owner, Token: d.Token, SecretHash: d.SecretHash, CreatedAt: d.CreatedAt}
}

type internalEventDoc struct {
	CreatedAt time.Time `firestore:"created_at"`
}
