package models

import (
	"net/http"
	"time"
)

// Event is an immutable record of a service changing (or confirming) status.
// Events are append-only: nothing updates or deletes them.
type Event struct {
	ID          string
	ServiceSlug string
	StatusSlug  string
	Message     string
	// Start is stamped by the server when the event is created.
	Start         time.Time
	Informational bool
}

// EventRest is the REST projection of an Event.
type EventRest struct {
	SID           string     `json:"sid"`
	Timestamp     string     `json:"timestamp"`
	Status        StatusRest `json:"status"`
	Message       string     `json:"message"`
	URL           string     `json:"url"`
	Informational bool       `json:"informational"`
}

func (e *Event) ResourceURL() string {
	return "/services/" + e.ServiceSlug + "/events/" + e.ID
}

// Timestamp formats Start as an HTTP-date (RFC 1123, GMT).
func (e *Event) Timestamp() string {
	return e.Start.UTC().Format(http.TimeFormat)
}

// Rest projects the event with its status already loaded.
func (e *Event) Rest(baseURL string, status *Status) EventRest {
	return EventRest{
		SID:           e.ID,
		Timestamp:     e.Timestamp(),
		Status:        status.Rest(baseURL),
		Message:       e.Message,
		URL:           baseURL + e.ResourceURL(),
		Informational: e.Informational,
	}
}
