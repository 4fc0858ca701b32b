package models

import "time"

// HistoryDay summarises one calendar day of a service's history.
type HistoryDay struct {
	Image         string    `json:"image"`
	Name          string    `json:"name"`
	Day           time.Time `json:"day"`
	Informational bool      `json:"informational"`
}
