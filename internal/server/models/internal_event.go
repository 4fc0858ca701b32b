package models

import "time"

// InternalEvent marks that something happened inside the application, such
// as default data having been loaded. Its existence is the whole signal.
type InternalEvent struct {
	Name      string
	CreatedAt time.Time
}

// Internal event names.
const (
	InternalEventStatusesLoaded = "statuses-loaded"
	InternalEventImagesLoaded   = "images-loaded"
)
