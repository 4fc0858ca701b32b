package models

// Severity levels of the deprecated numeric severity field.
const (
	SeverityWarning  = 30
	SeverityError    = 40
	SeverityCritical = 50

	// DefaultSeverity is stored when a status is created without one.
	DefaultSeverity = 10
)

// Textual levels exposed to v1 API consumers.
const (
	LevelNormal   = "NORMAL"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// Status is a possible service state such as Up, Down or Warning.
type Status struct {
	Slug        string
	Name        string
	Description string
	// Image is the icon path relative to ImagePrefix.
	Image   string
	Default bool
	// Severity is deprecated; only Level reads it.
	Severity int
}

// StatusRest is the REST projection of a Status.
type StatusRest struct {
	Default     bool   `json:"default"`
	Name        string `json:"name"`
	ID          string `json:"id"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Level       string `json:"level"`
}

// LevelFromSeverity maps the legacy severity number to its textual level.
// Anything outside the table, including the default, is NORMAL.
func LevelFromSeverity(severity int) string {
	switch severity {
	case SeverityWarning:
		return LevelWarning
	case SeverityError:
		return LevelError
	case SeverityCritical:
		return LevelCritical
	default:
		return LevelNormal
	}
}

// SeverityFromLevel is the inverse of LevelFromSeverity. Unknown levels
// report false.
func SeverityFromLevel(level string) (int, bool) {
	switch level {
	case "", LevelNormal:
		return DefaultSeverity, true
	case LevelWarning:
		return SeverityWarning, true
	case LevelError:
		return SeverityError, true
	case LevelCritical:
		return SeverityCritical, true
	default:
		return 0, false
	}
}

func (s *Status) ImageURL() string {
	return ImagePrefix + s.Image
}

func (s *Status) ResourceURL() string {
	return "/statuses/" + s.Slug
}

// Rest projects the status. The image URL is absolute on the host of baseURL.
func (s *Status) Rest(baseURL string) StatusRest {
	return StatusRest{
		Default:     s.Default,
		Name:        s.Name,
		ID:          s.Slug,
		Description: s.Description,
		URL:         baseURL + s.ResourceURL(),
		Image:       siteRoot(baseURL) + s.ImageURL(),
		Level:       LevelFromSeverity(s.Severity),
	}
}
