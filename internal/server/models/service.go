package models

// Service is a monitored entity. Its status is never stored here; it is
// whatever the latest Event for the service says.
type Service struct {
	Slug        string
	Name        string
	Description string
	// ListSlug is empty when the service belongs to no list.
	ListSlug string
}

// ServiceRest is the REST projection of a Service. CurrentEvent and List
// serialize as null when absent.
type ServiceRest struct {
	Name         string     `json:"name"`
	ID           string     `json:"id"`
	Description  string     `json:"description"`
	URL          string     `json:"url"`
	CurrentEvent *EventRest `json:"current-event"`
	List         *ListRest  `json:"list"`
}

func (s *Service) ResourceURL() string {
	return "/services/" + s.Slug
}

// Rest projects the service given its already resolved current event and
// list, either of which may be nil.
func (s *Service) Rest(baseURL string, current *EventRest, list *ListRest) ServiceRest {
	return ServiceRest{
		Name:         s.Name,
		ID:           s.Slug,
		Description:  s.Description,
		URL:          baseURL + s.ResourceURL(),
		CurrentEvent: current,
		List:         list,
	}
}
