package models

// List groups services on the status page.
type List struct {
	Slug        string
	Name        string
	Description string
}

// ListRest is the REST projection of a List.
type ListRest struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (l *List) ResourceURL() string {
	return "/service-lists/" + l.Slug
}

func (l *List) Rest(baseURL string) ListRest {
	return ListRest{
		Name:        l.Name,
		ID:          l.Slug,
		Description: l.Description,
		URL:         baseURL + l.ResourceURL(),
	}
}
