package models

// Image is an icon asset that statuses can point at.
type Image struct {
	Slug    string
	IconSet string
	Path    string
}

// ImageRest is the REST projection of an Image.
type ImageRest struct {
	Name string `json:"name"`
	Set  string `json:"set"`
	URL  string `json:"url"`
}

func (i *Image) AbsoluteURL() string {
	return ImagePrefix + i.Path
}

func (i *Image) Rest(baseURL string) ImageRest {
	return ImageRest{
		Name: i.Slug,
		Set:  i.IconSet,
		URL:  siteRoot(baseURL) + i.AbsoluteURL(),
	}
}
