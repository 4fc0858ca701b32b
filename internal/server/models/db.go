// Package models defines the stashboard data model and the plain-data REST
// projections that the HTTP API serializes.
package models

import (
	"net/url"
	"strings"
)

// ImagePrefix is the public path under which icon assets are served.
const ImagePrefix = "/images/"

// siteRoot returns scheme://host of baseURL, dropping any path.
func siteRoot(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(baseURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
