package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/stashboard/internal/common"
)

// field is a named value that must not be blank.
type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, f.name)
		}
	}
	return nil
}

// identifier rejects keys that cannot name a stored record: document stores
// treat '/' as a path separator and reserve "." and "..".
func identifier(f field) error {
	if strings.Contains(f.value, "/") || f.value == "." || f.value == ".." {
		return fmt.Errorf("%w: %s must not contain '/' or be '.' or '..'", common.ErrorValidation, f.name)
	}
	return nil
}

// Slugify lowercases name and joins its alphanumeric runs with dashes, so
// "Web Site (EU)" becomes "web-site-eu".
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// slugOrName keeps an explicit slug, otherwise derives one from name.
func slugOrName(slug, name string) string {
	if slug != "" {
		return slug
	}
	return Slugify(name)
}
