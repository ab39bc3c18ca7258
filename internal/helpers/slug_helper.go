package helpers

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify derives a URL-safe identifier from a title.
func Slugify(title string) string {
	return slug.Make(title)
}

// UniqueSlug derives a slug from title and suffixes a counter until exists
// reports it free.
func UniqueSlug(title string, exists func(string) bool) string {
	base := slug.Make(title)
	if !exists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}
