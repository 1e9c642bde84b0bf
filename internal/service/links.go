package service

import (
	"regexp"
	"strings"
)

// maxBriefLinks bounds how many URLs are lifted out of the free-text brief.
const maxBriefLinks = 5

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// ExtractLinks pulls up to max http(s) URLs out of free text, in order
// of appearance.
func ExtractLinks(text string, max int) []string {
	return urlPattern.FindAllString(text, max)
}

var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImageURL reports whether the URL path looks like an image, ignoring
// any query string.
func IsImageURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(u, suffix) {
			return true
		}
	}
	return false
}
