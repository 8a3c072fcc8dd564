package platform

import (
	"regexp"
	"strings"
)

// subdomainRegex matches a valid DNS label for a tenant storefront:
// lowercase alphanumeric, optional inner hyphens, max 63 characters.
var subdomainRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeSubdomain lowercases the input and drops every character outside
// [a-z0-9-]. Invalid characters are removed silently. Idempotent.
func NormalizeSubdomain(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidSubdomain reports whether s is a well-formed tenant subdomain label.
func ValidSubdomain(s string) bool {
	return subdomainRegex.MatchString(s)
}
