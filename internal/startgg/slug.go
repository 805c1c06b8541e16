package startgg

import (
	"errors"
	"regexp"
	"strings"
)

var (
	slugPattern = regexp.MustCompile(`tournament/[a-z0-9\-_]+/events?/[a-z0-9\-_]+`)
	slugExact   = regexp.MustCompile(`^tournament/[a-z0-9\-_]+/event/[a-z0-9\-_]+$`)
)

// ErrInvalidSlug marks input that does not contain a
// tournament/<t>/event/<e> path.
var ErrInvalidSlug = errors.New("invalid event slug")

// ValidSlug reports whether s is exactly an event slug.
func ValidSlug(s string) bool {
	return slugExact.MatchString(s)
}

// IsolateSlug extracts the event slug from a full start.gg URL,
// normalizing the plural /events/ path form.
func IsolateSlug(url string) (string, error) {
	match := slugPattern.FindString(url)
	if match == "" {
		return "", ErrInvalidSlug
	}
	return strings.Replace(match, "/events/", "/event/", 1), nil
}
