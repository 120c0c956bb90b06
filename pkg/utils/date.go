package utils

import (
	"time"
)

// LoadLocation loads the named IANA zone, falling back to fallback and
// finally to UTC when neither can be loaded.
func LoadLocation(name, fallback string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(fallback); err == nil {
		return loc
	}
	return time.UTC
}

// StartOfYear returns midnight of January 1st of t's year in t's location.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// PrettyDate formats t for chat messages, e.g. "Mon, 02 Jan 2006 15:04 MST".
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}
