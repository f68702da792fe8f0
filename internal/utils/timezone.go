package utils

import "time"

// FormatInTimezone renders an instant as RFC3339 in the requested
// display timezone.  The conversion is a pure projection for
// responses: it never feeds back into any comparison.  An empty or
// unknown timezone name falls back to the provided default location
// so a bad query parameter cannot fail a listing.
func FormatInTimezone(t time.Time, tzName string, fallback *time.Location) string {
	loc := fallback
	if tzName != "" {
		if l, err := time.LoadLocation(tzName); err == nil {
			loc = l
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339)
}
