// Package clock provides the studio's reference of "now".  Every
// temporal comparison in the booking rules goes through a Clock so
// that tests can pin the current instant, and so that the reference
// timezone is decided in exactly one place.
package clock

import "time"

// Clock yields the current instant in the studio's reference
// timezone.  Location returns that timezone for parsing and default
// display formatting; it must never vary between calls.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// DefaultTimezone is the studio-local timezone used when none is
// configured.
const DefaultTimezone = "Asia/Kolkata"

// Studio is the production Clock.  The zero value is not usable;
// construct it with NewStudio.
type Studio struct {
	loc *time.Location
}

// NewStudio builds a Studio clock for the named timezone.  An
// unknown name is an error: the reference timezone is configuration,
// not user input, and must not fall back silently.
func NewStudio(tz string) (*Studio, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Studio{loc: loc}, nil
}

// Now returns the current instant expressed in the studio timezone.
func (s *Studio) Now() time.Time { return time.Now().In(s.loc) }

// Location returns the studio timezone.
func (s *Studio) Location() *time.Location { return s.loc }

// Fixed is a Clock pinned to a single instant.  It exists for tests
// that exercise the temporal rules deterministically.
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.Instant }

// Location returns the pinned instant's location.
func (f Fixed) Location() *time.Location { return f.Instant.Location() }
