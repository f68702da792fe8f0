package model

import "time"

// ClassType enumerates the kinds of classes the studio runs.  The
// enumeration is closed: scheduling any other kind of class is
// rejected at creation time.
type ClassType string

// Allowed class types.
const (
	ClassYoga  ClassType = "Yoga"
	ClassZumba ClassType = "Zumba"
	ClassHIIT  ClassType = "HIIT"
)

// Valid reports whether t is one of the allowed class types.  The
// comparison is case sensitive: "yoga" is not a valid class type.
func (t ClassType) Valid() bool {
	switch t {
	case ClassYoga, ClassZumba, ClassHIIT:
		return true
	}
	return false
}

// ClassSchedule represents a single scheduled class at the studio.
// All fields are immutable once the class has been created.
//
// Fields:
//  ID         – opaque UUID primary key, generated at creation.
//  Name       – class type, one of the ClassType enumeration.
//  Instructor – display name of the instructor running the class.
//  StartTime  – absolute instant the class begins.  Compared against
//               the studio clock for every temporal rule.
//  Capacity   – maximum number of concurrent bookings; always > 0.
//  CreatedAt  – row creation time, used for stable listing order.
type ClassSchedule struct {
	ID         string    `json:"id"`         // class_schedules.id
	Name       ClassType `json:"name"`       // class_schedules.name
	Instructor string    `json:"instructor"` // class_schedules.instructor
	StartTime  time.Time `json:"start_time"` // class_schedules.start_time
	Capacity   int       `json:"capacity"`   // class_schedules.capacity
	CreatedAt  time.Time `json:"-"`          // class_schedules.created_at
}

// UpcomingClass pairs a class with the number of slots still open
// at the moment of listing.  AvailableSlots is a snapshot: it may be
// stale by one booking under concurrent writes, which is acceptable
// for display.
type UpcomingClass struct {
	ClassSchedule
	AvailableSlots int `json:"available_slots"`
}
