package model

import "time"

// Booking records a client's spot in a class.  A booking is created
// only through the admission flow and is never mutated afterwards.
// At most one booking exists per (ClassID, UserEmail) pair.
//
// Fields:
//  ID          – opaque UUID primary key, generated at creation.
//  ClassID     – the class this booking belongs to.  Bookings are
//                owned by their class and are removed with it.
//  UserName    – display name of the client.
//  UserEmail   – client email; part of the duplicate-booking key.
//  BookingTime – instant the booking was committed.
type Booking struct {
	ID          string    `json:"id"`           // bookings.id
	ClassID     string    `json:"class_id"`     // bookings.class_id
	UserName    string    `json:"user_name"`    // bookings.user_name
	UserEmail   string    `json:"user_email"`   // bookings.user_email
	BookingTime time.Time `json:"booking_time"` // bookings.booking_time
}

// BookingDetail is a booking joined with the parent class data a
// client needs to recognise it in a listing.
type BookingDetail struct {
	Booking
	ClassName      ClassType `json:"class_name"`
	ClassStartTime time.Time `json:"date_time"`
}
