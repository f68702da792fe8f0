// Package queue defines message payloads exchanged over the message broker,
// the publisher that emits them, and the background consumer that turns
// them into the booking audit log.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID  string `json:"booking_id"`
	ClassID    string `json:"class_id"`
	ClassName  string `json:"class_name"`
	Instructor string `json:"instructor"`
	StartsAt   string `json:"starts_at"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	BookedAt   string `json:"booked_at"`
}
