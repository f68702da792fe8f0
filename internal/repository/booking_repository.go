package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  The Create method
// is the single mutation entry point that protects the capacity and
// duplicate invariants: every check it performs happens inside one
// transaction holding a row lock on the class, so "check then insert"
// is never observable as two steps from a concurrent caller.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CountByClass returns the number of active bookings for a class.
// Callers use it for fail-fast pre-checks and for listing available
// slots; it reads whatever is committed at the time of the query.
func (r *BookingRepo) CountByClass(ctx context.Context, classID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE class_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, classID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ExistsByClassAndEmail reports whether the email already holds a
// booking for the class.  Like CountByClass this is a pre-check
// helper; the authoritative check happens again inside Create.
func (r *BookingRepo) ExistsByClassAndEmail(ctx context.Context, classID, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE class_id = ? AND user_email = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, classID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create commits a booking atomically.  Inside a single transaction it
// locks the class row, re-verifies capacity and duplicate constraints
// against committed state, and inserts the booking.  It returns
// ErrClassNotFound, ErrClassFull or ErrAlreadyBooked when the
// corresponding re-check fails; any other error leaves the store
// untouched because the transaction rolls back.
func (r *BookingRepo) Create(ctx context.Context, classID, userName, userEmail string, now time.Time) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the class row.  FOR UPDATE serializes all booking commits
	// for this class until the transaction ends.
	const lockQ = `SELECT capacity FROM class_schedules WHERE id = ? FOR UPDATE`
	var capacity int
	if err := tx.QueryRowContext(ctx, lockQ, classID).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	// Commit-time re-validation under the lock.
	const countQ = `SELECT COUNT(*) FROM bookings WHERE class_id = ?`
	var count int
	if err := tx.QueryRowContext(ctx, countQ, classID).Scan(&count); err != nil {
		return nil, err
	}
	if count >= capacity {
		return nil, ErrClassFull
	}
	const dupQ = `SELECT EXISTS(SELECT 1 FROM bookings WHERE class_id = ? AND user_email = ?)`
	var dup bool
	if err := tx.QueryRowContext(ctx, dupQ, classID, userEmail).Scan(&dup); err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrAlreadyBooked
	}

	b := &model.Booking{
		ID:          uuid.NewString(),
		ClassID:     classID,
		UserName:    userName,
		UserEmail:   userEmail,
		BookingTime: now,
	}
	const ins = `INSERT INTO bookings (id, class_id, user_name, user_email, booking_time) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins, b.ID, b.ClassID, b.UserName, b.UserEmail, b.BookingTime.UTC()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// ListByEmail returns all bookings for the given email across all
// classes, newest first, each joined with the parent class data a
// client needs for display.  When no bookings exist it returns an
// empty slice and nil error.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]model.BookingDetail, error) {
	const q = `SELECT b.id, b.class_id, b.user_name, b.user_email, b.booking_time,
	                  c.name, c.start_time
	           FROM bookings b
	           JOIN class_schedules c ON c.id = b.class_id
	           WHERE b.user_email = ?
	           ORDER BY b.booking_time DESC, b.id`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.BookingDetail, 0)
	for rows.Next() {
		var d model.BookingDetail
		var className string
		if err := rows.Scan(&d.ID, &d.ClassID, &d.UserName, &d.UserEmail, &d.BookingTime, &className, &d.ClassStartTime); err != nil {
			return nil, err
		}
		d.ClassName = model.ClassType(className)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
