package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/model"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// ClassStore is the slice of the schedule store the admission engine
// needs for classes.  *repository.ClassRepo satisfies it.
type ClassStore interface {
	Create(ctx context.Context, cs *model.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*model.ClassSchedule, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]model.UpcomingClass, error)
}

// BookingStore is the slice of the schedule store the admission
// engine needs for bookings.  Create must be atomic: it re-checks
// capacity and duplication against committed state and inserts in one
// indivisible unit.  *repository.BookingRepo satisfies it.
type BookingStore interface {
	CountByClass(ctx context.Context, classID string) (int, error)
	ExistsByClassAndEmail(ctx context.Context, classID, email string) (bool, error)
	Create(ctx context.Context, classID, userName, userEmail string, now time.Time) (*model.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]model.BookingDetail, error)
}

// Admission enforces the booking and class-creation rule chains.  It
// holds no mutable state of its own; all shared state lives behind
// the store interfaces, and "now" always comes from the injected
// clock so the temporal rules are deterministic under test.
type Admission struct {
	classes  ClassStore
	bookings BookingStore
	clk      clock.Clock
}

// NewAdmission constructs the admission engine.  All dependencies
// must be non-nil.
func NewAdmission(classes ClassStore, bookings BookingStore, clk clock.Clock) *Admission {
	if classes == nil || bookings == nil || clk == nil {
		panic("nil dependency passed to NewAdmission")
	}
	return &Admission{classes: classes, bookings: bookings, clk: clk}
}

// CreateClass validates and persists a new class.  The rule order is
// fixed, cheapest first: required fields, class type, capacity, date
// parse, temporal validity.  startRaw must be ISO 8601; a naive
// timestamp (no offset) is interpreted in the studio timezone.
func (a *Admission) CreateClass(ctx context.Context, name, instructor, startRaw string, capacity int) (*model.ClassSchedule, error) {
	name = strings.TrimSpace(name)
	instructor = strings.TrimSpace(instructor)
	startRaw = strings.TrimSpace(startRaw)
	if name == "" || instructor == "" || startRaw == "" {
		return nil, ErrMissingField
	}
	classType := model.ClassType(name)
	if !classType.Valid() {
		return nil, ErrInvalidClassType
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	start, err := a.parseStartTime(startRaw)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if !start.After(a.clk.Now()) {
		return nil, ErrPastSchedule
	}
	cs := &model.ClassSchedule{
		Name:       classType,
		Instructor: instructor,
		StartTime:  start,
		Capacity:   capacity,
	}
	if err := a.classes.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// Book runs the admission rule chain for a booking request and, if
// every rule passes, commits the booking.  The chain order is fixed:
// structural checks before any store access, then existence, temporal
// validity, capacity and duplicate pre-checks.  The pre-checks are
// fail-fast only; the store's Create re-validates capacity and
// duplication atomically, and a lost race surfaces as the same error
// kind the pre-check would have produced.
func (a *Admission) Book(ctx context.Context, classID, userName, userEmail string) (*model.Booking, error) {
	classID = strings.TrimSpace(classID)
	userEmail = strings.TrimSpace(userEmail)
	if classID == "" || userName == "" || userEmail == "" {
		return nil, ErrMissingField
	}
	if !utils.ValidEmail(userEmail) {
		return nil, ErrInvalidEmail
	}
	// A name made of whitespace passes the presence check but is
	// still unusable for display.
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, ErrEmptyUserName
	}

	class, err := a.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	now := a.clk.Now()
	// Inclusive boundary: a class starting exactly now is bookable.
	if class.StartTime.Before(now) {
		return nil, ErrPastClass
	}
	count, err := a.bookings.CountByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if count >= class.Capacity {
		return nil, repository.ErrClassFull
	}
	booked, err := a.bookings.ExistsByClassAndEmail(ctx, classID, userEmail)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, repository.ErrAlreadyBooked
	}
	return a.bookings.Create(ctx, classID, userName, userEmail, now)
}

// GetClass resolves a class by ID for display purposes, such as
// building the confirmation event after a commit.
func (a *Admission) GetClass(ctx context.Context, id string) (*model.ClassSchedule, error) {
	return a.classes.GetByID(ctx, id)
}

// ListClasses returns all upcoming classes relative to the studio
// clock, with their open-slot counts.
func (a *Admission) ListClasses(ctx context.Context) ([]model.UpcomingClass, error) {
	return a.classes.ListUpcoming(ctx, a.clk.Now())
}

// ListBookings returns the bookings held by an email address.  The
// email is validated before any store access.
func (a *Admission) ListBookings(ctx context.Context, email string) ([]model.BookingDetail, error) {
	email = strings.TrimSpace(email)
	if email == "" || !utils.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	return a.bookings.ListByEmail(ctx, email)
}

// parseStartTime parses an ISO 8601 timestamp strictly.  A value with
// an explicit offset is taken as-is; a naive local timestamp is
// anchored to the studio timezone.
func (a *Admission) parseStartTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, a.clk.Location())
}
