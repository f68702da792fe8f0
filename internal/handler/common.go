package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/service"
)

// AdmissionService is the slice of the admission engine the handlers
// depend on.  *service.Admission satisfies it; tests substitute a
// func-field mock.
type AdmissionService interface {
	CreateClass(ctx context.Context, name, instructor, startRaw string, capacity int) (*model.ClassSchedule, error)
	GetClass(ctx context.Context, id string) (*model.ClassSchedule, error)
	Book(ctx context.Context, classID, userName, userEmail string) (*model.Booking, error)
	ListClasses(ctx context.Context) ([]model.UpcomingClass, error)
	ListBookings(ctx context.Context, email string) ([]model.BookingDetail, error)
}

// statusFor maps an admission or store error to the HTTP status and
// message the caller should see.  Rule violations are client errors;
// a missing class is 404; anything unrecognised is an internal
// failure reported with a generic message so storage details never
// leak to clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmptyUserName),
		errors.Is(err, service.ErrInvalidClassType),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidDateFormat),
		errors.Is(err, service.ErrPastSchedule),
		errors.Is(err, service.ErrPastClass),
		errors.Is(err, repository.ErrClassFull),
		errors.Is(err, repository.ErrAlreadyBooked):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrClassNotFound):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}
