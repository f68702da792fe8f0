package handler // handler package contains the booking endpoints

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/queue"
	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// BookingHandler exposes booking admission and listing.  After a
// successful commit it publishes a confirmation event to the broker;
// publish failures are logged and ignored because the booking is
// already durable.
type BookingHandler struct {
	Svc AdmissionService // admission engine
	Clk clock.Clock      // studio clock, default display timezone
}

// NewBookingHandler constructs a BookingHandler and panics if any
// dependency is nil.
func NewBookingHandler(svc AdmissionService, clk clock.Clock) *BookingHandler {
	if svc == nil || clk == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Clk: clk}
}

// CreateBooking handles POST /v1/book.  The admission service runs
// the full rule chain and commits atomically; the handler only maps
// the outcome.  A race lost at commit time surfaces as the same 400
// the pre-check would have produced.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var body struct {
		ClassID   string `json:"class_id"`   // class to book
		UserName  string `json:"user_name"`  // client display name
		UserEmail string `json:"user_email"` // client email
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	b, err := h.Svc.Book(ctx, body.ClassID, body.UserName, body.UserEmail)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	// Fire the confirmation event without blocking the response.  The
	// class lookup and publish are best effort from here on.
	if cs, err := h.Svc.GetClass(ctx, b.ClassID); err == nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:  b.ID,
			ClassID:    cs.ID,
			ClassName:  string(cs.Name),
			Instructor: cs.Instructor,
			StartsAt:   cs.StartTime.In(h.Clk.Location()).Format(time.RFC3339),
			UserName:   b.UserName,
			UserEmail:  b.UserEmail,
			BookedAt:   b.BookingTime.In(h.Clk.Location()).Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishBookingConfirmed(pubCtx, ev)
		}()
	} else {
		log.Printf("booking %s: confirmation event skipped: %v", b.ID, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           b.ID,
		"class_id":     b.ClassID,
		"user_name":    b.UserName,
		"user_email":   b.UserEmail,
		"booking_time": b.BookingTime.In(h.Clk.Location()).Format(time.RFC3339),
	})
}

// ListBookings handles GET /v1/bookings.  The ?email= parameter is
// required and validated before any store access; ?timezone= only
// affects how the class start times are rendered.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	email := c.QueryParam("email")
	tzName := c.QueryParam("timezone")
	details, err := h.Svc.ListBookings(c.Request().Context(), email)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	out := make([]echo.Map, 0, len(details))
	for _, d := range details {
		out = append(out, echo.Map{
			"id":           d.ID,
			"class_id":     d.ClassID,
			"class_name":   d.ClassName,
			"date_time":    utils.FormatInTimezone(d.ClassStartTime, tzName, h.Clk.Location()),
			"user_name":    d.UserName,
			"user_email":   d.UserEmail,
			"booking_time": d.BookingTime.In(h.Clk.Location()).Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}
