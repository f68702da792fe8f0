package handler // handler package contains the class schedule endpoints

import (
	"net/http" // http defines status codes
	"time"     // time formats response timestamps

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// ClassHandler exposes class creation and listing.  All business
// rules live in the admission service; the handler binds input,
// delegates, and maps errors to HTTP responses.
type ClassHandler struct {
	Svc AdmissionService // admission engine
	Clk clock.Clock      // studio clock, default display timezone
}

// NewClassHandler constructs a ClassHandler and panics if any
// dependency is nil.
func NewClassHandler(svc AdmissionService, clk clock.Clock) *ClassHandler {
	if svc == nil || clk == nil {
		panic("nil dependency passed to NewClassHandler")
	}
	return &ClassHandler{Svc: svc, Clk: clk}
}

// CreateClass handles POST /v1/classes.  The body carries the class
// type, instructor, ISO start time and capacity.  Validation order
// and error wording come from the admission service; every rule
// violation maps to a 400, unexpected failures to a 500.
func (h *ClassHandler) CreateClass(c echo.Context) error {
	var body struct {
		Name       string `json:"name"`       // class type: Yoga, Zumba or HIIT
		Instructor string `json:"instructor"` // instructor display name
		StartTime  string `json:"date_time"`  // ISO 8601 start time
		Capacity   int    `json:"capacity"`   // maximum simultaneous bookings
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cs, err := h.Svc.CreateClass(c.Request().Context(), body.Name, body.Instructor, body.StartTime, body.Capacity)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         cs.ID,
		"name":       cs.Name,
		"instructor": cs.Instructor,
		"date_time":  cs.StartTime.In(h.Clk.Location()).Format(time.RFC3339),
		"capacity":   cs.Capacity,
	})
}

// ListClasses handles GET /v1/classes.  It returns all upcoming
// classes with their open-slot counts.  The optional ?timezone=
// query parameter only affects how start times are formatted; an
// unknown name falls back to the studio timezone.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	tzName := c.QueryParam("timezone")
	items, err := h.Svc.ListClasses(c.Request().Context())
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	out := make([]echo.Map, 0, len(items))
	for _, uc := range items {
		out = append(out, echo.Map{
			"id":              uc.ID,
			"name":            uc.Name,
			"instructor":      uc.Instructor,
			"date_time":       utils.FormatInTimezone(uc.StartTime, tzName, h.Clk.Location()),
			"capacity":        uc.Capacity,
			"available_slots": uc.AvailableSlots,
		})
	}
	return c.JSON(http.StatusOK, out)
}
