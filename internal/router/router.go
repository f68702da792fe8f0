package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"   // Echo web framework
	"github.com/redis/go-redis/v9" // Redis client for cache and rate limiting

	"github.com/iliyamo/fitness-studio-booking/internal/config"
	"github.com/iliyamo/fitness-studio-booking/internal/handler"
	"github.com/iliyamo/fitness-studio-booking/internal/middleware"
)

// RegisterRoutes wires every endpoint of the service.  The class and
// booking listings sit behind the Redis response cache; the booking
// endpoint, the only hot write path, is rate limited.  Both
// middlewares degrade to pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, ch *handler.ClassHandler, bh *handler.BookingHandler, rdb *redis.Client) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	limited := middleware.NewTokenBucket(rateCfg, rdb)

	v1 := e.Group("/v1")
	// Class schedule: creation and the upcoming listing.
	v1.POST("/classes", ch.CreateClass)
	v1.GET("/classes", ch.ListClasses, cached)
	// Booking admission and per-email listing.
	v1.POST("/book", bh.CreateBooking, limited)
	v1.GET("/bookings", bh.ListBookings, cached)
}
