package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/config"
	"github.com/iliyamo/fitness-studio-booking/internal/database"
	"github.com/iliyamo/fitness-studio-booking/internal/handler"
	"github.com/iliyamo/fitness-studio-booking/internal/queue"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/router"
	"github.com/iliyamo/fitness-studio-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	clk, err := clock.NewStudio(cfg.StudioTimezone)
	if err != nil {
		log.Fatalf("studio timezone %q: %v", cfg.StudioTimezone, err)
	}

	classRepo := repository.NewClassRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	admission := service.NewAdmission(classRepo, bookingRepo, clk)

	classHandler := handler.NewClassHandler(admission, clk)
	bookingHandler := handler.NewBookingHandler(admission, clk)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer turns confirmation events into the booking
	// audit log. It reconnects forever and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, classHandler, bookingHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, studio_tz=%s)", addr, cfg.Env, cfg.StudioTimezone)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
