// Command seed resets the booking schema and inserts a sample class
// so a fresh environment has something to book. It is destructive:
// all existing classes and bookings are dropped.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/config"
	"github.com/iliyamo/fitness-studio-booking/internal/database"
	"github.com/iliyamo/fitness-studio-booking/internal/model"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Reset(ctx, db); err != nil {
		log.Fatalf("reset schema: %v", err)
	}

	clk, err := clock.NewStudio(cfg.StudioTimezone)
	if err != nil {
		log.Fatalf("studio timezone %q: %v", cfg.StudioTimezone, err)
	}

	classRepo := repository.NewClassRepo(db)
	samples := []model.ClassSchedule{
		{
			Name:       model.ClassYoga,
			Instructor: "Jane Doe",
			StartTime:  clk.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour),
			Capacity:   10,
		},
	}
	for i := range samples {
		if err := classRepo.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("seed class %q: %v", samples[i].Name, err)
		}
		log.Printf("seeded class %s (%s, starts %s, capacity %d)",
			samples[i].ID, samples[i].Name,
			samples[i].StartTime.Format(time.RFC3339), samples[i].Capacity)
	}
	log.Printf("seed data added successfully")
}
