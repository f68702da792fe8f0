// Package repository contains data access logic for the class
// schedule. This file defines ClassRepo, the persistence half of the
// schedule store that deals with class rows themselves; bookings live
// in BookingRepo. All timestamps are stored as UTC DATETIME values
// and come back as time.Time thanks to parseTime on the driver.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
)

// ClassRepo manages persistence for class schedules.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ClassRepo) DB() *sql.DB { return r.db }

// Create inserts a new class and assigns the generated UUID back to
// the struct.  Business validation (class type, capacity, start time)
// happens in the admission service before this is called; the repo
// persists what it is given.
func (r *ClassRepo) Create(ctx context.Context, cs *model.ClassSchedule) error {
	cs.ID = uuid.NewString()
	const q = `INSERT INTO class_schedules (id, name, instructor, start_time, capacity) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, cs.ID, string(cs.Name), cs.Instructor, cs.StartTime.UTC(), cs.Capacity); err != nil {
		return err
	}
	// Read the row back to pick up the DB-assigned created_at.
	const sel = `SELECT created_at FROM class_schedules WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, cs.ID).Scan(&cs.CreatedAt)
}

// GetByID retrieves a class by its ID.  It returns ErrClassNotFound
// when no matching row exists.
func (r *ClassRepo) GetByID(ctx context.Context, id string) (*model.ClassSchedule, error) {
	const q = `SELECT id, name, instructor, start_time, capacity, created_at FROM class_schedules WHERE id = ?`
	var cs model.ClassSchedule
	var name string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&cs.ID, &name, &cs.Instructor, &cs.StartTime, &cs.Capacity, &cs.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	cs.Name = model.ClassType(name)
	return &cs, nil
}

// ListUpcoming returns all classes starting at or after the given
// instant, each paired with the number of open slots at the moment of
// the query.  Ordering by creation time (with ID as tiebreaker) keeps
// repeated listings stable.  The slot count is read-committed: a
// concurrent booking may make it stale by one, which is fine for
// display.
func (r *ClassRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.UpcomingClass, error) {
	const q = `SELECT c.id, c.name, c.instructor, c.start_time, c.capacity, c.created_at,
	                  c.capacity - COUNT(b.id)
	           FROM class_schedules c
	           LEFT JOIN bookings b ON b.class_id = c.id
	           WHERE c.start_time >= ?
	           GROUP BY c.id, c.name, c.instructor, c.start_time, c.capacity, c.created_at
	           ORDER BY c.created_at, c.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.UpcomingClass, 0)
	for rows.Next() {
		var uc model.UpcomingClass
		var name string
		if err := rows.Scan(&uc.ID, &name, &uc.Instructor, &uc.StartTime, &uc.Capacity, &uc.CreatedAt, &uc.AvailableSlots); err != nil {
			return nil, err
		}
		uc.Name = model.ClassType(name)
		result = append(result, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
