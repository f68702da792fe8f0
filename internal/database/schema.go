package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for the two tables, applied in order.  The
// foreign key on bookings carries ON DELETE CASCADE: a class owns its
// bookings, so dropping a class removes them with it.  The unique
// index on (class_id, user_email) backs the duplicate-booking
// invariant at the storage level, independent of any application
// check.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS class_schedules (
		id         CHAR(36)     NOT NULL,
		name       VARCHAR(20)  NOT NULL,
		instructor VARCHAR(100) NOT NULL,
		start_time DATETIME     NOT NULL,
		capacity   INT UNSIGNED NOT NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           CHAR(36)     NOT NULL,
		class_id     CHAR(36)     NOT NULL,
		user_name    VARCHAR(100) NOT NULL,
		user_email   VARCHAR(100) NOT NULL,
		booking_time DATETIME     NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_class_email (class_id, user_email),
		CONSTRAINT fk_bookings_class FOREIGN KEY (class_id)
			REFERENCES class_schedules (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the booking schema when it does not yet exist.  It
// is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Reset drops and recreates the booking schema.  Only the seed
// command uses it; the server never drops data.
func Reset(ctx context.Context, db *sql.DB) error {
	// Bookings first: the FK prevents dropping the parent table.
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS bookings`,
		`DROP TABLE IF EXISTS class_schedules`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	return Migrate(ctx, db)
}
