package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
)

func newClassRepo(t *testing.T) (*ClassRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewClassRepo(db), mock
}

func TestClassCreateAssignsID(t *testing.T) {
	repo, mock := newClassRepo(t)
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO class_schedules (id, name, instructor, start_time, capacity) VALUES (?, ?, ?, ?, ?)`)).
		WithArgs(sqlmock.AnyArg(), "Yoga", "Jane Doe", start, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT created_at FROM class_schedules WHERE id = ?`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	cs := &model.ClassSchedule{Name: model.ClassYoga, Instructor: "Jane Doe", StartTime: start, Capacity: 10}
	require.NoError(t, repo.Create(context.Background(), cs))
	assert.NotEmpty(t, cs.ID)
	assert.True(t, cs.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassGetByID(t *testing.T) {
	repo, mock := newClassRepo(t)
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	created := start.Add(-720 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "name", "instructor", "start_time", "capacity", "created_at"}).
		AddRow("class-1", "Zumba", "Alex", start, 12, created)
	mock.ExpectQuery("SELECT id, name, instructor").WithArgs("class-1").WillReturnRows(rows)

	cs, err := repo.GetByID(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, model.ClassZumba, cs.Name)
	assert.Equal(t, 12, cs.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassGetByIDNotFound(t *testing.T) {
	repo, mock := newClassRepo(t)

	mock.ExpectQuery("SELECT id, name, instructor").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instructor", "start_time", "capacity", "created_at"}))

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUpcomingComputesAvailableSlots(t *testing.T) {
	repo, mock := newClassRepo(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "name", "instructor", "start_time", "capacity", "created_at", "available"}).
		AddRow("class-1", "Yoga", "Jane Doe", start, 10, now.Add(-time.Hour), 7).
		AddRow("class-2", "HIIT", "Alex", start.Add(time.Hour), 8, now, 8)
	mock.ExpectQuery("FROM class_schedules c").WithArgs(now).WillReturnRows(rows)

	items, err := repo.ListUpcoming(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].AvailableSlots)
	assert.Equal(t, model.ClassHIIT, items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUpcomingEmpty(t *testing.T) {
	repo, mock := newClassRepo(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM class_schedules c").WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instructor", "start_time", "capacity", "created_at", "available"}))

	items, err := repo.ListUpcoming(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
