package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fitness-studio-booking/internal/clock"
	"github.com/iliyamo/fitness-studio-booking/internal/model"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
)

// memStore is an in-memory schedule store satisfying ClassStore and
// BookingStore. Its Create mirrors the production contract: the
// capacity and duplicate checks and the insert happen under one lock,
// so racing callers observe them as a single atomic step.
type memStore struct {
	mu       sync.Mutex
	classes  []*model.ClassSchedule
	bookings map[string][]*model.Booking // class ID -> bookings
	reads    int                         // store accesses, to assert fail-fast ordering
}

func newMemStore() *memStore {
	return &memStore{bookings: make(map[string][]*model.Booking)}
}

func (s *memStore) Create(ctx context.Context, cs *model.ClassSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs.ID = fmt.Sprintf("class-%d", len(s.classes)+1)
	cs.CreatedAt = time.Now()
	cp := *cs
	s.classes = append(s.classes, &cp)
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*model.ClassSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	for _, cs := range s.classes {
		if cs.ID == id {
			cp := *cs
			return &cp, nil
		}
	}
	return nil, repository.ErrClassNotFound
}

func (s *memStore) ListUpcoming(ctx context.Context, now time.Time) ([]model.UpcomingClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	out := make([]model.UpcomingClass, 0)
	for _, cs := range s.classes {
		if cs.StartTime.Before(now) {
			continue
		}
		out = append(out, model.UpcomingClass{
			ClassSchedule:  *cs,
			AvailableSlots: cs.Capacity - len(s.bookings[cs.ID]),
		})
	}
	return out, nil
}

func (s *memStore) CountByClass(ctx context.Context, classID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return len(s.bookings[classID]), nil
}

func (s *memStore) ExistsByClassAndEmail(ctx context.Context, classID, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	for _, b := range s.bookings[classID] {
		if b.UserEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateBooking(ctx context.Context, classID, userName, userEmail string, now time.Time) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var class *model.ClassSchedule
	for _, cs := range s.classes {
		if cs.ID == classID {
			class = cs
			break
		}
	}
	if class == nil {
		return nil, repository.ErrClassNotFound
	}
	if len(s.bookings[classID]) >= class.Capacity {
		return nil, repository.ErrClassFull
	}
	for _, b := range s.bookings[classID] {
		if b.UserEmail == userEmail {
			return nil, repository.ErrAlreadyBooked
		}
	}
	b := &model.Booking{
		ID:          fmt.Sprintf("booking-%s-%d", classID, len(s.bookings[classID])+1),
		ClassID:     classID,
		UserName:    userName,
		UserEmail:   userEmail,
		BookingTime: now,
	}
	s.bookings[classID] = append(s.bookings[classID], b)
	return b, nil
}

func (s *memStore) ListByEmail(ctx context.Context, email string) ([]model.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	out := make([]model.BookingDetail, 0)
	for _, cs := range s.classes {
		for _, b := range s.bookings[cs.ID] {
			if b.UserEmail != email {
				continue
			}
			out = append(out, model.BookingDetail{
				Booking:        *b,
				ClassName:      cs.Name,
				ClassStartTime: cs.StartTime,
			})
		}
	}
	return out, nil
}

// bookingStoreAdapter renames CreateBooking to Create so memStore can
// satisfy both interfaces despite the name collision with ClassStore.
type bookingStoreAdapter struct{ *memStore }

func (a bookingStoreAdapter) Create(ctx context.Context, classID, userName, userEmail string, now time.Time) (*model.Booking, error) {
	return a.CreateBooking(ctx, classID, userName, userEmail, now)
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestAdmission(t *testing.T) (*Admission, *memStore) {
	t.Helper()
	store := newMemStore()
	adm := NewAdmission(store, bookingStoreAdapter{store}, clock.Fixed{Instant: testNow})
	return adm, store
}

func futureClass(t *testing.T, adm *Admission, capacity int) *model.ClassSchedule {
	t.Helper()
	cs, err := adm.CreateClass(context.Background(), "Yoga", "Jane Doe",
		testNow.Add(48*time.Hour).Format(time.RFC3339), capacity)
	require.NoError(t, err)
	return cs
}

func TestBookStructuralValidationBeforeStoreAccess(t *testing.T) {
	adm, store := newTestAdmission(t)
	ctx := context.Background()

	cases := []struct {
		name                      string
		classID, userName, email  string
		want                      error
	}{
		{"missing class id", "", "Jane", "jane@example.com", ErrMissingField},
		{"missing name", "class-1", "", "jane@example.com", ErrMissingField},
		{"missing email", "class-1", "Jane", "", ErrMissingField},
		{"email without domain dot", "class-1", "Jane", "jane@example", ErrInvalidEmail},
		{"email with whitespace", "class-1", "Jane", "jane doe@example.com", ErrInvalidEmail},
		{"blank name", "class-1", "   ", "jane@example.com", ErrEmptyUserName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adm.Book(ctx, tc.classID, tc.userName, tc.email)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Zero(t, store.reads, "input validation must run before any store access")
}

func TestBookUnknownClass(t *testing.T) {
	adm, _ := newTestAdmission(t)
	_, err := adm.Book(context.Background(), "no-such-class", "Jane", "jane@example.com")
	assert.ErrorIs(t, err, repository.ErrClassNotFound)
}

func TestBookPastClassBoundary(t *testing.T) {
	adm, store := newTestAdmission(t)
	ctx := context.Background()

	past := &model.ClassSchedule{Name: model.ClassZumba, Instructor: "Alex", StartTime: testNow.Add(-time.Minute), Capacity: 5}
	require.NoError(t, store.Create(ctx, past))
	_, err := adm.Book(ctx, past.ID, "Jane", "jane@example.com")
	assert.ErrorIs(t, err, ErrPastClass)

	// A class starting exactly now is still bookable.
	atNow := &model.ClassSchedule{Name: model.ClassHIIT, Instructor: "Alex", StartTime: testNow, Capacity: 5}
	require.NoError(t, store.Create(ctx, atNow))
	b, err := adm.Book(ctx, atNow.ID, "Jane", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, atNow.ID, b.ClassID)
	assert.Equal(t, testNow, b.BookingTime)
}

func TestBookDuplicateThenFull(t *testing.T) {
	adm, _ := newTestAdmission(t)
	ctx := context.Background()
	cs := futureClass(t, adm, 1)

	b, err := adm.Book(ctx, cs.ID, "Alice", "a@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)

	_, err = adm.Book(ctx, cs.ID, "Alice", "a@example.com")
	assert.ErrorIs(t, err, repository.ErrAlreadyBooked)

	_, err = adm.Book(ctx, cs.ID, "Bob", "b@example.com")
	assert.ErrorIs(t, err, repository.ErrClassFull)
}

func TestCreateClassRuleChain(t *testing.T) {
	adm, _ := newTestAdmission(t)
	ctx := context.Background()
	future := testNow.Add(24 * time.Hour).Format(time.RFC3339)

	cases := []struct {
		name                        string
		classType, instructor, when string
		capacity                    int
		want                        error
	}{
		{"missing instructor", "Yoga", "", future, 10, ErrMissingField},
		{"unknown type", "Pilates", "Jane", future, 10, ErrInvalidClassType},
		{"lowercase type rejected", "yoga", "Jane", future, 10, ErrInvalidClassType},
		{"zero capacity", "Yoga", "Jane", future, 0, ErrInvalidCapacity},
		{"negative capacity", "Yoga", "Jane", future, -3, ErrInvalidCapacity},
		{"garbage date", "Yoga", "Jane", "next tuesday", 10, ErrInvalidDateFormat},
		{"past start", "Yoga", "Jane", testNow.Add(-time.Hour).Format(time.RFC3339), 10, ErrPastSchedule},
		{"start exactly now", "Yoga", "Jane", testNow.Format(time.RFC3339), 10, ErrPastSchedule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adm.CreateClass(ctx, tc.classType, tc.instructor, tc.when, tc.capacity)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Type violations are reported even when every other field is bad too.
	_, err := adm.CreateClass(ctx, "Spin", "Jane", "garbage", -1)
	assert.ErrorIs(t, err, ErrInvalidClassType)

	cs, err := adm.CreateClass(ctx, "HIIT", "Jane", future, 15)
	require.NoError(t, err)
	assert.Equal(t, model.ClassHIIT, cs.Name)
	assert.NotEmpty(t, cs.ID)
}

func TestCreateClassNaiveTimestampUsesStudioTimezone(t *testing.T) {
	adm, _ := newTestAdmission(t)
	cs, err := adm.CreateClass(context.Background(), "Zumba", "Jane", "2026-03-12T10:00:00", 5)
	require.NoError(t, err)
	want := time.Date(2026, 3, 12, 10, 0, 0, 0, testNow.Location())
	assert.True(t, cs.StartTime.Equal(want), "naive timestamp should be anchored to the studio timezone")
}

func TestListClassesIdempotentReads(t *testing.T) {
	adm, _ := newTestAdmission(t)
	ctx := context.Background()
	futureClass(t, adm, 3)
	futureClass(t, adm, 5)

	first, err := adm.ListClasses(ctx)
	require.NoError(t, err)
	second, err := adm.ListClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "listing twice with no writes must return identical results")
	require.Len(t, first, 2)
	assert.Equal(t, 3, first[0].AvailableSlots)
}

func TestListBookingsValidatesEmailBeforeStoreAccess(t *testing.T) {
	adm, store := newTestAdmission(t)
	_, err := adm.ListBookings(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Zero(t, store.reads)
}

func TestListBookingsJoinsClassData(t *testing.T) {
	adm, _ := newTestAdmission(t)
	ctx := context.Background()
	cs := futureClass(t, adm, 2)
	_, err := adm.Book(ctx, cs.ID, "Alice", "a@example.com")
	require.NoError(t, err)

	details, err := adm.ListBookings(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, model.ClassYoga, details[0].ClassName)
	assert.True(t, details[0].ClassStartTime.Equal(cs.StartTime))

	empty, err := adm.ListBookings(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConcurrentBookingsRespectCapacity(t *testing.T) {
	adm, store := newTestAdmission(t)
	ctx := context.Background()
	cs := futureClass(t, adm, 1)

	const n = 12
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := adm.Book(ctx, cs.ID, "Client", fmt.Sprintf("c%d@example.com", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			// Races lost after the pre-check surface as the same kind.
			assert.ErrorIs(t, err, repository.ErrClassFull)
			full++
		}
	}
	assert.Equal(t, 1, ok, "exactly one booking must commit")
	assert.Equal(t, n-1, full)

	count, err := store.CountByClass(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
