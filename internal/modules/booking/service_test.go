package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"meetspace/internal/domain"
	"meetspace/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBookingRepo mirrors the real repository's conflict semantics in
// memory: blocking statuses hold their slot, half-open overlap, all-or-
// nothing series, re-check on update.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]domain.RoomBooking
	roomFloors map[string]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[string]domain.RoomBooking),
		roomFloors: make(map[string]string),
	}
}

func (f *fakeBookingRepo) conflictsLocked(roomID string, date time.Time, start, end time.Time, excludeID string) []domain.RoomBooking {
	var out []domain.RoomBooking
	for _, b := range f.bookings {
		if b.ID == excludeID || b.RoomID != roomID || !b.BookingDate.Equal(date) {
			continue
		}
		if !b.Status.Blocking() {
			continue
		}
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBookingRepo) CreateSeries(ctx context.Context, bookings []*domain.RoomBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var failed []repository.OccurrenceConflict
	for _, b := range bookings {
		conflicts := f.conflictsLocked(b.RoomID, b.BookingDate, b.StartTime, b.EndTime, "")
		if len(conflicts) > 0 {
			failed = append(failed, repository.OccurrenceConflict{
				Date:      b.BookingDate,
				Start:     b.StartTime,
				End:       b.EndTime,
				Conflicts: conflicts,
			})
		}
	}
	if len(failed) > 0 {
		return &repository.ConflictError{Occurrences: failed}
	}
	for _, b := range bookings {
		f.bookings[b.ID] = *b
	}
	return nil
}

func (f *fakeBookingRepo) UpdateChecked(ctx context.Context, id string, mutate func(*domain.RoomBooking) error) (*domain.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	b := stored
	if err := mutate(&b); err != nil {
		return nil, err
	}

	if b.Status.Blocking() {
		conflicts := f.conflictsLocked(b.RoomID, b.BookingDate, b.StartTime, b.EndTime, b.ID)
		if len(conflicts) > 0 {
			return nil, &repository.ConflictError{Occurrences: []repository.OccurrenceConflict{{
				Date:      b.BookingDate,
				Start:     b.StartTime,
				End:       b.EndTime,
				Conflicts: conflicts,
			}}}
		}
	}

	f.bookings[id] = b
	return &b, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) ListConflicts(ctx context.Context, roomID string, date time.Time, start, end time.Time, excludeID string) ([]domain.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conflictsLocked(roomID, date, start, end, excludeID), nil
}

func (f *fakeBookingRepo) ListBlockingForDate(ctx context.Context, date time.Time, floorID string) ([]domain.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RoomBooking
	for _, b := range f.bookings {
		if !b.BookingDate.Equal(date) || !b.Status.Blocking() {
			continue
		}
		if floorID != "" && f.roomFloors[b.RoomID] != floorID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]domain.RoomBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RoomBooking
	for _, b := range f.bookings {
		if b.RequesterID == requesterID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func (f *fakeBookingRepo) seed(b domain.RoomBooking) domain.RoomBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	f.bookings[b.ID] = b
	return b
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.MeetingRoom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingRoom), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, floorID string) ([]domain.MeetingRoom, error) {
	args := m.Called(ctx, floorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MeetingRoom), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, requesterID, bookingID, roomID string, start time.Time, pending bool) error {
	args := m.Called(ctx, requesterID, bookingID, roomID, start, pending)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingApproved(ctx context.Context, requesterID, bookingID string) error {
	args := m.Called(ctx, requesterID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingRejected(ctx context.Context, requesterID, bookingID, reason string) error {
	args := m.Called(ctx, requesterID, bookingID, reason)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, requesterID, bookingID, reason string) error {
	args := m.Called(ctx, requesterID, bookingID, reason)
	return args.Error(0)
}

type auditSpy struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *auditSpy) Record(ctx context.Context, ev domain.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return nil
}

type broadcastSpy struct {
	mu     sync.Mutex
	events []string
}

func (b *broadcastSpy) BroadcastBookingEvent(eventType string, _ *domain.RoomBooking) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
}

// The test clock is fixed so "start must be in the future" and availability
// projections are deterministic.
var testNow = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

type serviceFixture struct {
	svc       *Service
	bookings  *fakeBookingRepo
	rooms     *MockRoomRepository
	notifs    *MockNotificationSender
	audit     *auditSpy
	broadcast *broadcastSpy
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	bookings := newFakeBookingRepo()
	rooms := new(MockRoomRepository)
	notifs := new(MockNotificationSender)
	auditRec := &auditSpy{}
	events := &broadcastSpy{}

	notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("NotifyBookingApproved", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("NotifyBookingRejected", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	notifs.On("NotifyBookingCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := NewService(bookings, rooms, notifs, auditRec, events, 5*time.Second)
	svc.now = func() time.Time { return testNow }

	return &serviceFixture{
		svc:       svc,
		bookings:  bookings,
		rooms:     rooms,
		notifs:    notifs,
		audit:     auditRec,
		broadcast: events,
	}
}

func activeRoom(requiresApproval bool) *domain.MeetingRoom {
	return &domain.MeetingRoom{
		ID:               uuid.NewString(),
		FloorID:          uuid.NewString(),
		Name:             "Room A",
		Capacity:         8,
		RoomType:         domain.RoomStandard,
		Status:           domain.RoomActive,
		RequiresApproval: requiresApproval,
	}
}

func seedBooking(f *serviceFixture, roomID, requesterID, dateStr, startStr, endStr string, status domain.BookingStatus) domain.RoomBooking {
	date, _ := parseDate(dateStr)
	start, _ := parseClock(date, startStr)
	end, _ := parseClock(date, endStr)
	return f.bookings.seed(domain.RoomBooking{
		RoomID:      roomID,
		RequesterID: requesterID,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Title:       "Seeded",
		Status:      status,
	})
}

var (
	employee = domain.Actor{ID: uuid.NewString(), Role: domain.RoleEmployee}
	approver = domain.Actor{ID: uuid.NewString(), Role: domain.RoleApprover}
	admin    = domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
)

func TestCreateBooking_AutoApprovedRoom(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	created, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:30",
		Title:     "Design review",
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, domain.BookingApproved, created[0].Status)
	assert.Equal(t, employee.ID, created[0].RequesterID)
	assert.NotEmpty(t, created[0].ID)

	f.notifs.AssertCalled(t, "NotifyBookingCreated",
		mock.Anything, employee.ID, created[0].ID, room.ID, created[0].StartTime, false)
	assert.Equal(t, []string{"booking_created"}, f.broadcast.events)
	require.Len(t, f.audit.events, 1)
	assert.Equal(t, "booking.create", f.audit.events[0].Action)
}

func TestCreateBooking_ApprovalRoomStartsPending(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(true)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	created, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Board prep",
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, domain.BookingPending, created[0].Status)
	f.notifs.AssertCalled(t, "NotifyBookingCreated",
		mock.Anything, employee.ID, created[0].ID, room.ID, created[0].StartTime, true)
}

func TestCreateBooking_RejectsUnbookableRoom(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	room.Status = domain.RoomMaintenance
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	_, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Sync",
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Zero(t, f.bookings.count())
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	base := CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Sync",
	}

	cases := []struct {
		name   string
		mutate func(r *CreateBookingRequest)
	}{
		{"end before start", func(r *CreateBookingRequest) { r.StartTime, r.EndTime = "10:00", "09:00" }},
		{"zero length", func(r *CreateBookingRequest) { r.EndTime = r.StartTime }},
		{"blank title", func(r *CreateBookingRequest) { r.Title = "   " }},
		{"bad date", func(r *CreateBookingRequest) { r.Date = "05.03.2026" }},
		{"bad clock", func(r *CreateBookingRequest) { r.StartTime = "9am" }},
		{"start in the past", func(r *CreateBookingRequest) { r.Date = "2026-02-27" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := f.svc.CreateBooking(context.Background(), employee, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, f.bookings.count())
}

func TestCreateBooking_OverlapReportsConflict(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	existing := seedBooking(f, room.ID, employee.ID, "2026-03-05", "09:00", "10:30", domain.BookingApproved)

	_, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "10:00",
		EndTime:   "11:00",
		Title:     "Overlap attempt",
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Occurrences, 1)
	require.Len(t, conflict.Occurrences[0].Conflicts, 1)
	assert.Equal(t, existing.ID, conflict.Occurrences[0].Conflicts[0].ID)
	assert.Equal(t, 1, f.bookings.count())
	assert.Empty(t, f.broadcast.events)
}

func TestCreateBooking_TouchingIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	seedBooking(f, room.ID, employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingApproved)

	created, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "10:00",
		EndTime:   "11:00",
		Title:     "Back to back",
	})
	require.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, 2, f.bookings.count())
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	seedBooking(f, room.ID, employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingCancelled)
	seedBooking(f, room.ID, employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingRejected)

	_, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Reclaimed slot",
	})
	require.NoError(t, err)
}

func TestCreateBooking_RecurringExpandsSeries(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	created, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Weekly standup",
		Recurring: &RecurringPatternRequest{
			Frequency: "weekly",
			Interval:  1,
			EndDate:   "2026-03-19",
		},
	})

	require.NoError(t, err)
	require.Len(t, created, 3)
	for i, want := range []string{"2026-03-05", "2026-03-12", "2026-03-19"} {
		assert.Equal(t, want, created[i].BookingDate.Format("2006-01-02"))
		assert.Equal(t, domain.BookingApproved, created[i].Status)
	}
	assert.Equal(t, 3, f.bookings.count())
	assert.Len(t, f.audit.events, 3)
}

func TestCreateBooking_RecurringIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	// Only the middle occurrence collides.
	seedBooking(f, room.ID, approver.ID, "2026-03-12", "09:30", "10:30", domain.BookingApproved)

	_, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Weekly standup",
		Recurring: &RecurringPatternRequest{
			Frequency: "weekly",
			Interval:  1,
			EndDate:   "2026-03-19",
		},
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Occurrences, 1)
	assert.Equal(t, "2026-03-12", conflict.Occurrences[0].Date.Format("2006-01-02"))
	assert.Equal(t, 1, f.bookings.count(), "nothing from the series may be committed")
}

func TestCreateBooking_RecurringValidation(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	_, err := f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Bad pattern",
		Recurring: &RecurringPatternRequest{
			Frequency:  "weekly",
			Interval:   1,
			DaysOfWeek: []string{"montag"},
			EndDate:    "2026-03-19",
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	// End date before the base date expands to nothing.
	_, err = f.svc.CreateBooking(context.Background(), employee, CreateBookingRequest{
		RoomID:    room.ID,
		Date:      "2026-03-05",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Empty series",
		Recurring: &RecurringPatternRequest{
			Frequency: "daily",
			Interval:  1,
			EndDate:   "2026-03-01",
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveBooking_Lifecycle(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingPending)

	_, err := f.svc.ApproveBooking(context.Background(), employee, b.ID, "")
	assert.ErrorIs(t, err, ErrForbidden, "employees cannot decide")

	updated, err := f.svc.ApproveBooking(context.Background(), approver, b.ID, "ok for thursday")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, updated.Status)
	require.NotNil(t, updated.ApproverID)
	assert.Equal(t, approver.ID, *updated.ApproverID)
	require.NotNil(t, updated.DecidedAt)
	assert.Equal(t, "ok for thursday", updated.ApprovalNotes)
	f.notifs.AssertCalled(t, "NotifyBookingApproved", mock.Anything, employee.ID, b.ID)
	assert.Contains(t, f.broadcast.events, "booking_approved")

	// Approving twice is not a silent no-op.
	_, err = f.svc.ApproveBooking(context.Background(), approver, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestRejectBooking_ReasonRules(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingPending)

	_, err := f.svc.RejectBooking(context.Background(), approver, b.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	long := make([]rune, maxReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = f.svc.RejectBooking(context.Background(), approver, b.ID, string(long))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.RejectBooking(context.Background(), employee, b.ID, "mine now")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.RejectBooking(context.Background(), admin, b.ID, "double booked offsite")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, updated.Status)
	assert.Equal(t, "double booked offsite", updated.RejectionReason)
	f.notifs.AssertCalled(t, "NotifyBookingRejected", mock.Anything, employee.ID, b.ID, "double booked offsite")

	// Rejected is terminal.
	_, err = f.svc.ApproveBooking(context.Background(), approver, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	_, err = f.svc.CancelBooking(context.Background(), admin, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestCancelBooking_Authorization(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingApproved)

	other := domain.Actor{ID: uuid.NewString(), Role: domain.RoleEmployee}
	_, err := f.svc.CancelBooking(context.Background(), other, b.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.CancelBooking(context.Background(), employee, b.ID, "meeting moved")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
	assert.Equal(t, "meeting moved", updated.CancellationReason)
	require.NotNil(t, updated.CancelledAt)

	_, err = f.svc.CancelBooking(context.Background(), employee, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestCancelBooking_AdminMayCancelAnyBooking(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingPending)

	updated, err := f.svc.CancelBooking(context.Background(), admin, b.ID, "floor closure")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
}

func TestUpdateBooking_PendingOnly(t *testing.T) {
	f := newFixture(t)
	pending := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingPending)
	approved := seedBooking(f, uuid.NewString(), employee.ID, "2026-03-06", "09:00", "10:00", domain.BookingApproved)

	newTitle := "Renamed"
	updated, err := f.svc.UpdateBooking(context.Background(), employee, pending.ID, UpdateBookingRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = f.svc.UpdateBooking(context.Background(), employee, approved.ID, UpdateBookingRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	other := domain.Actor{ID: uuid.NewString(), Role: domain.RoleEmployee}
	_, err = f.svc.UpdateBooking(context.Background(), other, pending.ID, UpdateBookingRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBooking_TimeChangeRevalidated(t *testing.T) {
	f := newFixture(t)
	roomID := uuid.NewString()
	target := seedBooking(f, roomID, employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingPending)
	seedBooking(f, roomID, approver.ID, "2026-03-05", "11:00", "12:00", domain.BookingApproved)

	// Moving onto the other booking fails and commits nothing.
	start, end := "11:30", "12:30"
	_, err := f.svc.UpdateBooking(context.Background(), employee, target.ID, UpdateBookingRequest{
		StartTime: &start,
		EndTime:   &end,
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	kept, err := f.svc.GetBooking(context.Background(), employee, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, kept.StartTime.Hour())

	// Moving to a free slot succeeds, touching endpoints included.
	start, end = "10:00", "11:00"
	updated, err := f.svc.UpdateBooking(context.Background(), employee, target.ID, UpdateBookingRequest{
		StartTime: &start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StartTime.Hour())
}

func TestGetBooking_RedactsPrivateDetails(t *testing.T) {
	f := newFixture(t)
	participant := uuid.NewString()
	b := f.bookings.seed(domain.RoomBooking{
		RoomID:         uuid.NewString(),
		RequesterID:    employee.ID,
		BookingDate:    time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		StartTime:      time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
		Title:          "Compensation review",
		Purpose:        "Q2 adjustments",
		IsPrivate:      true,
		ParticipantIDs: []string{participant},
		Status:         domain.BookingApproved,
	})

	stranger := domain.Actor{ID: uuid.NewString(), Role: domain.RoleEmployee}
	got, err := f.svc.GetBooking(context.Background(), stranger, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private meeting", got.Title)
	assert.Empty(t, got.Purpose)
	assert.Nil(t, got.ParticipantIDs)

	for _, actor := range []domain.Actor{
		employee,
		approver,
		{ID: participant, Role: domain.RoleEmployee},
	} {
		got, err := f.svc.GetBooking(context.Background(), actor, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Compensation review", got.Title)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetBooking(context.Background(), employee, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	room := activeRoom(false)
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)

	existing := seedBooking(f, room.ID, employee.ID, "2026-03-05", "09:00", "10:00", domain.BookingApproved)

	res, err := f.svc.CheckAvailability(context.Background(), room.ID, "2026-03-05", "09:30", "10:30", "")
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, existing.ID, res.Conflicts[0].ID)

	res, err = f.svc.CheckAvailability(context.Background(), room.ID, "2026-03-05", "10:00", "11:00", "")
	require.NoError(t, err)
	assert.True(t, res.Available)

	// Excluding the booking itself lets reschedule previews pass.
	res, err = f.svc.CheckAvailability(context.Background(), room.ID, "2026-03-05", "09:30", "10:30", existing.ID)
	require.NoError(t, err)
	assert.True(t, res.Available)
}
