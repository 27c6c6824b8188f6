package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"meetspace/internal/domain"
	"meetspace/internal/recurrence"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxReasonLength = 500

type Service struct {
	bookings  BookingRepository
	rooms     RoomRepository
	notifs    NotificationSender
	audit     AuditRecorder
	events    EventBroadcaster
	txTimeout time.Duration

	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	notifs NotificationSender,
	audit AuditRecorder,
	events EventBroadcaster,
	txTimeout time.Duration,
) *Service {
	if txTimeout <= 0 {
		txTimeout = 5 * time.Second
	}
	return &Service{
		bookings:  bookings,
		rooms:     rooms,
		notifs:    notifs,
		audit:     audit,
		events:    events,
		txTimeout: txTimeout,
		now:       time.Now,
	}
}

// CreateBooking expands the (possibly recurring) request into concrete
// occurrences and books all of them or none. The initial status is approved
// unless the room requires approval.
func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) ([]domain.RoomBooking, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	start, err := parseClock(date, req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := parseClock(date, req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrValidation
	}
	if start.Before(s.now().UTC()) {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if !room.Bookable() {
		return nil, ErrRoomUnavailable
	}

	occurrences, err := s.expand(req, date, start, end)
	if err != nil {
		return nil, err
	}

	status := domain.BookingApproved
	if room.RequiresApproval {
		status = domain.BookingPending
	}

	candidates := make([]*domain.RoomBooking, 0, len(occurrences))
	for _, occ := range occurrences {
		candidates = append(candidates, &domain.RoomBooking{
			ID:             uuid.NewString(),
			RoomID:         room.ID,
			RequesterID:    actor.ID,
			BookingDate:    occ.Date,
			StartTime:      occ.Start,
			EndTime:        occ.End,
			Title:          strings.TrimSpace(req.Title),
			Purpose:        req.Purpose,
			IsPrivate:      req.IsPrivate,
			ParticipantIDs: req.ParticipantIDs,
			Status:         status,
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()
	if err := s.bookings.CreateSeries(txCtx, candidates); err != nil {
		return nil, mapStorageError(err)
	}

	created := make([]domain.RoomBooking, 0, len(candidates))
	for _, b := range candidates {
		created = append(created, *b)
	}

	if s.notifs != nil {
		head := created[0]
		_ = s.notifs.NotifyBookingCreated(ctx, head.RequesterID, head.ID, head.RoomID, head.StartTime, status == domain.BookingPending)
	}
	for i := range created {
		s.recordAudit(ctx, actor, "booking.create", &created[i], "", string(status), "")
		s.broadcast("booking_created", &created[i])
	}

	return created, nil
}

func (s *Service) expand(req CreateBookingRequest, date, start, end time.Time) ([]recurrence.Occurrence, error) {
	if req.Recurring == nil {
		return []recurrence.Occurrence{{Date: date, Start: start, End: end}}, nil
	}

	endDate, err := parseDate(req.Recurring.EndDate)
	if err != nil {
		return nil, ErrValidation
	}
	days, ok := parseWeekdays(req.Recurring.DaysOfWeek)
	if !ok {
		return nil, ErrValidation
	}

	occurrences, err := recurrence.Expand(recurrence.Pattern{
		Frequency:  recurrence.Frequency(req.Recurring.Frequency),
		Interval:   req.Recurring.Interval,
		DaysOfWeek: days,
		EndDate:    endDate,
	}, date, start, end)
	if err != nil {
		return nil, ErrValidation
	}
	if len(occurrences) == 0 {
		return nil, ErrValidation
	}
	return occurrences, nil
}

func (s *Service) GetBooking(ctx context.Context, actor domain.Actor, id string) (*domain.RoomBooking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	redactForActor(b, actor)
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.RoomBooking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.ListByRequester(ctx, actor.ID, limit, offset)
}

// UpdateBooking applies partial changes while the booking is still pending.
// A time change is re-validated against the blocking set, excluding the
// booking itself.
func (s *Service) UpdateBooking(ctx context.Context, actor domain.Actor, id string, req UpdateBookingRequest) (*domain.RoomBooking, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	updated, err := s.bookings.UpdateChecked(txCtx, id, func(b *domain.RoomBooking) error {
		if b.RequesterID != actor.ID && !actor.IsAdmin() {
			return ErrForbidden
		}
		if b.Status != domain.BookingPending {
			return ErrInvalidStateTransition
		}

		date := b.BookingDate
		if req.Date != nil {
			d, err := parseDate(*req.Date)
			if err != nil {
				return ErrValidation
			}
			date = d
		}

		start := onDate(date, b.StartTime)
		end := onDate(date, b.EndTime)
		if req.StartTime != nil {
			t, err := parseClock(date, *req.StartTime)
			if err != nil {
				return ErrValidation
			}
			start = t
		}
		if req.EndTime != nil {
			t, err := parseClock(date, *req.EndTime)
			if err != nil {
				return ErrValidation
			}
			end = t
		}
		if !end.After(start) {
			return ErrValidation
		}
		if (req.Date != nil || req.StartTime != nil) && start.Before(s.now().UTC()) {
			return ErrValidation
		}
		b.BookingDate = date
		b.StartTime = start
		b.EndTime = end

		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return ErrValidation
			}
			b.Title = strings.TrimSpace(*req.Title)
		}
		if req.Purpose != nil {
			b.Purpose = *req.Purpose
		}
		if req.IsPrivate != nil {
			b.IsPrivate = *req.IsPrivate
		}
		if req.ParticipantIDs != nil {
			b.ParticipantIDs = *req.ParticipantIDs
		}
		return nil
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	s.recordAudit(ctx, actor, "booking.update", updated, string(updated.Status), string(updated.Status), "")
	s.broadcast("booking_updated", updated)
	return updated, nil
}

// ApproveBooking moves pending to approved. The conflict check runs again
// inside the transaction because the room's blocking set may have changed
// since the request was filed.
func (s *Service) ApproveBooking(ctx context.Context, actor domain.Actor, id string, notes string) (*domain.RoomBooking, error) {
	if !actor.CanDecide() {
		return nil, ErrForbidden
	}

	var from domain.BookingStatus
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	updated, err := s.bookings.UpdateChecked(txCtx, id, func(b *domain.RoomBooking) error {
		from = b.Status
		if !b.Status.CanTransitionTo(domain.BookingApproved) {
			return ErrInvalidStateTransition
		}
		now := s.now().UTC()
		b.Status = domain.BookingApproved
		b.ApproverID = &actor.ID
		b.DecidedAt = &now
		b.ApprovalNotes = notes
		return nil
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingApproved(ctx, updated.RequesterID, updated.ID)
	}
	s.recordAudit(ctx, actor, "booking.approve", updated, string(from), string(updated.Status), notes)
	s.broadcast("booking_approved", updated)
	return updated, nil
}

// RejectBooking moves pending to rejected. The reason is mandatory,
// 1-500 chars after trimming.
func (s *Service) RejectBooking(ctx context.Context, actor domain.Actor, id string, reason string) (*domain.RoomBooking, error) {
	if !actor.CanDecide() {
		return nil, ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" || len([]rune(reason)) > maxReasonLength {
		return nil, ErrValidation
	}

	var from domain.BookingStatus
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	updated, err := s.bookings.UpdateChecked(txCtx, id, func(b *domain.RoomBooking) error {
		from = b.Status
		if !b.Status.CanTransitionTo(domain.BookingRejected) {
			return ErrInvalidStateTransition
		}
		now := s.now().UTC()
		b.Status = domain.BookingRejected
		b.ApproverID = &actor.ID
		b.DecidedAt = &now
		b.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingRejected(ctx, updated.RequesterID, updated.ID, reason)
	}
	s.recordAudit(ctx, actor, "booking.reject", updated, string(from), string(updated.Status), reason)
	s.broadcast("booking_rejected", updated)
	return updated, nil
}

// CancelBooking is allowed to the original requester or an administrator,
// from pending or approved. Irreversible.
func (s *Service) CancelBooking(ctx context.Context, actor domain.Actor, id string, reason string) (*domain.RoomBooking, error) {
	var from domain.BookingStatus
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	updated, err := s.bookings.UpdateChecked(txCtx, id, func(b *domain.RoomBooking) error {
		if b.RequesterID != actor.ID && !actor.IsAdmin() {
			return ErrForbidden
		}
		from = b.Status
		if !b.Status.CanTransitionTo(domain.BookingCancelled) {
			return ErrInvalidStateTransition
		}
		now := s.now().UTC()
		b.Status = domain.BookingCancelled
		b.CancellationReason = strings.TrimSpace(reason)
		b.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, updated.RequesterID, updated.ID, reason)
	}
	s.recordAudit(ctx, actor, "booking.cancel", updated, string(from), string(updated.Status), reason)
	s.broadcast("booking_cancelled", updated)
	return updated, nil
}

// CheckAvailability answers whether [start, end) on the room and date is
// free of blocking bookings, returning the conflicts when it is not.
func (s *Service) CheckAvailability(ctx context.Context, roomID, dateStr, startStr, endStr, excludeID string) (*CheckAvailabilityResult, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	start, err := parseClock(date, startStr)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := parseClock(date, endStr)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, mapStorageError(err)
	}

	conflicts, err := s.bookings.ListConflicts(ctx, roomID, date, start, end, excludeID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return &CheckAvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *Service) recordAudit(ctx context.Context, actor domain.Actor, action string, b *domain.RoomBooking, from, to, detail string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, domain.AuditEvent{
		Action:     action,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
		FromStatus: from,
		ToStatus:   to,
		Detail:     detail,
	})
}

func (s *Service) broadcast(eventType string, b *domain.RoomBooking) {
	if s.events == nil {
		return
	}
	s.events.BroadcastBookingEvent(eventType, b)
}

// redactForActor hides private meeting details from everyone but the
// requester, its participants, and users with the decision capability.
func redactForActor(b *domain.RoomBooking, actor domain.Actor) {
	if !b.IsPrivate || b.RequesterID == actor.ID || actor.CanDecide() {
		return
	}
	for _, p := range b.ParticipantIDs {
		if p == actor.ID {
			return
		}
	}
	b.Title = "Private meeting"
	b.Purpose = ""
	b.ParticipantIDs = nil
}

func onDate(date, clock time.Time) time.Time {
	c := clock.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}

func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
