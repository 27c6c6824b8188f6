package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetspace/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	RoomID             string     `gorm:"column:room_id"`
	RequesterID        string     `gorm:"column:requester_id"`
	BookingDate        time.Time  `gorm:"column:booking_date"`
	StartTime          time.Time  `gorm:"column:start_time"`
	EndTime            time.Time  `gorm:"column:end_time"`
	Title              string     `gorm:"column:title"`
	Purpose            string     `gorm:"column:purpose"`
	IsPrivate          bool       `gorm:"column:is_private"`
	Participants       string     `gorm:"column:participant_ids"`
	Status             string     `gorm:"column:status"`
	ApproverID         *string    `gorm:"column:approver_id"`
	DecidedAt          *time.Time `gorm:"column:decided_at"`
	ApprovalNotes      string     `gorm:"column:approval_notes"`
	RejectionReason    string     `gorm:"column:rejection_reason"`
	CancellationReason string     `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "room_bookings" }

func toDomainBooking(m bookingModel) *domain.RoomBooking {
	var participants []string
	if m.Participants != "" {
		_ = json.Unmarshal([]byte(m.Participants), &participants)
	}

	return &domain.RoomBooking{
		ID:                 m.ID,
		RoomID:             m.RoomID,
		RequesterID:        m.RequesterID,
		BookingDate:        m.BookingDate,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Title:              m.Title,
		Purpose:            m.Purpose,
		IsPrivate:          m.IsPrivate,
		ParticipantIDs:     participants,
		Status:             domain.BookingStatus(m.Status),
		ApproverID:         m.ApproverID,
		DecidedAt:          m.DecidedAt,
		ApprovalNotes:      m.ApprovalNotes,
		RejectionReason:    m.RejectionReason,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.RoomBooking) bookingModel {
	var participants string
	if len(b.ParticipantIDs) > 0 {
		raw, _ := json.Marshal(b.ParticipantIDs)
		participants = string(raw)
	}

	return bookingModel{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		RequesterID:        b.RequesterID,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Title:              b.Title,
		Purpose:            b.Purpose,
		IsPrivate:          b.IsPrivate,
		Participants:       participants,
		Status:             string(b.Status),
		ApproverID:         b.ApproverID,
		DecidedAt:          b.DecidedAt,
		ApprovalNotes:      b.ApprovalNotes,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// blockingStatuses are the only statuses that hold a time slot.
var blockingStatuses = []string{string(domain.BookingPending), string(domain.BookingApproved)}

// lockBlockingSet adds SELECT ... FOR UPDATE on PostgreSQL so the conflict
// check and the following write appear atomic to concurrent transactions on
// the same room. SQLite serializes writers on its own and rejects the
// FOR UPDATE syntax, so the clause is skipped there.
func (r *BookingRepository) lockBlockingSet(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// listConflicts returns every blocking booking on the room and date whose
// half-open interval overlaps [start, end). Touching endpoints do not
// conflict.
func (r *BookingRepository) listConflicts(tx *gorm.DB, roomID string, date time.Time, start, end time.Time, excludeID string, lock bool) ([]domain.RoomBooking, error) {
	q := tx.
		Where("room_id = ? AND booking_date = ?", roomID, date).
		Where("status IN ?", blockingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if lock {
		q = r.lockBlockingSet(q)
	}

	var rows []bookingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.RoomBooking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListConflicts is the read-path variant used by availability checks; it
// takes no locks.
func (r *BookingRepository) ListConflicts(ctx context.Context, roomID string, date time.Time, start, end time.Time, excludeID string) ([]domain.RoomBooking, error) {
	return r.listConflicts(r.db.WithContext(ctx), roomID, date, start, end, excludeID, false)
}

// CreateSeries inserts every booking or none. Each candidate is conflict
// checked against the locked blocking set inside one transaction; the first
// failing run still gathers every conflicting occurrence so the caller can
// report all of them.
func (r *BookingRepository) CreateSeries(ctx context.Context, bookings []*domain.RoomBooking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var failed []OccurrenceConflict
		for _, b := range bookings {
			conflicts, err := r.listConflicts(tx, b.RoomID, b.BookingDate, b.StartTime, b.EndTime, "", true)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				failed = append(failed, OccurrenceConflict{
					Date:      b.BookingDate,
					Start:     b.StartTime,
					End:       b.EndTime,
					Conflicts: conflicts,
				})
			}
		}
		if len(failed) > 0 {
			return &ConflictError{Occurrences: failed}
		}

		for _, b := range bookings {
			m := toBookingModel(b)
			if err := tx.Create(&m).Error; err != nil {
				return mapUniqueViolation(err, b)
			}
			*b = *toDomainBooking(m)
		}
		return nil
	})
	return wrapTxError(err)
}

// UpdateChecked loads the booking under lock, lets mutate apply the
// lifecycle transition, and re-runs the conflict check (excluding the
// booking itself) whenever the resulting status still blocks. Everything
// happens inside one transaction so a stale client cannot slip a transition
// past a concurrent one.
func (r *BookingRepository) UpdateChecked(ctx context.Context, id string, mutate func(*domain.RoomBooking) error) (*domain.RoomBooking, error) {
	var updated *domain.RoomBooking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := r.lockBlockingSet(tx).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}

		b := toDomainBooking(m)
		if err := mutate(b); err != nil {
			return err
		}

		if b.Status.Blocking() {
			conflicts, err := r.listConflicts(tx, b.RoomID, b.BookingDate, b.StartTime, b.EndTime, b.ID, true)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Occurrences: []OccurrenceConflict{{
					Date:      b.BookingDate,
					Start:     b.StartTime,
					End:       b.EndTime,
					Conflicts: conflicts,
				}}}
			}
		}

		nm := toBookingModel(b)
		if err := tx.Save(&nm).Error; err != nil {
			return err
		}
		updated = toDomainBooking(nm)
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}
	return updated, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.RoomBooking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// ListBlockingForDate returns every pending or approved booking on the date,
// optionally restricted to rooms on one floor. Feeds the availability
// projection.
func (r *BookingRepository) ListBlockingForDate(ctx context.Context, date time.Time, floorID string) ([]domain.RoomBooking, error) {
	q := r.db.WithContext(ctx).
		Table("room_bookings").
		Where("room_bookings.booking_date = ?", date).
		Where("room_bookings.status IN ?", blockingStatuses).
		Order("room_bookings.start_time ASC")
	if floorID != "" {
		q = q.Joins("JOIN meeting_rooms ON meeting_rooms.id = room_bookings.room_id").
			Where("meeting_rooms.floor_id = ?", floorID)
	}

	var rows []bookingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RoomBooking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]domain.RoomBooking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("booking_date DESC, start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.RoomBooking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// mapUniqueViolation turns the defense-in-depth unique index on
// (room_id, booking_date, start_time) into a conflict instead of a bare
// driver error. The transactional check above remains the real guard; the
// index only catches exact duplicates that race past it.
func mapUniqueViolation(err error, b *domain.RoomBooking) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &ConflictError{Occurrences: []OccurrenceConflict{{
			Date:  b.BookingDate,
			Start: b.StartTime,
			End:   b.EndTime,
		}}}
	}
	return err
}

func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTransaction, err)
	}
	return err
}
