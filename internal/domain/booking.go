package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Blocking reports whether a booking in this status participates in overlap
// checks. Only pending and approved bookings hold their time slot.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingApproved
}

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingRejected || s == BookingCancelled
}

// CanTransitionTo is the single authority on legal lifecycle transitions.
// Self-transitions are illegal so stale clients always get an error back
// instead of a silent no-op.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingRejected || next == BookingCancelled
	case BookingApproved:
		return next == BookingCancelled
	case BookingRejected, BookingCancelled:
		return false
	}
	return false
}

// RoomBooking is one reservation of a meeting room for a [StartTime, EndTime)
// interval on a single calendar day. BookingDate is the day at midnight UTC;
// StartTime and EndTime carry the same date.
type RoomBooking struct {
	ID             string        `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID         string        `json:"room_id" gorm:"type:uuid;index:idx_bookings_room_date" validate:"required"`
	RequesterID    string        `json:"requester_id" gorm:"type:uuid;index" validate:"required"`
	BookingDate    time.Time     `json:"booking_date" gorm:"index:idx_bookings_room_date"`
	StartTime      time.Time     `json:"start_time" validate:"required"`
	EndTime        time.Time     `json:"end_time" validate:"required"`
	Title          string        `json:"title" validate:"required"`
	Purpose        string        `json:"purpose,omitempty"`
	IsPrivate      bool          `json:"is_private"`
	ParticipantIDs []string      `json:"participant_ids,omitempty" gorm:"serializer:json"`
	Status         BookingStatus `json:"status" gorm:"index"`

	ApproverID      *string    `json:"approver_id,omitempty" gorm:"type:uuid"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	ApprovalNotes   string     `json:"approval_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *MeetingRoom `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (RoomBooking) TableName() string { return "room_bookings" }

// Covers reports whether the instant t falls inside the booking's half-open
// interval.
func (b *RoomBooking) Covers(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// Overlaps is the half-open interval test shared by every conflict check:
// touching endpoints (10:00-11:00 after 09:00-10:00) do not overlap.
func (b *RoomBooking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}
