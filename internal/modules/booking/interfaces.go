package booking

import (
	"context"
	"time"

	"meetspace/internal/domain"
)

// BookingRepository is the persistence boundary for bookings. CreateSeries
// and UpdateChecked are atomic: the conflict check and the write happen
// inside one storage transaction.
type BookingRepository interface {
	CreateSeries(ctx context.Context, bookings []*domain.RoomBooking) error
	UpdateChecked(ctx context.Context, id string, mutate func(*domain.RoomBooking) error) (*domain.RoomBooking, error)
	GetByID(ctx context.Context, id string) (*domain.RoomBooking, error)
	ListConflicts(ctx context.Context, roomID string, date time.Time, start, end time.Time, excludeID string) ([]domain.RoomBooking, error)
	ListBlockingForDate(ctx context.Context, date time.Time, floorID string) ([]domain.RoomBooking, error)
	ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]domain.RoomBooking, error)
}

// RoomRepository is the read-side view of the topology this module needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.MeetingRoom, error)
	List(ctx context.Context, floorID string) ([]domain.MeetingRoom, error)
}

// NotificationSender hands lifecycle events to the delivery side channel.
// Calls are fire-and-forget; failures never affect the booking operation.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, requesterID, bookingID, roomID string, start time.Time, pending bool) error
	NotifyBookingApproved(ctx context.Context, requesterID, bookingID string) error
	NotifyBookingRejected(ctx context.Context, requesterID, bookingID, reason string) error
	NotifyBookingCancelled(ctx context.Context, requesterID, bookingID, reason string) error
}

// AuditRecorder appends structured lifecycle events; best-effort.
type AuditRecorder interface {
	Record(ctx context.Context, ev domain.AuditEvent) error
}

// EventBroadcaster pushes booking state changes to connected floor-plan
// clients.
type EventBroadcaster interface {
	BroadcastBookingEvent(eventType string, b *domain.RoomBooking)
}
