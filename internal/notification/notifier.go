// Package notification is the fire-and-forget side channel for booking
// lifecycle events. Delivery (email, push) is owned by an external service;
// this process only hands events over and never lets a delivery failure
// affect a booking operation.
package notification

import (
	"context"
	"log"
	"time"
)

type Sender interface {
	NotifyBookingCreated(ctx context.Context, requesterID, bookingID, roomID string, start time.Time, pending bool) error
	NotifyBookingApproved(ctx context.Context, requesterID, bookingID string) error
	NotifyBookingRejected(ctx context.Context, requesterID, bookingID, reason string) error
	NotifyBookingCancelled(ctx context.Context, requesterID, bookingID, reason string) error
}

// LogSender writes events to the process log. It stands in for the real
// delivery service in development and tests.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) NotifyBookingCreated(_ context.Context, requesterID, bookingID, roomID string, start time.Time, pending bool) error {
	log.Printf("notify event=booking_created requester=%s booking=%s room=%s start=%s pending=%t",
		requesterID, bookingID, roomID, start.Format(time.RFC3339), pending)
	return nil
}

func (s *LogSender) NotifyBookingApproved(_ context.Context, requesterID, bookingID string) error {
	log.Printf("notify event=booking_approved requester=%s booking=%s", requesterID, bookingID)
	return nil
}

func (s *LogSender) NotifyBookingRejected(_ context.Context, requesterID, bookingID, reason string) error {
	log.Printf("notify event=booking_rejected requester=%s booking=%s reason=%q", requesterID, bookingID, reason)
	return nil
}

func (s *LogSender) NotifyBookingCancelled(_ context.Context, requesterID, bookingID, reason string) error {
	log.Printf("notify event=booking_cancelled requester=%s booking=%s reason=%q", requesterID, bookingID, reason)
	return nil
}
