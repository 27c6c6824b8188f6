package booking

import (
	"context"

	"meetspace/internal/domain"
)

// GetAvailability projects the status of every room (optionally one floor)
// for the given date. It is a pure read over the same blocking-status rules
// the conflict detector uses, so the two can never disagree: a room shows
// booked or pending exactly when a conflict check for that instant would
// match the same booking.
//
// The reference instant is the service clock's wall-clock time-of-day
// applied to the queried date, which makes the projection meaningful for
// future dates as well as today.
func (s *Service) GetAvailability(ctx context.Context, dateStr, floorID string) (*AvailabilityReport, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	rooms, err := s.rooms.List(ctx, floorID)
	if err != nil {
		return nil, mapStorageError(err)
	}

	bookings, err := s.bookings.ListBlockingForDate(ctx, date, floorID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	byRoom := make(map[string][]domain.RoomBooking)
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	ref := onDate(date, s.now().UTC())

	report := &AvailabilityReport{
		Date:    dateStr,
		FloorID: floorID,
		Rooms:   make([]RoomAvailability, 0, len(rooms)),
	}
	for _, room := range rooms {
		if room.Status == domain.RoomInactive {
			continue
		}

		entry := RoomAvailability{
			RoomID:   room.ID,
			RoomName: room.Name,
			FloorID:  room.FloorID,
			Status:   RoomSlotAvailable,
		}

		// Maintenance overrides any booking.
		if room.Status == domain.RoomMaintenance {
			entry.Status = RoomSlotMaintenance
			report.Rooms = append(report.Rooms, entry)
			continue
		}

		var approved, pending *domain.RoomBooking
		for i := range byRoom[room.ID] {
			b := &byRoom[room.ID][i]
			if !b.Covers(ref) {
				continue
			}
			switch b.Status {
			case domain.BookingApproved:
				approved = b
			case domain.BookingPending:
				pending = b
			}
		}

		switch {
		case approved != nil:
			entry.Status = RoomSlotBooked
			entry.CurrentBooking = summarize(approved)
		case pending != nil:
			entry.Status = RoomSlotPending
			entry.CurrentBooking = summarize(pending)
		}

		report.Rooms = append(report.Rooms, entry)
	}

	return report, nil
}

func summarize(b *domain.RoomBooking) *BookingSummary {
	title := b.Title
	if b.IsPrivate {
		title = "Private meeting"
	}
	return &BookingSummary{
		ID:        b.ID,
		Title:     title,
		StartTime: b.StartTime.Format(clockLayout),
		EndTime:   b.EndTime.Format(clockLayout),
		Status:    string(b.Status),
	}
}
