package booking

import (
	"strings"
	"time"

	"meetspace/internal/domain"
)

type RecurringPatternRequest struct {
	Frequency  string   `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Interval   int      `json:"interval" binding:"required,min=1"`
	DaysOfWeek []string `json:"days_of_week,omitempty"`
	EndDate    string   `json:"end_date" binding:"required"`
}

type CreateBookingRequest struct {
	RoomID         string                   `json:"room_id" binding:"required,uuid"`
	Date           string                   `json:"date" binding:"required"`
	StartTime      string                   `json:"start_time" binding:"required"`
	EndTime        string                   `json:"end_time" binding:"required"`
	Title          string                   `json:"title" binding:"required"`
	Purpose        string                   `json:"purpose"`
	IsPrivate      bool                     `json:"is_private"`
	ParticipantIDs []string                 `json:"participant_ids"`
	Recurring      *RecurringPatternRequest `json:"recurring,omitempty"`
}

// UpdateBookingRequest carries partial fields; nil means "leave unchanged".
// Only pending bookings may be updated.
type UpdateBookingRequest struct {
	Date           *string   `json:"date,omitempty"`
	StartTime      *string   `json:"start_time,omitempty"`
	EndTime        *string   `json:"end_time,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Purpose        *string   `json:"purpose,omitempty"`
	IsPrivate      *bool     `json:"is_private,omitempty"`
	ParticipantIDs *[]string `json:"participant_ids,omitempty"`
}

type ApproveRequest struct {
	Notes string `json:"notes"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// RoomAvailabilityStatus is the projection shown on the floor plan.
type RoomAvailabilityStatus string

const (
	RoomSlotAvailable   RoomAvailabilityStatus = "available"
	RoomSlotBooked      RoomAvailabilityStatus = "booked"
	RoomSlotPending     RoomAvailabilityStatus = "pending"
	RoomSlotMaintenance RoomAvailabilityStatus = "maintenance"
)

type BookingSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type RoomAvailability struct {
	RoomID         string                 `json:"room_id"`
	RoomName       string                 `json:"room_name"`
	FloorID        string                 `json:"floor_id"`
	Status         RoomAvailabilityStatus `json:"status"`
	CurrentBooking *BookingSummary        `json:"current_booking,omitempty"`
}

type AvailabilityReport struct {
	Date    string             `json:"date"`
	FloorID string             `json:"floor_id,omitempty"`
	Rooms   []RoomAvailability `json:"rooms"`
}

type CheckAvailabilityResult struct {
	Available bool                 `json:"available"`
	Conflicts []domain.RoomBooking `json:"conflicts,omitempty"`
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseClock resolves a wall-clock "15:04" string onto the given date.
func parseClock(date time.Time, s string) (time.Time, error) {
	c, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(names []string) ([]time.Weekday, bool) {
	out := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, false
		}
		out = append(out, wd)
	}
	return out, true
}
