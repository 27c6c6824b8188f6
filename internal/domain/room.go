package domain

import "time"

type RoomType string

const (
	RoomStandard   RoomType = "standard"
	RoomVIP        RoomType = "vip"
	RoomTraining   RoomType = "training"
	RoomConference RoomType = "conference"
)

type RoomStatus string

const (
	RoomActive      RoomStatus = "active"
	RoomMaintenance RoomStatus = "maintenance"
	RoomInactive    RoomStatus = "inactive"
)

// MeetingRoom belongs to exactly one floor. A room in maintenance or
// inactive status never accepts a new booking, regardless of the approval
// flag.
type MeetingRoom struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey"`
	FloorID          string     `json:"floor_id" gorm:"type:uuid;index" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Capacity         int        `json:"capacity" validate:"required,gt=0"`
	RoomType         RoomType   `json:"room_type" validate:"required"`
	Equipment        []string   `json:"equipment,omitempty" gorm:"serializer:json"`
	Status           RoomStatus `json:"status"`
	RequiresApproval bool       `json:"requires_approval"`
	PositionX        int        `json:"position_x"`
	PositionY        int        `json:"position_y"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (MeetingRoom) TableName() string { return "meeting_rooms" }

// Bookable reports whether the room may accept new bookings at all.
func (r *MeetingRoom) Bookable() bool {
	return r.Status == RoomActive
}
