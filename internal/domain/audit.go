package domain

import "time"

// AuditEvent is an append-only record of a lifecycle transition. Audit has
// no bearing on scheduling correctness; writers must tolerate recording
// failures.
type AuditEvent struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	Action     string    `json:"action" gorm:"index"`
	BookingID  string    `json:"booking_id" gorm:"type:uuid;index"`
	RoomID     string    `json:"room_id" gorm:"type:uuid"`
	ActorID    string    `json:"actor_id" gorm:"type:uuid"`
	ActorRole  string    `json:"actor_role"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Detail     string    `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_events" }
