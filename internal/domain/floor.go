package domain

import "time"

// FloorPlan is reference data describing one building floor. Floors are
// created and edited by administrators and never hard-deleted: a floor that
// still has rooms on it can only be deactivated.
type FloorPlan struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	FloorNumber  int       `json:"floor_number" gorm:"uniqueIndex" validate:"required,gt=0"`
	Name         string    `json:"name" validate:"required"`
	LayoutWidth  int       `json:"layout_width"`
	LayoutHeight int       `json:"layout_height"`
	IsActive     bool      `json:"is_active"`
	ManagerID    *string   `json:"manager_id,omitempty" gorm:"type:uuid"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (FloorPlan) TableName() string { return "floor_plans" }
