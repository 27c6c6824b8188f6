package repository

import (
	"context"

	"meetspace/internal/domain"

	"gorm.io/gorm"
)

type FloorRepository struct {
	db *gorm.DB
}

func NewFloorRepository(db *gorm.DB) *FloorRepository {
	return &FloorRepository{db: db}
}

func (r *FloorRepository) Create(ctx context.Context, f *domain.FloorPlan) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FloorRepository) Update(ctx context.Context, f *domain.FloorPlan) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FloorRepository) GetByID(ctx context.Context, id string) (*domain.FloorPlan, error) {
	var f domain.FloorPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FloorRepository) GetByNumber(ctx context.Context, number int) (*domain.FloorPlan, error) {
	var f domain.FloorPlan
	if err := r.db.WithContext(ctx).Where("floor_number = ?", number).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FloorRepository) List(ctx context.Context) ([]domain.FloorPlan, error) {
	var floors []domain.FloorPlan
	if err := r.db.WithContext(ctx).Order("floor_number ASC").Find(&floors).Error; err != nil {
		return nil, err
	}
	return floors, nil
}

// CountRooms reports how many rooms still reference the floor. A floor with
// rooms may only be deactivated, never removed.
func (r *FloorRepository) CountRooms(ctx context.Context, floorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.MeetingRoom{}).
		Where("floor_id = ?", floorID).
		Count(&n).Error
	return n, err
}
