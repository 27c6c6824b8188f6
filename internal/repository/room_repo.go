package repository

import (
	"context"

	"meetspace/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.MeetingRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.MeetingRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.MeetingRoom, error) {
	var room domain.MeetingRoom
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms, optionally restricted to one floor. Inactive rooms are
// included; callers decide whether to surface them.
func (r *RoomRepository) List(ctx context.Context, floorID string) ([]domain.MeetingRoom, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if floorID != "" {
		q = q.Where("floor_id = ?", floorID)
	}

	var rooms []domain.MeetingRoom
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
