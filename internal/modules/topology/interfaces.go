package topology

import (
	"context"

	"meetspace/internal/domain"
)

type FloorRepository interface {
	Create(ctx context.Context, f *domain.FloorPlan) error
	Update(ctx context.Context, f *domain.FloorPlan) error
	GetByID(ctx context.Context, id string) (*domain.FloorPlan, error)
	GetByNumber(ctx context.Context, number int) (*domain.FloorPlan, error)
	List(ctx context.Context) ([]domain.FloorPlan, error)
	CountRooms(ctx context.Context, floorID string) (int64, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.MeetingRoom) error
	Update(ctx context.Context, room *domain.MeetingRoom) error
	GetByID(ctx context.Context, id string) (*domain.MeetingRoom, error)
	List(ctx context.Context, floorID string) ([]domain.MeetingRoom, error)
}
