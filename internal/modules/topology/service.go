package topology

import (
	"context"
	"errors"
	"strings"

	"meetspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	floors FloorRepository
	rooms  RoomRepository
}

func NewService(floors FloorRepository, rooms RoomRepository) *Service {
	return &Service{floors: floors, rooms: rooms}
}

// -------------------- Floors --------------------

func (s *Service) CreateFloor(ctx context.Context, req CreateFloorRequest) (*domain.FloorPlan, error) {
	if req.FloorNumber <= 0 || strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	if _, err := s.floors.GetByNumber(ctx, req.FloorNumber); err == nil {
		return nil, ErrDuplicateFloor
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &domain.FloorPlan{
		ID:           uuid.NewString(),
		FloorNumber:  req.FloorNumber,
		Name:         strings.TrimSpace(req.Name),
		LayoutWidth:  req.LayoutWidth,
		LayoutHeight: req.LayoutHeight,
		IsActive:     true,
		ManagerID:    req.ManagerID,
	}
	if err := s.floors.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFloor(ctx context.Context, id string, req UpdateFloorRequest) (*domain.FloorPlan, error) {
	f, err := s.floors.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.LayoutWidth != nil {
		f.LayoutWidth = *req.LayoutWidth
	}
	if req.LayoutHeight != nil {
		f.LayoutHeight = *req.LayoutHeight
	}
	if req.ManagerID != nil {
		f.ManagerID = req.ManagerID
	}

	if err := s.floors.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeactivateFloor soft-disables a floor. Floors are never hard-deleted
// while rooms reference them, so this is the only removal operation.
func (s *Service) DeactivateFloor(ctx context.Context, id string) (*domain.FloorPlan, error) {
	f, err := s.floors.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	f.IsActive = false
	if err := s.floors.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFloor returns the floor plus how many rooms sit on it.
func (s *Service) GetFloor(ctx context.Context, id string) (*domain.FloorPlan, int64, error) {
	f, err := s.floors.GetByID(ctx, id)
	if err != nil {
		return nil, 0, mapNotFound(err)
	}
	count, err := s.floors.CountRooms(ctx, f.ID)
	if err != nil {
		return nil, 0, err
	}
	return f, count, nil
}

func (s *Service) ListFloors(ctx context.Context) ([]domain.FloorPlan, error) {
	return s.floors.List(ctx)
}

// -------------------- Rooms --------------------

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.MeetingRoom, error) {
	if req.Capacity <= 0 || strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	floor, err := s.floors.GetByID(ctx, req.FloorID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !floor.IsActive {
		return nil, ErrFloorInactive
	}

	room := &domain.MeetingRoom{
		ID:               uuid.NewString(),
		FloorID:          floor.ID,
		Name:             strings.TrimSpace(req.Name),
		Capacity:         req.Capacity,
		RoomType:         domain.RoomType(req.RoomType),
		Equipment:        req.Equipment,
		Status:           domain.RoomActive,
		RequiresApproval: req.RequiresApproval,
		PositionX:        req.PositionX,
		PositionY:        req.PositionY,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id string, req UpdateRoomRequest) (*domain.MeetingRoom, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.RoomType != nil {
		room.RoomType = domain.RoomType(*req.RoomType)
	}
	if req.Equipment != nil {
		room.Equipment = *req.Equipment
	}
	if req.RequiresApproval != nil {
		room.RequiresApproval = *req.RequiresApproval
	}
	if req.PositionX != nil {
		room.PositionX = *req.PositionX
	}
	if req.PositionY != nil {
		room.PositionY = *req.PositionY
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetRoomStatus flips a room between active, maintenance, and inactive.
// Existing bookings are untouched; the booking module refuses new ones
// while the room is not active.
func (s *Service) SetRoomStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.MeetingRoom, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	room.Status = status
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id string) (*domain.MeetingRoom, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, floorID string) ([]domain.MeetingRoom, error) {
	return s.rooms.List(ctx, floorID)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
