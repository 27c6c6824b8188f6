package topology

import (
	"context"
	"testing"

	"meetspace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockFloorRepository struct {
	mock.Mock
}

func (m *MockFloorRepository) Create(ctx context.Context, f *domain.FloorPlan) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFloorRepository) Update(ctx context.Context, f *domain.FloorPlan) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFloorRepository) GetByID(ctx context.Context, id string) (*domain.FloorPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FloorPlan), args.Error(1)
}

func (m *MockFloorRepository) GetByNumber(ctx context.Context, number int) (*domain.FloorPlan, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FloorPlan), args.Error(1)
}

func (m *MockFloorRepository) List(ctx context.Context) ([]domain.FloorPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FloorPlan), args.Error(1)
}

func (m *MockFloorRepository) CountRooms(ctx context.Context, floorID string) (int64, error) {
	args := m.Called(ctx, floorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.MeetingRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.MeetingRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.MeetingRoom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingRoom), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, floorID string) ([]domain.MeetingRoom, error) {
	args := m.Called(ctx, floorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MeetingRoom), args.Error(1)
}

func TestCreateFloor_Success(t *testing.T) {
	floors := new(MockFloorRepository)
	rooms := new(MockRoomRepository)
	svc := NewService(floors, rooms)

	floors.On("GetByNumber", mock.Anything, 3).Return(nil, gorm.ErrRecordNotFound)
	floors.On("Create", mock.Anything, mock.AnythingOfType("*domain.FloorPlan")).Return(nil)

	f, err := svc.CreateFloor(context.Background(), CreateFloorRequest{
		FloorNumber:  3,
		Name:         "  Third floor  ",
		LayoutWidth:  40,
		LayoutHeight: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Third floor", f.Name)
	assert.Equal(t, 3, f.FloorNumber)
	assert.True(t, f.IsActive)
	assert.NotEmpty(t, f.ID)
	floors.AssertExpectations(t)
}

func TestCreateFloor_DuplicateNumber(t *testing.T) {
	floors := new(MockFloorRepository)
	svc := NewService(floors, new(MockRoomRepository))

	floors.On("GetByNumber", mock.Anything, 2).
		Return(&domain.FloorPlan{ID: uuid.NewString(), FloorNumber: 2}, nil)

	_, err := svc.CreateFloor(context.Background(), CreateFloorRequest{FloorNumber: 2, Name: "Second"})
	assert.ErrorIs(t, err, ErrDuplicateFloor)
	floors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFloor_Validation(t *testing.T) {
	svc := NewService(new(MockFloorRepository), new(MockRoomRepository))

	_, err := svc.CreateFloor(context.Background(), CreateFloorRequest{FloorNumber: 0, Name: "Ground"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateFloor(context.Background(), CreateFloorRequest{FloorNumber: 1, Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeactivateFloor(t *testing.T) {
	floors := new(MockFloorRepository)
	svc := NewService(floors, new(MockRoomRepository))

	f := &domain.FloorPlan{ID: uuid.NewString(), FloorNumber: 1, Name: "One", IsActive: true}
	floors.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	floors.On("Update", mock.Anything, mock.AnythingOfType("*domain.FloorPlan")).Return(nil)

	got, err := svc.DeactivateFloor(context.Background(), f.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestGetFloor_IncludesRoomCount(t *testing.T) {
	floors := new(MockFloorRepository)
	svc := NewService(floors, new(MockRoomRepository))

	f := &domain.FloorPlan{ID: uuid.NewString(), FloorNumber: 1, Name: "One", IsActive: true}
	floors.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	floors.On("CountRooms", mock.Anything, f.ID).Return(int64(4), nil)

	got, count, err := svc.GetFloor(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.EqualValues(t, 4, count)
}

func TestCreateRoom_Success(t *testing.T) {
	floors := new(MockFloorRepository)
	rooms := new(MockRoomRepository)
	svc := NewService(floors, rooms)

	floor := &domain.FloorPlan{ID: uuid.NewString(), FloorNumber: 1, Name: "One", IsActive: true}
	floors.On("GetByID", mock.Anything, floor.ID).Return(floor, nil)
	rooms.On("Create", mock.Anything, mock.AnythingOfType("*domain.MeetingRoom")).Return(nil)

	room, err := svc.CreateRoom(context.Background(), CreateRoomRequest{
		FloorID:          floor.ID,
		Name:             "Boardroom",
		Capacity:         12,
		RoomType:         "conference",
		Equipment:        []string{"projector"},
		RequiresApproval: true,
		PositionX:        5,
		PositionY:        7,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomActive, room.Status, "new rooms start active")
	assert.Equal(t, domain.RoomConference, room.RoomType)
	assert.True(t, room.RequiresApproval)
	assert.Equal(t, floor.ID, room.FloorID)
}

func TestCreateRoom_InactiveFloorRefused(t *testing.T) {
	floors := new(MockFloorRepository)
	rooms := new(MockRoomRepository)
	svc := NewService(floors, rooms)

	floor := &domain.FloorPlan{ID: uuid.NewString(), FloorNumber: 1, Name: "One", IsActive: false}
	floors.On("GetByID", mock.Anything, floor.ID).Return(floor, nil)

	_, err := svc.CreateRoom(context.Background(), CreateRoomRequest{
		FloorID:  floor.ID,
		Name:     "Boardroom",
		Capacity: 12,
		RoomType: "conference",
	})
	assert.ErrorIs(t, err, ErrFloorInactive)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRoom_UnknownFloor(t *testing.T) {
	floors := new(MockFloorRepository)
	svc := NewService(floors, new(MockRoomRepository))

	id := uuid.NewString()
	floors.On("GetByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateRoom(context.Background(), CreateRoomRequest{
		FloorID:  id,
		Name:     "Boardroom",
		Capacity: 12,
		RoomType: "conference",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoom_PartialFields(t *testing.T) {
	rooms := new(MockRoomRepository)
	svc := NewService(new(MockFloorRepository), rooms)

	room := &domain.MeetingRoom{
		ID:       uuid.NewString(),
		FloorID:  uuid.NewString(),
		Name:     "Old name",
		Capacity: 4,
		RoomType: domain.RoomStandard,
		Status:   domain.RoomActive,
	}
	rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	rooms.On("Update", mock.Anything, mock.AnythingOfType("*domain.MeetingRoom")).Return(nil)

	capacity := 10
	got, err := svc.UpdateRoom(context.Background(), room.ID, UpdateRoomRequest{Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Capacity)
	assert.Equal(t, "Old name", got.Name)

	zero := 0
	_, err = svc.UpdateRoom(context.Background(), room.ID, UpdateRoomRequest{Capacity: &zero})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetRoomStatus(t *testing.T) {
	rooms := new(MockRoomRepository)
	svc := NewService(new(MockFloorRepository), rooms)

	room := &domain.MeetingRoom{ID: uuid.NewString(), Name: "A", Capacity: 4, Status: domain.RoomActive}
	rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	rooms.On("Update", mock.Anything, mock.AnythingOfType("*domain.MeetingRoom")).Return(nil)

	got, err := svc.SetRoomStatus(context.Background(), room.ID, domain.RoomMaintenance)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, got.Status)
	assert.False(t, got.Bookable())
}
