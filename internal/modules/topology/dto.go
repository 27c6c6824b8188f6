package topology

type CreateFloorRequest struct {
	FloorNumber  int     `json:"floor_number" binding:"required,gt=0"`
	Name         string  `json:"name" binding:"required"`
	LayoutWidth  int     `json:"layout_width"`
	LayoutHeight int     `json:"layout_height"`
	ManagerID    *string `json:"manager_id,omitempty"`
}

type UpdateFloorRequest struct {
	Name         *string `json:"name,omitempty"`
	LayoutWidth  *int    `json:"layout_width,omitempty"`
	LayoutHeight *int    `json:"layout_height,omitempty"`
	ManagerID    *string `json:"manager_id,omitempty"`
}

type CreateRoomRequest struct {
	FloorID          string   `json:"floor_id" binding:"required,uuid"`
	Name             string   `json:"name" binding:"required"`
	Capacity         int      `json:"capacity" binding:"required,gt=0"`
	RoomType         string   `json:"room_type" binding:"required,oneof=standard vip training conference"`
	Equipment        []string `json:"equipment"`
	RequiresApproval bool     `json:"requires_approval"`
	PositionX        int      `json:"position_x"`
	PositionY        int      `json:"position_y"`
}

type UpdateRoomRequest struct {
	Name             *string   `json:"name,omitempty"`
	Capacity         *int      `json:"capacity,omitempty"`
	RoomType         *string   `json:"room_type,omitempty"`
	Equipment        *[]string `json:"equipment,omitempty"`
	RequiresApproval *bool     `json:"requires_approval,omitempty"`
	PositionX        *int      `json:"position_x,omitempty"`
	PositionY        *int      `json:"position_y,omitempty"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active maintenance inactive"`
}
