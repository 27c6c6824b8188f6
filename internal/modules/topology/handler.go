package topology

import (
	"errors"
	"net/http"

	"meetspace/internal/domain"
	"meetspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterReadRoutes exposes the topology to every authenticated user.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/floors", h.ListFloors)
	rg.GET("/floors/:id", h.GetFloor)
	rg.GET("/floors/:id/rooms", h.ListFloorRooms)
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
}

// RegisterAdminRoutes exposes topology writes; mount behind AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/floors", h.CreateFloor)
	rg.PUT("/floors/:id", h.UpdateFloor)
	rg.PUT("/floors/:id/deactivate", h.DeactivateFloor)
	rg.POST("/rooms", h.CreateRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.PUT("/rooms/:id/status", h.SetRoomStatus)
}

func (h *Handler) CreateFloor(c *gin.Context) {
	var req CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.CreateFloor(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"floor": f})
}

func (h *Handler) UpdateFloor(c *gin.Context) {
	var req UpdateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.UpdateFloor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"floor": f})
}

func (h *Handler) DeactivateFloor(c *gin.Context) {
	f, err := h.service.DeactivateFloor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"floor": f})
}

func (h *Handler) GetFloor(c *gin.Context) {
	f, roomCount, err := h.service.GetFloor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"floor": f, "room_count": roomCount})
}

func (h *Handler) ListFloors(c *gin.Context) {
	floors, err := h.service.ListFloors(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"floors": floors})
}

func (h *Handler) ListFloorRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) SetRoomStatus(c *gin.Context) {
	var req SetRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
		return
	}

	room, err := h.service.SetRoomStatus(c.Request.Context(), c.Param("id"), domain.RoomStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), c.Query("floor_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid topology request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Floor or room not found")
	case errors.Is(err, ErrDuplicateFloor):
		response.Error(c, http.StatusConflict, "DUPLICATE_FLOOR", "Floor number already exists")
	case errors.Is(err, ErrFloorInactive):
		response.Error(c, http.StatusUnprocessableEntity, "FLOOR_INACTIVE", "Floor is not active")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
