package booking

import (
	"errors"
	"net/http"
	"strconv"

	"meetspace/internal/domain"
	"meetspace/internal/middleware"
	"meetspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/availability", h.GetAvailability)
	rg.GET("/bookings/check-availability", h.CheckAvailability)
	rg.GET("/bookings/my", h.ListMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	// The service re-checks the capability; the guard just fails fast.
	rg.PUT("/bookings/:id/approve", middleware.ApproverOnly(), h.ApproveBooking)
	rg.PUT("/bookings/:id/reject", middleware.ApproverOnly(), h.RejectBooking)
	rg.PUT("/bookings/:id/cancel", h.CancelBooking)
}

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.GetString("user_id"),
		Role: domain.Role(c.GetString("role")),
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if len(created) == 1 {
		response.Success(c, http.StatusCreated, gin.H{"booking": created[0]})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"bookings": created})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	bookings, err := h.service.ListMyBookings(c.Request.Context(), actorFromContext(c), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ApproveBooking(c *gin.Context) {
	var req ApproveRequest
	// body is optional for approval
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.ApproveBooking(c.Request.Context(), actorFromContext(c), c.Param("id"), req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) RejectBooking(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	b, err := h.service.RejectBooking(c.Request.Context(), actorFromContext(c), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelRequest
	// optional free-text reason
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.CancelBooking(c.Request.Context(), actorFromContext(c), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	report, err := h.service.GetAvailability(c.Request.Context(), c.Query("date"), c.Query("floor_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	result, err := h.service.CheckAvailability(
		c.Request.Context(),
		c.Query("room_id"),
		c.Query("date"),
		c.Query("start"),
		c.Query("end"),
		c.Query("exclude_booking_id"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Room is already booked for the selected time", conflict.Occurrences)
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to perform this action")
	case errors.Is(err, ErrInvalidStateTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE_TRANSITION",
			"Booking state changed; refetch and try again")
	case errors.Is(err, ErrRoomUnavailable):
		response.Error(c, http.StatusUnprocessableEntity, "ROOM_UNAVAILABLE",
			"Room is under maintenance or inactive")
	case errors.Is(err, ErrTransaction):
		response.Error(c, http.StatusServiceUnavailable, "TRANSACTION_ABORTED",
			"Storage transaction aborted; safe to retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
