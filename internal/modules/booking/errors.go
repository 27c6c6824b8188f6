package booking

import (
	"errors"

	"meetspace/internal/repository"
)

var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("booking not found")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStateTransition = errors.New("invalid booking state transition")
	ErrRoomUnavailable        = errors.New("room does not accept bookings")
)

// ConflictError is raised by the repository when a blocking booking overlaps
// a candidate interval; it carries every conflicting booking for display.
type ConflictError = repository.ConflictError

// ErrTransaction marks a storage transaction that aborted or timed out.
// Nothing was committed; the caller may retry the whole operation.
var ErrTransaction = repository.ErrTransaction
