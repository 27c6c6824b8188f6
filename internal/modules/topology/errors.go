package topology

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("floor or room not found")
	ErrDuplicateFloor = errors.New("floor number already exists")
	ErrFloorInactive  = errors.New("floor is not active")
)
