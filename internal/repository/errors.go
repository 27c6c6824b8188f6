package repository

import (
	"errors"
	"fmt"
	"time"

	"meetspace/internal/domain"
)

// ErrTransaction wraps storage-level transaction failures (abort, timeout).
// Nothing was committed, so the whole operation is safe to retry.
var ErrTransaction = errors.New("storage transaction aborted")

// OccurrenceConflict reports every blocking booking that overlaps one
// candidate occurrence.
type OccurrenceConflict struct {
	Date      time.Time            `json:"date"`
	Start     time.Time            `json:"start"`
	End       time.Time            `json:"end"`
	Conflicts []domain.RoomBooking `json:"conflicts"`
}

// ConflictError carries the full diagnostic list of overlaps so callers can
// suggest alternate times. It is raised before anything is committed: a
// series either books every occurrence or none.
type ConflictError struct {
	Occurrences []OccurrenceConflict
}

func (e *ConflictError) Error() string {
	n := 0
	for _, occ := range e.Occurrences {
		n += len(occ.Conflicts)
	}
	return fmt.Sprintf("booking conflict: %d occurrence(s) overlap %d existing booking(s)", len(e.Occurrences), n)
}
