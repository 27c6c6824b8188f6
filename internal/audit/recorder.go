// Package audit appends structured lifecycle events to the audit_events
// table. Recording is best-effort: scheduling correctness never depends on
// it, and callers ignore recorder failures beyond logging.
package audit

import (
	"context"
	"log"
	"time"

	"meetspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, ev domain.AuditEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		log.Printf("audit_record_failed action=%s booking_id=%s error=%q", ev.Action, ev.BookingID, err)
		return err
	}
	return nil
}
