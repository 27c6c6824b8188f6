package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the pure-Go "sqlite" driver used below.
	_ "modernc.org/sqlite"
)

// Connect opens the storage handle once at process start. PostgreSQL is the
// production backend; any other DSN (a file path or ":memory:") falls back
// to SQLite for local development and tests.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// EnsureBookingIndexes creates the partial unique index that backstops the
// transactional conflict check against exact-duplicate races. It is
// defense-in-depth only: arbitrary-granularity overlap is still caught by
// the locked check inside each booking transaction.
func EnsureBookingIndexes(db *gorm.DB) error {
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_room_bookings_no_exact_dup
ON room_bookings (room_id, booking_date, start_time)
WHERE status IN ('pending', 'approved')
`).Error
}
