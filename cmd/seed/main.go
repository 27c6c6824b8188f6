// Seeds a local database with demo floors and rooms so the API can be
// exercised without a provisioning step.
package main

import (
	"fmt"
	"log"
	"os"

	"meetspace/internal/database"
	"meetspace/internal/domain"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "meetspace.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.FloorPlan{},
		&domain.MeetingRoom{},
		&domain.RoomBooking{},
		&domain.AuditEvent{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := database.EnsureBookingIndexes(db); err != nil {
		log.Fatal("Index creation failed:", err)
	}

	// Cleanup old data (bookings first to respect references).
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM audit_events")
	db.Exec("DELETE FROM room_bookings")
	db.Exec("DELETE FROM meeting_rooms")
	db.Exec("DELETE FROM floor_plans")

	log.Println("Creating floors...")
	floors := make([]domain.FloorPlan, 0, 3)
	for i := 1; i <= 3; i++ {
		f := domain.FloorPlan{
			ID:           uuid.NewString(),
			FloorNumber:  i,
			Name:         fmt.Sprintf("Floor %d", i),
			LayoutWidth:  40,
			LayoutHeight: 25,
			IsActive:     true,
		}
		if err := db.Create(&f).Error; err != nil {
			log.Fatal(err)
		}
		floors = append(floors, f)
	}

	log.Println("Creating rooms...")
	rooms := []domain.MeetingRoom{
		{
			FloorID: floors[0].ID, Name: "Huddle 1.01", Capacity: 4,
			RoomType: domain.RoomStandard, Equipment: []string{"whiteboard"},
			PositionX: 2, PositionY: 3,
		},
		{
			FloorID: floors[0].ID, Name: "Huddle 1.02", Capacity: 6,
			RoomType: domain.RoomStandard, Equipment: []string{"whiteboard", "tv"},
			PositionX: 8, PositionY: 3,
		},
		{
			FloorID: floors[1].ID, Name: "Boardroom", Capacity: 16,
			RoomType: domain.RoomConference, RequiresApproval: true,
			Equipment: []string{"projector", "conference-phone"},
			PositionX: 5, PositionY: 10,
		},
		{
			FloorID: floors[1].ID, Name: "Training Lab", Capacity: 24,
			RoomType: domain.RoomTraining, Equipment: []string{"projector", "pcs"},
			PositionX: 20, PositionY: 10,
		},
		{
			FloorID: floors[2].ID, Name: "Executive Suite", Capacity: 8,
			RoomType: domain.RoomVIP, RequiresApproval: true,
			Equipment: []string{"tv", "video-conference"},
			PositionX: 12, PositionY: 6,
		},
	}
	for i := range rooms {
		rooms[i].ID = uuid.NewString()
		rooms[i].Status = domain.RoomActive
		if err := db.Create(&rooms[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Seed complete: %d floors, %d rooms", len(floors), len(rooms))
}
