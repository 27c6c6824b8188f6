package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"meetspace/internal/audit"
	"meetspace/internal/config"
	"meetspace/internal/database"
	"meetspace/internal/domain"
	"meetspace/internal/middleware"
	"meetspace/internal/modules/booking"
	"meetspace/internal/modules/live"
	"meetspace/internal/modules/topology"
	"meetspace/internal/notification"
	jwtsvc "meetspace/internal/pkg/jwt"
	"meetspace/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.FloorPlan{},
			&domain.MeetingRoom{},
			&domain.RoomBooking{},
			&domain.AuditEvent{},
		); err != nil {
			log.Fatal(err)
		}
		if err := database.EnsureBookingIndexes(db); err != nil {
			log.Fatal(err)
		}
	}

	floorRepo := repository.NewFloorRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	notifier := notification.NewLogSender()
	recorder := audit.NewRecorder(db)
	hub := live.NewHub()
	defer hub.Close()

	topologyService := topology.NewService(floorRepo, roomRepo)
	topologyHandler := topology.NewHandler(topologyService)

	bookingService := booking.NewService(bookingRepo, roomRepo, notifier, recorder, hub, cfg.TxTimeout)
	bookingHandler := booking.NewHandler(bookingService)

	liveHandler := live.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			topologyHandler.RegisterReadRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			liveHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				topologyHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on %s (env=%s)", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
