package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/config"
	"github.com/iliyamo/hotel-table-reservation/internal/database"
	"github.com/iliyamo/hotel-table-reservation/internal/handler"
	"github.com/iliyamo/hotel-table-reservation/internal/middleware"
	"github.com/iliyamo/hotel-table-reservation/internal/queue"
	"github.com/iliyamo/hotel-table-reservation/internal/repository"
	"github.com/iliyamo/hotel-table-reservation/internal/router"
	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting, the catalog response cache and OTP
	// codes. A nil client disables all three.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting, caching and otp login disabled")
	}

	hotels := repository.NewHotelRepo(db)
	floors := repository.NewFloorRepo(db)
	tables := repository.NewTableRepo(db)
	seats := repository.NewSeatRepo(db)
	reservations := repository.NewReservationRepo(db)
	cancellations := repository.NewCancellationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	store := repository.NewStore(db, seats, reservations, cancellations)
	coordinator := service.NewCoordinator(store)
	otp := service.NewOTPStore(rdb, time.Duration(cfg.OTPTTLMin)*time.Minute)

	authHandler := handler.NewAuthHandler(cfg, users, tokens, otp)
	hotelHandler := handler.NewHotelHandler(hotels, floors, tables, seats)
	reservationHandler := handler.NewReservationHandler(coordinator, reservations, cancellations, hotels, floors)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, hotelHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
	router.RegisterStaff(e, reservationHandler, hotelHandler, cfg.JWTSecret)

	// The consumer keeps its own connection and reconnects with
	// backoff; a broker outage never blocks the API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
