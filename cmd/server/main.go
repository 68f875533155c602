package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads variables from a .env file
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/classroom-reservation/internal/booking"  // Reservation core
    "github.com/iliyamo/classroom-reservation/internal/config"   // Internal config loader
    "github.com/iliyamo/classroom-reservation/internal/database" // MySQL connection pool
    "github.com/iliyamo/classroom-reservation/internal/handler"  // HTTP handlers
    "github.com/iliyamo/classroom-reservation/internal/router"   // Internal router setup
    "github.com/iliyamo/classroom-reservation/internal/storage"  // Persistence backends
)

func main() {
    _ = godotenv.Load() // Load .env when present; real env vars win

    cfg := config.Load() // Load environment config

    // Pick the persistence backend.  The file backend is the default and
    // needs no external services; MySQL is selected via STORAGE_DRIVER.
    var (
        backend storage.Store
        err     error
    )
    switch cfg.StorageDriver {
    case "mysql":
        db, dbErr := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
        if dbErr != nil {
            log.Fatalf("database connection failed: %v", dbErr)
        }
        backend, err = storage.NewMySQLStore(db)
    default:
        backend, err = storage.NewFileStore(cfg.DataDir)
    }
    if err != nil {
        log.Fatalf("storage init failed: %v", err)
    }

    store, err := booking.NewStore(backend, booking.SystemClock{})
    if err != nil {
        log.Fatalf("loading reservation data failed: %v", err)
    }

    rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares degrade to no-ops

    e := echo.New() // Create Echo instance

    authHandler := handler.NewAuthHandler(cfg)
    roomHandler := handler.NewRoomHandler(store)
    reservationHandler := handler.NewReservationHandler(store)
    reportHandler := handler.NewReportHandler(store)

    router.RegisterRoutes(e) // Register application routes
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterPublic(e, roomHandler, reservationHandler, reportHandler, rdb)
    router.RegisterAdmin(e, roomHandler, reservationHandler, cfg.JWTSecret)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
