package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lodging-reservation/internal/config"
    "github.com/iliyamo/lodging-reservation/internal/database"
    "github.com/iliyamo/lodging-reservation/internal/handler"
    "github.com/iliyamo/lodging-reservation/internal/middleware"
    "github.com/iliyamo/lodging-reservation/internal/queue"
    "github.com/iliyamo/lodging-reservation/internal/repository"
    "github.com/iliyamo/lodging-reservation/internal/router"
)

func main() {
    // .env is optional; in production everything comes from real env vars
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    bookingRepo := repository.NewBookingRepo(db)
    groupRepo := repository.NewSojournGroupRepo(db)
    lineRepo := repository.NewBookingLineRepo(db)
    modelRepo := repository.NewProductModelRepo(db)
    unitRepo := repository.NewRentalUnitRepo(db)
    consumptionRepo := repository.NewConsumptionRepo(db)
    assignmentRepo := repository.NewAssignmentRepo(db)

    availability := handler.NewAvailabilityHandler(modelRepo, unitRepo)
    generation := handler.NewGenerationHandler(
        bookingRepo, groupRepo, lineRepo, modelRepo, unitRepo, consumptionRepo, assignmentRepo)

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable, caching and rate limiting disabled")
    }
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    limiterMW := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)

    // Background consumer appending generation events to logs/planning.log.
    go func() {
        if err := queue.StartPlanningConsumer(); err != nil {
            log.Printf("planning consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAPI(e, availability, generation, cfg.JWTSecret, cacheMW, limiterMW)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
