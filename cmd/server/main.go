package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Load .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/yashk-tech/matchmate/internal/config"     // Internal config loader
    "github.com/yashk-tech/matchmate/internal/database"   // MySQL connection pool
    "github.com/yashk-tech/matchmate/internal/handler"    // HTTP handlers
    "github.com/yashk-tech/matchmate/internal/middleware" // Auth, rate limit and cache middleware
    "github.com/yashk-tech/matchmate/internal/queue"      // RabbitMQ consumer
    "github.com/yashk-tech/matchmate/internal/repository" // Data access layer
    "github.com/yashk-tech/matchmate/internal/router"     // Route registration
)

func main() {
    // .env is optional; real deployments configure through the environment.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    users := repository.NewUserRepo(db)
    posts := repository.NewPostRepo(db)
    requests := repository.NewRequestRepo(db)

    authH := handler.NewAuthHandler(cfg, users)
    userH := handler.NewUserHandler(users, requests)
    postH := handler.NewPostHandler(posts)
    requestH := handler.NewRequestHandler(requests, users)

    e := echo.New()

    // Redis backs both the token bucket and the browse cache.  Both
    // middlewares degrade to pass-through when Redis is unavailable, so a
    // missing instance only costs the protection, never the service.
    rdb := config.NewRedisClient()
    rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    auth := middleware.JWTAuth(cfg.JWTSecret)
    e.Use(rl)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH)
    router.RegisterUser(e, userH, auth, browseCache)
    router.RegisterPost(e, postH, auth, browseCache)
    router.RegisterRequest(e, requestH, auth)

    // The consumer drains connection.accepted events into the activity log.
    // It reconnects on its own; a broker outage never blocks the API.
    go func() {
        if err := queue.StartConnectionConsumer(); err != nil {
            log.Printf("queue consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
