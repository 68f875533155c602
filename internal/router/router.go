package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/classroom-reservation/internal/config"     // cache and rate-limit configuration
    "github.com/iliyamo/classroom-reservation/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/classroom-reservation/internal/middleware" // middleware for JWT authentication, role enforcement, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Login lives under
// /v1/auth and issues the access token; /v1/me echoes the token claims
// back and requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/login", a.Login)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("ADMIN"))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated read endpoints: room and
// reservation browsing plus the three usage reports.  These routes carry
// the Redis response cache and the token-bucket rate limiter; when rdb
// is nil both middlewares pass requests through untouched.
func RegisterPublic(e *echo.Echo, rooms *handler.RoomHandler, reservations *handler.ReservationHandler, reports *handler.ReportHandler, rdb *redis.Client) {
    g := e.Group("/v1",
        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    )

    g.GET("/rooms", rooms.ListRooms)
    g.GET("/rooms/:code", rooms.GetRoom)

    g.GET("/reservations", reservations.ListReservations)
    g.GET("/reservations/:id", reservations.GetReservation)

    g.GET("/reports/top-rooms", reports.TopRooms)
    g.GET("/reports/occupancy", reports.Occupancy)
    g.GET("/reports/distribution", reports.Distribution)
}

// RegisterAdmin registers ADMIN-scoped mutation endpoints under /v1.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, rooms *handler.RoomHandler, reservations *handler.ReservationHandler, jwtSecret string) {
    // Attach middlewares at group construction time for clarity.
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    // ---- Rooms ----
    g.POST("/rooms", rooms.CreateRoom)
    g.PUT("/rooms/:code", rooms.UpdateRoom)
    g.PATCH("/rooms/:code", rooms.UpdateRoom) // allow partial/semantic updates via PATCH as well

    // ---- Reservations ----
    g.POST("/reservations", reservations.CreateReservation)
    g.PATCH("/reservations/:id", reservations.ModifyReservation)
    g.POST("/reservations/:id/cancel", reservations.CancelReservation)
}
