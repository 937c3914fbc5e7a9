package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/yashk-tech/matchmate/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  Signup and
// login do not require a session; logout clears the cookie regardless of
// whether one is present, so none of these routes carry the auth
// middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/api/auth")
    // Register a POST endpoint to handle account creation at /api/auth/signup.
    g.POST("/signup", a.Signup)
    // Register a POST endpoint to handle login at /api/auth/login.  On
    // success the handler sets the session cookie on the response.
    g.POST("/login", a.Login)
    // Logout overwrites the session cookie with an expired one.  It is
    // idempotent and succeeds even without a valid session, so the
    // client can fire it from a plain link.
    g.GET("/logout", a.Logout)
}
