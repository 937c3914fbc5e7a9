package router

import (
    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/handler"
)

// RegisterUser registers user browsing and profile endpoints under
// /api/user.  All routes require a valid session cookie; the extra
// middlewares (rate limiting, caching) are supplied by the caller so the
// wiring stays in main.
func RegisterUser(e *echo.Echo, h *handler.UserHandler, auth echo.MiddlewareFunc, browse ...echo.MiddlewareFunc) {
    g := e.Group("/api/user", auth)

    // Listing every other user is the discovery surface of the app and the
    // hottest read path, so it takes the browse middleware chain.
    g.GET("/all-users", h.AllUsers, browse...)
    // Viewing a single profile is personalised per caller (phone gating),
    // so it bypasses the shared cache.
    g.GET("/user-profile/:id", h.ViewProfile)
    // Profile updates always target the session user.  The :id variant is
    // kept for clients that still send it; the handler ignores the value.
    g.PUT("/profile", h.UpdateProfile)
    g.PUT("/profile/:id", h.UpdateProfile)
}
