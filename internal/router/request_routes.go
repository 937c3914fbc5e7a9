package router

import (
    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/handler"
)

// RegisterRequest registers the connection-request endpoints under
// /api/request.  All routes require a session; per-request authorization
// (receiver-only updates and deletes) lives in the handlers.
func RegisterRequest(e *echo.Echo, h *handler.RequestHandler, auth echo.MiddlewareFunc) {
    g := e.Group("/api/request", auth)

    g.POST("/send/:receiverId", h.Send)
    g.PUT("/update/:requestId", h.UpdateStatus)
    g.GET("/status/:receiverId", h.Status)
    g.GET("/accepted", h.Accepted)
    // "/sent" returns both directions partitioned, matching what the
    // client renders on its requests page.
    g.GET("/sent", h.Mine)
    g.GET("/received", h.Received)
    g.DELETE("/delete/:requestId", h.Delete)
}
