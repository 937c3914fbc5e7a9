package router

import (
    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/handler"
)

// RegisterPost registers the roommate post endpoints under /api/user-post.
// Every route requires a session.  Each user owns at most one post, which
// the handlers and the unique constraint on the posts table both enforce.
func RegisterPost(e *echo.Echo, h *handler.PostHandler, auth echo.MiddlewareFunc, browse ...echo.MiddlewareFunc) {
    g := e.Group("/api/user-post", auth)

    g.POST("/create", h.Create)
    // The shared browse feed excludes the caller's own post and anything
    // deactivated; it is the second hot read path and gets the browse chain.
    g.GET("/all-posts", h.AllPosts, browse...)
    g.GET("/my-post", h.MyPosts)
    g.GET("/get/:id", h.GetOne)
    g.PUT("/update/:id", h.Update)
    g.PUT("/toggle/:id", h.ToggleActive)
    g.DELETE("/delete/:id", h.Delete)
}
