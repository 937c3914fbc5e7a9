package middleware // reusable HTTP middleware functions

import (
    "net/http"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/utils"
)

// JWTAuth returns an Echo middleware that validates the session token
// carried in the HTTP-only "token" cookie and injects the token's
// subject claim into the request context. The provided secret must
// match the one used when issuing tokens. Handlers behind this
// middleware read the caller identity via `c.Get("user_id")`.
//
// A missing cookie, a bad signature and an expired token all map to
// 401; the handler never sees the request.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(utils.SessionCookieName)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
            }

            // Parse with HS256 only; any other signing method is
            // rejected through the key callback.
            tok, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // sub is the user ID set at login. Numeric claims decode
            // as float64; downstream consumers normalize the type.
            c.Set("user_id", claims["sub"])
            return next(c)
        }
    }
}
