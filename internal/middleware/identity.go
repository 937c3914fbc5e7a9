package middleware

// identity.go holds helpers shared across middleware files for reading
// the authenticated user out of the Echo context. JWTAuth stores the
// subject claim under "user_id"; numeric JWT claims arrive as float64
// so a type switch normalizes the value.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id as a string for
// key construction, or "anon" when the request carries no session.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return strconv.FormatUint(uint64(t), 10)
    case uint64:
        return strconv.FormatUint(t, 10)
    case int64:
        return strconv.FormatInt(t, 10)
    case int:
        return strconv.Itoa(t)
    }
    return "anon"
}
