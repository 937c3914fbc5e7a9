package utils // package utils provides helpers for session token creation

import (
    "net/http" // cookie construction
    "time"     // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionCookieName is the cookie the API uses to carry the session
// token. The cookie is HTTP-only so client scripts cannot read it.
const SessionCookieName = "token"

// SessionToken represents a signed JWT session token along with its
// expiry. The Token field contains the JWT string; Exp stores the UTC
// expiration time. The token is delivered to the client in an
// HTTP-only cookie and verified on every authenticated request.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. It takes
// the signing secret, the user ID, and a TTL in minutes. The JWT
// includes standard claims: subject (sub), expiration (exp) and issued
// at (iat).
func NewSessionToken(secret string, userID uint64, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// SessionCookie wraps a session token in the HTTP-only cookie the
// browser client stores. SameSite=Lax matches the single-page client
// calling from its own origin.
func SessionCookie(tok SessionToken) *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    tok.Token,
        Path:     "/",
        Expires:  tok.Exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}

// ExpiredSessionCookie returns a cookie that clears the session on the
// client. Logout is idempotent; clearing an absent cookie is fine.
func ExpiredSessionCookie() *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    "",
        Path:     "/",
        Expires:  time.Unix(0, 0),
        MaxAge:   -1,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}
