package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
    tok, err := NewSessionToken("secret", 42, 60)
    require.NoError(t, err)
    assert.NotEmpty(t, tok.Token)
    assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.Exp, 5*time.Second)

    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("secret"), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims, ok := parsed.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.NotNil(t, claims["exp"])
    assert.NotNil(t, claims["iat"])
}

func TestSessionCookie(t *testing.T) {
    tok, err := NewSessionToken("secret", 7, 30)
    require.NoError(t, err)

    c := SessionCookie(tok)
    assert.Equal(t, SessionCookieName, c.Name)
    assert.Equal(t, tok.Token, c.Value)
    assert.Equal(t, "/", c.Path)
    assert.True(t, c.HttpOnly)
    assert.Equal(t, tok.Exp, c.Expires)
}

func TestExpiredSessionCookie(t *testing.T) {
    c := ExpiredSessionCookie()
    assert.Equal(t, SessionCookieName, c.Name)
    assert.Empty(t, c.Value)
    assert.Negative(t, c.MaxAge)
    assert.True(t, c.Expires.Before(time.Now()))
}
