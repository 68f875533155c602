package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret", bcrypt.MinCost)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "wrong"))
    assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestNewAccessToken(t *testing.T) {
    access, err := NewAccessToken("secret", "admin", "ADMIN", 15)
    require.NoError(t, err)
    require.NotEmpty(t, access.Token)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), access.Exp, 5*time.Second)

    tok, err := jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("secret"), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, "admin", claims["sub"])
    assert.Equal(t, "ADMIN", claims["role"])

    // Wrong secret must not validate.
    _, err = jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("other"), nil
    })
    assert.Error(t, err)
}
