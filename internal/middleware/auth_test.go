package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", BearerToken("Bearer abc123"))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("abc123"))
	assert.Equal(t, "", BearerToken("Basic abc123"))
	assert.Equal(t, "", BearerToken("Bearer abc 123"))
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseUserToken(t *testing.T) {
	secret := "test_secret"

	t.Run("Valid", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		userID, err := ParseUserToken(tokenString, secret)
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		tokenString := signTestToken(t, "other_secret", jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := ParseUserToken(tokenString, secret)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, err := ParseUserToken(tokenString, secret)
		assert.Error(t, err)
	})

	t.Run("Non Numeric Subject", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "not-a-number",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := ParseUserToken(tokenString, secret)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseUserToken("not.a.token", secret)
		assert.Error(t, err)
	})
}

func TestParseUserClaims(t *testing.T) {
	secret := "test_secret"

	t.Run("Returns Claims", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"jti": "token-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		claims, userID, err := ParseUserClaims(tokenString, secret)
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
		assert.Equal(t, "token-1", claims["jti"])
	})

	t.Run("Enforces Issuer", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"iss": "someone-else",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, _, err := ParseUserClaims(tokenString, secret, jwt.WithIssuer("ripple-api"))
		assert.Error(t, err)
	})

	t.Run("Enforces Audience", func(t *testing.T) {
		tokenString := signTestToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"iss": "ripple-api",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, _, err := ParseUserClaims(tokenString, secret,
			jwt.WithIssuer("ripple-api"), jwt.WithAudience("ripple-clients"))
		assert.Error(t, err)
	})
}
