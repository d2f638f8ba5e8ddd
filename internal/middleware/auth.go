package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. It returns "" when the header is absent or malformed.
func BearerToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ParseUserClaims validates an HS256 JWT, extracts the user id from the
// "sub" claim (subject claim per RFC 7519) and returns the full claim set
// so callers can run further checks such as a revocation lookup. Extra
// parser options (issuer, audience) are enforced during parsing.
func ParseUserClaims(tokenString, secret string, opts ...jwt.ParserOption) (jwt.MapClaims, uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, 0, err
	}
	if !token.Valid {
		return nil, 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	return claims, uint(userIDVal), nil
}

// ParseUserToken validates a token and returns just the user id.
func ParseUserToken(tokenString, secret string, opts ...jwt.ParserOption) (uint, error) {
	_, userID, err := ParseUserClaims(tokenString, secret, opts...)
	return userID, err
}
