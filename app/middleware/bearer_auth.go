// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/gofiber/fiber/v3"
)

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}

// BearerToken only lets through requests carrying "Authorization: Bearer <token>"
// with the configured operator token.
func BearerToken(token string) fiber.Handler {
	expected := []byte(token)
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required", "MISSING_AUTHORIZATION_HEADER")
		}

		// fasthttp trims trailing whitespace, so "Bearer " arrives as "Bearer"
		authHeader = strings.TrimSpace(authHeader)
		if authHeader == "Bearer" {
			return unauthorized(c, "Access token is required", "MISSING_ACCESS_TOKEN")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT")
		}

		provided := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			return unauthorized(c, "Invalid access token", "INVALID_ACCESS_TOKEN")
		}

		return c.Next()
	}
}
