package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/pkg/jwt"
)

// Locals key for the merchant id in Fiber.
const LocalMerchantID = "merchant_id"

// AuthMiddleware validates the Bearer JWT and stores the merchant id in
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		merchantID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalMerchantID, merchantID)
		return c.Next()
	}
}

// GetMerchantID returns the merchant id from the context (after the auth
// middleware).
func GetMerchantID(c *fiber.Ctx) string {
	v := c.Locals(LocalMerchantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
