package middleware

import (
	"errors"
	"strings"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/jwt"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			return response.Forbidden(c, "Unknown role")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)
		c.Locals("role", role)

		return c.Next()
	}
}

// bearerToken reads the access token from the cookie, then the Authorization header
func bearerToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOnly allows every employee role
func StaffOnly() fiber.Handler {
	return RoleMiddleware(
		domain.RoleSalesAgent,
		domain.RoleRelationshipManager,
		domain.RoleCreditAnalyst,
		domain.RoleOperations,
		domain.RoleAdmin,
	)
}

// CustomerOnly allows only CUSTOMER role
func CustomerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleCustomer)
}
