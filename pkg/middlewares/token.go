package middlewares

import (
	"context"
	"strings"

	"video_share_service/pkg"
	t_token "video_share_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderAuthorization token in header name
	HeaderAuthorization = "Authorization"

	// bearerPrefix scheme expected in the Authorization header
	bearerPrefix = "Bearer "

	// TokenUser get acting user from token, set c.Locals name
	TokenUser = "AuthUser"
	// TokenUserID get user id from token, set c.Locals name
	TokenUserID = "UserID"
	// TokenRole get role from token, set c.Locals name
	TokenRole = "role"
)

// AuthUser is the public projection of the acting user attached to a request
type AuthUser struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  t_token.RoleType `json:"role"`
}

// UserResolver maps a token subject back to a stored user. A nil user with a
// nil error is treated the same as a resolution failure.
type UserResolver func(ctx context.Context, userID string) (*AuthUser, error)

// Authenticate validates the bearer token and loads the acting user
func Authenticate(resolve UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		tokenStr := strings.TrimPrefix(header, bearerPrefix)

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		// 簽發後帳號可能已被刪除，必須重新解析
		user, err := resolve(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(TokenUser, user)
		c.Locals(TokenUserID, user.ID)
		c.Locals(TokenRole, user.Role)

		return c.Next()
	}
}

// RequireRoles passes the request through only when the acting role is in the
// allowed set. Must run after Authenticate.
func RequireRoles(allowed ...t_token.RoleType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(TokenRole).(t_token.RoleType)
		if !ok || !pkg.Contains(allowed, role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}

// ActingUser fetch the authenticated user attached by Authenticate
func ActingUser(c *fiber.Ctx) (*AuthUser, bool) {
	user, ok := c.Locals(TokenUser).(*AuthUser)
	return user, ok
}
