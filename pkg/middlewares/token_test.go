package middlewares

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	t_token "video_share_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newTestApp(resolve UserResolver, roles ...t_token.RoleType) *fiber.App {
	app := fiber.New()
	g := app.Group("/protected", Authenticate(resolve))
	if len(roles) > 0 {
		g.Use(RequireRoles(roles...))
	}
	g.Get("/ping", func(c *fiber.Ctx) error {
		user, ok := ActingUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": user.ID, "role": user.Role})
	})
	return app
}

func resolveAs(user *AuthUser) UserResolver {
	return func(ctx context.Context, userID string) (*AuthUser, error) {
		if user == nil {
			return nil, errors.New("user not found")
		}
		return user, nil
	}
}

// 測試 Authenticate
func TestAuthenticate(t *testing.T) {
	t_token.SetSecret([]byte("unit-test-secret"))

	signed, err := t_token.GenerateJWT("user-1", "alice", "alice@example.com", t_token.RoleConsumer, "test")
	assert.NoError(t, err)

	t.Run("缺少 Authorization header", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1"}))

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"error":"Missing token"}`, string(body))
	})

	t.Run("非 Bearer scheme", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1"}))

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Basic abc123")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token 無法解析", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1"}))

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Bearer not-a-jwt")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"error":"Invalid token"}`, string(body))
	})

	t.Run("帳號已不存在", func(t *testing.T) {
		app := newTestApp(resolveAs(nil))

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Bearer "+signed)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("有效 token", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1", Role: t_token.RoleConsumer}))

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Bearer "+signed)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"id":"user-1","role":"consumer"}`, string(body))
	})
}

// 測試 RequireRoles
func TestRequireRoles(t *testing.T) {
	t_token.SetSecret([]byte("unit-test-secret"))

	signed, err := t_token.GenerateJWT("user-1", "alice", "alice@example.com", t_token.RoleConsumer, "test")
	assert.NoError(t, err)

	t.Run("角色不足", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1", Role: t_token.RoleConsumer}), t_token.RoleAdmin)

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Bearer "+signed)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"error":"Forbidden"}`, string(body))
	})

	t.Run("角色符合", func(t *testing.T) {
		app := newTestApp(resolveAs(&AuthUser{ID: "user-1", Role: t_token.RoleAdmin}), t_token.RoleAdmin)

		req := httptest.NewRequest("GET", "/protected/ping", nil)
		req.Header.Set(HeaderAuthorization, "Bearer "+signed)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("未經 Authenticate 直接套用", func(t *testing.T) {
		app := fiber.New()
		app.Get("/x", RequireRoles(t_token.RoleAdmin), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
