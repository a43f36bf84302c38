package handlers

import (
	"video_share_service/internal/account/app"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccountHandler 處理帳號相關的 HTTP 請求
type AccountHandler struct {
	Usecase app.AccountUseCase
}

// NewAccountHandler 建立新的 AccountHandler
func NewAccountHandler(usecase app.AccountUseCase) *AccountHandler {
	return &AccountHandler{Usecase: usecase}
}

// Signup 註冊新用戶
// @Summary Register a new consumer account
// @Description Creates a consumer account and returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} string "user and token"
// @Failure 400 {object} string "missing fields"
// @Failure 409 {object} string "email already exists"
// @Router /api/auth/signup [post]
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	user, token, err := h.Usecase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	logger.Log.Info("signup", zap.String("email", user.Email))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

// Login 用戶登入
// @Summary Log in with email and password
// @Description Verifies credentials and returns a fresh session token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "user and token"
// @Failure 401 {object} string "invalid email or password"
// @Router /api/auth/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	user, token, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	logger.Log.Info("login", zap.String("email", user.Email))
	return c.JSON(fiber.Map{"user": user, "token": token})
}

// Me 取得當前用戶
// @Summary Get the acting user
// @Description Returns the public projection of the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} string "current user"
// @Failure 401 {object} string "missing or invalid token"
// @Router /api/auth/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.Usecase.CurrentUser(c.Context(), actor.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}
