package router

import (
	"video_share_service/internal/api/handlers"
	"video_share_service/pkg/middlewares"
	"video_share_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 註冊所有路由
// @title Video Share Service API
// @version 1.0
// @description API documentation for Video Share Service
// @BasePath /
func RegisterRoutes(app *fiber.App,
	accountHandler *handlers.AccountHandler,
	videoHandler *handlers.VideoHandler,
	commentHandler *handlers.CommentHandler,
	resolve middlewares.UserResolver,
) {
	app.Get("/health", handlers.HealthCheck)
	app.Post("/debug", middlewares.Authenticate(resolve), middlewares.RequireRoles(token.RoleAdmin), handlers.DebugLogFlag)

	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/signup", accountHandler.Signup)
	authRoutes.Post("/login", accountHandler.Login)

	authRoutes.Use(middlewares.Authenticate(resolve))
	authRoutes.Get("/me", accountHandler.Me)

	videoRoutes := app.Group("/api/videos", middlewares.Authenticate(resolve))
	videoRoutes.Get("/", videoHandler.List)
	// 具名路由要在 /:id 之前註冊
	videoRoutes.Get("/all-analytics", middlewares.RequireRoles(token.RoleAdmin), videoHandler.AllAnalytics)
	videoRoutes.Post("/upload", middlewares.RequireRoles(token.RoleAdmin), videoHandler.Upload)
	videoRoutes.Get("/:id/stats", middlewares.RequireRoles(token.RoleAdmin), videoHandler.Stats)
	videoRoutes.Post("/:id/like", middlewares.RequireRoles(token.RoleConsumer), videoHandler.Like)
	videoRoutes.Get("/:id", videoHandler.Get)
	videoRoutes.Delete("/:id", middlewares.RequireRoles(token.RoleAdmin), videoHandler.Delete)

	commentRoutes := app.Group("/api/comments")
	commentRoutes.Get("/:videoId", commentHandler.List)

	commentRoutes.Use(middlewares.Authenticate(resolve))
	commentRoutes.Post("/", commentHandler.Add)
	commentRoutes.Delete("/:id", commentHandler.Delete)

	// 其餘路徑一律回 404
	app.Use(handlers.NotFoundHandler)
}
