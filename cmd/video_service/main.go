package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	account_app "video_share_service/internal/account/app"
	account_repo "video_share_service/internal/account/repository"
	"video_share_service/internal/api/handlers"
	"video_share_service/internal/api/router"
	video_app "video_share_service/internal/video/app"
	video_repo "video_share_service/internal/video/repository"
	"video_share_service/pkg/config"
	"video_share_service/pkg/database"
	"video_share_service/pkg/encrypt"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/middlewares"
	"video_share_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.VideoService, config.EnvConfig.VideoServiceLogPath)
	cfg := config.LoadConfig[config.VideoService](config.EnvConfig.VideoService, config.EnvConfig.VideoServiceYAMLPath)

	if cfg.Auth.Secret == "" {
		logger.Log.Fatal("auth secret is not configured")
	}
	token.SetSecret([]byte(cfg.Auth.Secret))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. 連線 MongoDB
	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    cfg.Mongo.URI,
		RetryCount:    cfg.Mongo.RetryCount,
		RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
	}, cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongo after retries",
			zap.String("address", fmt.Sprintf("[%s]", cfg.Mongo.URI)),
			zap.Error(err),
		)
	}
	defer mongoDB.Close(context.Background())

	userRepo := account_repo.NewUserRepository(mongoDB.Database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("Unable to ensure user indexes", zap.Error(err))
	}

	// 2. 初始化 MinIO 客戶端
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:   fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:       cfg.MinIO.User,
		Password:   cfg.MinIO.Password,
		BucketName: cfg.MinIO.BucketName,
		UseSSL:     cfg.MinIO.UseSSL,

		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: cfg.MinIO.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to minio after retries",
			zap.String("address", fmt.Sprintf("[%s:%d]", cfg.MinIO.Host, cfg.MinIO.Port)),
			zap.Error(err),
		)
	}

	// 3. 組裝 usecase 與 handler
	videoRepo := video_repo.NewVideoRepo(mongoDB.Database)
	commentRepo := video_repo.NewCommentRepo(mongoDB.Database)

	accountUsecase := account_app.NewAccountUseCase(userRepo, encrypt.HashPassword, nil)
	videoUsecase := video_app.NewVideoUseCase(videoRepo, commentRepo, minioClient,
		video_app.NewFFmpegThumbnailer(cfg.Media.TempDir), cfg.Media.PlaceholderThumbnail, cfg.Media.TempDir)
	commentUsecase := video_app.NewCommentUseCase(commentRepo, videoRepo)
	analyticsUsecase := video_app.NewAnalyticsUseCase(videoRepo, commentRepo)

	accountHandler := handlers.NewAccountHandler(accountUsecase)
	videoHandler := handlers.NewVideoHandler(videoUsecase, analyticsUsecase)
	commentHandler := handlers.NewCommentHandler(commentUsecase)

	resolve := func(ctx context.Context, userID string) (*middlewares.AuthUser, error) {
		user, err := accountUsecase.CurrentUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &middlewares.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}, nil
	}

	// 4. 建立 Fiber 應用
	r := fiber.New(fiber.Config{
		// 上傳上限之外留一點 multipart 開銷
		BodyLimit:   105 << 20,
		ReadTimeout: 5 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.Log.Error("unhandled error", zap.String("path", c.OriginalURL()), zap.Error(err))
			msg := err.Error()
			if config.IsProduction() {
				msg = "internal server error"
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Internal Server Error",
				"message": msg,
			})
		},
	})

	// 添加日志中间件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.VideoServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由
	router.RegisterRoutes(r, accountHandler, videoHandler, commentHandler, resolve)

	// 启动服务器
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
