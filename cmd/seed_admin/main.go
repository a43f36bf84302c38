package main

import (
	"context"
	"fmt"
	"time"

	"video_share_service/internal/account/domain"
	"video_share_service/internal/account/repository"
	"video_share_service/pkg/config"
	"video_share_service/pkg/database"
	"video_share_service/pkg/encrypt"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/token"

	"go.uber.org/zap"
)

// 管理員不走註冊流程, 由這個工具以環境變數提供的憑證建立.
// 重跑只會更新既有帳號, 不會產生重複.
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.VideoService, config.EnvConfig.VideoServiceLogPath)
	cfg := config.LoadConfig[config.VideoService](config.EnvConfig.VideoService, config.EnvConfig.VideoServiceYAMLPath)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Log.Fatal("admin email and password must be provided via environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	userRepo := repository.NewUserRepository(mongoDB.Database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("Unable to ensure user indexes", zap.Error(err))
	}

	hashed, err := encrypt.HashPassword(cfg.Admin.Password)
	if err != nil {
		logger.Log.Fatal("Unable to hash admin password", zap.Error(err))
	}

	name := cfg.Admin.Name
	if name == "" {
		name = "admin"
	}

	admin := domain.User{
		Name:      name,
		Email:     cfg.Admin.Email,
		Password:  hashed,
		Role:      token.RoleAdmin,
		CreatedAt: time.Now(),
	}

	if err := userRepo.UpsertAdmin(ctx, &admin); err != nil {
		logger.Log.Fatal("Unable to seed admin account", zap.Error(err))
	}

	logger.Log.Info("admin account seeded", zap.String("email", admin.Email))
}
