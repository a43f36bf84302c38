package app

import (
	"context"
	"fmt"
	"time"

	"video_share_service/internal/account/domain"
	"video_share_service/internal/account/repository"
	"video_share_service/pkg/config"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountUseCase 這裡封裝了對外提供的應用服務
type AccountUseCase interface {
	Register(ctx context.Context, name, email, password string) (*domain.PublicUser, string, error)
	Login(ctx context.Context, email, password string) (*domain.PublicUser, string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error)
}

// HashFunc 密碼加密, 測試時可替換
type HashFunc func(password string) (string, error)

// SignFunc 簽發 session token, 測試時可替換
type SignFunc func(u *domain.User) (string, error)

type accountUseCase struct {
	userRepo     repository.UserRepository
	hashPassword HashFunc
	signToken    SignFunc
}

// NewAccountUseCase 建立一個新的 AccountUseCase
func NewAccountUseCase(userRepo repository.UserRepository,
	hashPassword HashFunc,
	signToken SignFunc,
) AccountUseCase {
	if signToken == nil {
		signToken = func(u *domain.User) (string, error) {
			return token.GenerateJWT(u.ID.Hex(), u.Name, u.Email, u.Role, config.EnvConfig.VideoService)
		}
	}
	return &accountUseCase{
		userRepo:     userRepo,
		hashPassword: hashPassword,
		signToken:    signToken,
	}
}

// Register create a consumer account and issue a session token
func (a *accountUseCase) Register(ctx context.Context, name, email, password string) (*domain.PublicUser, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", errprocess.BadRequest("name, email and password are required")
	}

	// 檢查 email 是否已存在
	if _, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email}); err == nil {
		return nil, "", errprocess.Conflict("email already exists")
	}

	pw, err := a.hashPassword(password)
	if err != nil {
		return nil, "", errprocess.Internal("failed to hash password", err)
	}

	// 註冊一律是 consumer, 管理員只透過 seed 工具建立
	user := domain.User{
		Name:      name,
		Email:     email,
		Password:  pw,
		Role:      token.RoleConsumer,
		CreatedAt: time.Now(),
	}

	if err := a.userRepo.CreateUser(ctx, &user); err != nil {
		return nil, "", errprocess.Internal("failed to create user", err)
	}

	logger.Log.Info(fmt.Sprintf("usecase Register : %s", user.Email))

	t, err := a.signToken(&user)
	if err != nil {
		return nil, "", errprocess.Internal("failed to sign token", err)
	}

	return user.Public(), t, nil
}

// Login verify credentials and issue a fresh token. Lookup and password
// failures return the same generic message so callers can't probe which
// emails exist.
func (a *accountUseCase) Login(ctx context.Context, email, password string) (*domain.PublicUser, string, error) {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email})
	if err != nil {
		return nil, "", errprocess.Unauthorized("invalid email or password")
	}

	if err = user.IsPasswordMatch(password); err != nil {
		return nil, "", errprocess.Unauthorized("invalid email or password")
	}

	t, err := a.signToken(user)
	if err != nil {
		return nil, "", errprocess.Internal("failed to sign token", err)
	}

	return user.Public(), t, nil
}

// CurrentUser resolve the acting user's projection from the token subject
func (a *accountUseCase) CurrentUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errprocess.NotFound("user not found")
	}

	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &oid})
	if err != nil {
		// 帳號可能在簽發 token 之後被移除
		return nil, errprocess.NotFound("user not found")
	}

	return user.Public(), nil
}
