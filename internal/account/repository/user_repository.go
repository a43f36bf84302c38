package repository

import (
	"context"
	"errors"

	"video_share_service/internal/account/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound definition no user matched the query
var ErrUserNotFound = errors.New("no user found with given criteria")

// UserRepository definition get user info
type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	CreateUser(ctx context.Context, user *domain.User) error
	FindByUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error)
	UpsertAdmin(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository create a UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		coll: db.Collection("users"),
	}
}

// EnsureIndexes 建立 email 唯一索引
func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) FindByUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error) {
	filter := bson.M{}
	if userQuery.ID != nil {
		filter["_id"] = *userQuery.ID
	}
	if userQuery.Email != nil {
		filter["email"] = *userQuery.Email
	}

	var user domain.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpsertAdmin 種子管理員帳號, 以 email 為鍵冪等寫入
func (r *userRepository) UpsertAdmin(ctx context.Context, user *domain.User) error {
	filter := bson.M{"email": user.Email}
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"password":   user.Password,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
