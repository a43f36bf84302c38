package domain

import (
	"time"

	"video_share_service/pkg/encrypt"
	"video_share_service/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用來表示使用者
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      token.RoleType     `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
}

// PublicUser 對外的使用者投影，永不包含密碼
type PublicUser struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      token.RoleType `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

// IsPasswordMatch 密碼驗證
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// Public project the user for client responses
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserQuery join conditions are used to query users
type UserQuery struct {
	ID    *primitive.ObjectID
	Email *string
}
