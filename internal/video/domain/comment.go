package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 定義留言模型, 對影片是弱引用, 影片刪除時連帶清除
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CommentWithAuthor is a comment joined with its author's display fields
type CommentWithAuthor struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Text        string             `bson:"text" json:"text"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	AuthorName  string             `bson:"author_name" json:"authorName"`
	AuthorEmail string             `bson:"author_email" json:"authorEmail"`
}

// CommentPage usecase list comments response
type CommentPage struct {
	Comments    []CommentWithAuthor `json:"comments"`
	TotalPages  int64               `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}
