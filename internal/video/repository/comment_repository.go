package repository

import (
	"context"
	"errors"

	"video_share_service/internal/video/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCommentNotFound definition no comment matched the id
var ErrCommentNotFound = errors.New("no comment found with given id")

// CommentRepo definition get comment info
type CommentRepo interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	// FindByVideo join author display fields, newest-first. limit <= 0 取全部
	FindByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int) ([]domain.CommentWithAuthor, int64, error)
	CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
}

type commentRepo struct {
	coll *mongo.Collection
}

// NewCommentRepo create CommentRepo
func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepo{coll: db.Collection("comments")}
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	res, err := r.coll.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByVideo 以 $lookup 取出留言作者的顯示欄位
func (r *commentRepo) FindByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int) ([]domain.CommentWithAuthor, int64, error) {
	filter := bson.M{"video": videoID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
			bson.D{{Key: "$limit", Value: int64(limit)}},
		)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "text", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "author_name", Value: "$author.name"},
			{Key: "author_email", Value: "$author.email"},
		}}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}

	comments := []domain.CommentWithAuthor{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepo) CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"video": videoID})
}

func (r *commentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// DeleteByVideo 影片刪除時連帶清除其所有留言
func (r *commentRepo) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"video": videoID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
