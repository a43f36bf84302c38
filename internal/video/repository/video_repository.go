package repository

import (
	"context"
	"errors"

	"video_share_service/internal/video/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVideoNotFound definition no video matched the id
var ErrVideoNotFound = errors.New("no video found with given id")

// VideoRepo definition get video info
type VideoRepo interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	Find(ctx context.Context, q *domain.VideoQuery) ([]domain.Video, int64, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, videoID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, videoID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindWithCommentCounts(ctx context.Context, q *domain.VideoQuery) ([]domain.VideoWithCommentCount, int64, *domain.OverallStats, error)
}

type videoRepo struct {
	coll *mongo.Collection
}

// NewVideoRepo create VideoRepo
func NewVideoRepo(db *mongo.Database) VideoRepo {
	return &videoRepo{coll: db.Collection("videos")}
}

func (r *videoRepo) Create(ctx context.Context, video *domain.Video) error {
	if video.LikedBy == nil {
		video.LikedBy = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, video)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		video.ID = oid
	}
	return nil
}

// GetByID get video by id
func (r *videoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var v domain.Video
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &v, nil
}

func filterFromQuery(q *domain.VideoQuery) bson.M {
	filter := bson.M{}
	if q.Status != nil {
		filter["status"] = *q.Status
	}
	if q.Tag != nil && *q.Tag != "" {
		filter["tags"] = *q.Tag
	}
	return filter
}

// Find page videos newest-first, returns the page and the filtered total
func (r *videoRepo) Find(ctx context.Context, q *domain.VideoQuery) ([]domain.Video, int64, error) {
	filter := filterFromQuery(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	videos := []domain.Video{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// IncrementViews 送出 $inc, 同時的讀取可能互相覆蓋, 瀏覽數是近似值
func (r *videoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// AddLike add the user to the like-set and bump the counter in one update,
// the filter keeps liked_by membership and likes consistent
func (r *videoRepo) AddLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": videoID, "liked_by": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"liked_by": userID},
		"$inc":      bson.M{"likes": 1},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

// RemoveLike reverse of AddLike
func (r *videoRepo) RemoveLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": videoID, "liked_by": userID}
	update := bson.M{
		"$pull": bson.M{"liked_by": userID},
		"$inc":  bson.M{"likes": -1},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

func (r *videoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// FindWithCommentCounts 一次聚合取得分頁資料, 全域統計與總筆數
func (r *videoRepo) FindWithCommentCounts(ctx context.Context, q *domain.VideoQuery) ([]domain.VideoWithCommentCount, int64, *domain.OverallStats, error) {
	filter := filterFromQuery(q)

	lookup := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "comments"},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "video"},
		{Key: "as", Value: "video_comments"},
	}}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$facet", Value: bson.D{
			{Key: "videos", Value: bson.A{
				bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
				bson.D{{Key: "$skip", Value: int64((q.Page - 1) * q.Limit)}},
				bson.D{{Key: "$limit", Value: int64(q.Limit)}},
				lookup,
				bson.D{{Key: "$addFields", Value: bson.D{
					{Key: "comment_count", Value: bson.D{{Key: "$size", Value: "$video_comments"}}},
				}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "video_comments", Value: 0}}}},
			}},
			// 統計的是過濾後的整個集合, 不是當前頁
			{Key: "summary", Value: bson.A{
				lookup,
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "total_videos", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "total_views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
					{Key: "total_likes", Value: bson.D{{Key: "$sum", Value: "$likes"}}},
					{Key: "total_comments", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$video_comments"}}}}},
				}}},
			}},
			{Key: "total", Value: bson.A{
				bson.D{{Key: "$count", Value: "count"}},
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, nil, err
	}

	var out []struct {
		Videos  []domain.VideoWithCommentCount `bson:"videos"`
		Summary []domain.OverallStats          `bson:"summary"`
		Total   []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, nil, err
	}
	if len(out) == 0 {
		return []domain.VideoWithCommentCount{}, 0, &domain.OverallStats{}, nil
	}

	stats := &domain.OverallStats{}
	if len(out[0].Summary) > 0 {
		*stats = out[0].Summary[0]
	}
	var total int64
	if len(out[0].Total) > 0 {
		total = out[0].Total[0].Count
	}
	return out[0].Videos, total, stats, nil
}
