package app

import (
	"context"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsUseCase admin reporting over the video corpus
type AnalyticsUseCase interface {
	VideoStats(ctx context.Context, videoID string) (*domain.VideoStats, error)
	VideoAnalytics(ctx context.Context, q domain.VideoQuery) (*domain.AnalyticsPage, error)
}

type analyticsUseCase struct {
	videoRepo   repository.VideoRepo
	commentRepo repository.CommentRepo
}

// NewAnalyticsUseCase 建立一個新的 AnalyticsUseCase
func NewAnalyticsUseCase(videoRepo repository.VideoRepo, commentRepo repository.CommentRepo) AnalyticsUseCase {
	return &analyticsUseCase{videoRepo: videoRepo, commentRepo: commentRepo}
}

// VideoStats one video with its comment count and comments. Does not count a view.
func (u *analyticsUseCase) VideoStats(ctx context.Context, videoID string) (*domain.VideoStats, error) {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, errprocess.BadRequest("invalid video id")
	}

	video, err := u.videoRepo.GetByID(ctx, vid)
	if err != nil {
		if err == repository.ErrVideoNotFound {
			return nil, errprocess.NotFound("video not found")
		}
		return nil, errprocess.Internal("failed to load video", err)
	}

	comments, total, err := u.commentRepo.FindByVideo(ctx, vid, 0, 0)
	if err != nil {
		return nil, errprocess.Internal("failed to load comments", err)
	}

	return &domain.VideoStats{
		Video:        video,
		CommentCount: total,
		Comments:     comments,
	}, nil
}

// VideoAnalytics paged videos with comment counts plus stats over the whole
// filtered set, all in a single aggregation round trip
func (u *analyticsUseCase) VideoAnalytics(ctx context.Context, q domain.VideoQuery) (*domain.AnalyticsPage, error) {
	q.Normalize()
	if q.Status != nil && !q.Status.IsValid() {
		return nil, errprocess.BadRequest("invalid status filter")
	}

	videos, total, overall, err := u.videoRepo.FindWithCommentCounts(ctx, &q)
	if err != nil {
		return nil, errprocess.Internal("failed to aggregate analytics", err)
	}

	return &domain.AnalyticsPage{
		Videos: videos,
		Pagination: domain.Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages(total, q.Limit),
			TotalItems:  total,
		},
		Overall: *overall,
	}, nil
}
