package app

import (
	"context"
	"testing"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 測試 VideoStats
func TestVideoStats(t *testing.T) {
	logger.SetNewNop()
	videoID := primitive.NewObjectID()

	t.Run("單一影片統計", func(t *testing.T) {
		mockVideos := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		uc := NewAnalyticsUseCase(mockVideos, mockComments)

		mockVideos.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Views: 42, Likes: 3}, nil).Once()
		mockComments.On("FindByVideo", mock.Anything, videoID, 0, 0).
			Return([]domain.CommentWithAuthor{{Text: "a"}, {Text: "b"}}, int64(2), nil).Once()

		stats, err := uc.VideoStats(context.Background(), videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(2), stats.CommentCount)
		assert.Len(t, stats.Comments, 2)
		// 統計不計瀏覽
		assert.Equal(t, int64(42), stats.Video.Views)
		mockVideos.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("無效 id", func(t *testing.T) {
		uc := NewAnalyticsUseCase(new(MockVideoRepo), new(MockCommentRepo))

		stats, err := uc.VideoStats(context.Background(), "nope")
		assert.Nil(t, stats)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("影片不存在", func(t *testing.T) {
		mockVideos := new(MockVideoRepo)
		uc := NewAnalyticsUseCase(mockVideos, new(MockCommentRepo))

		mockVideos.On("GetByID", mock.Anything, videoID).Return(nil, repository.ErrVideoNotFound).Once()

		stats, err := uc.VideoStats(context.Background(), videoID.Hex())
		assert.Nil(t, stats)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}

// 測試 VideoAnalytics
func TestVideoAnalytics(t *testing.T) {
	logger.SetNewNop()

	t.Run("彙總過濾後整體統計", func(t *testing.T) {
		mockVideos := new(MockVideoRepo)
		uc := NewAnalyticsUseCase(mockVideos, new(MockCommentRepo))

		approved := domain.VideoApproved
		overall := &domain.OverallStats{TotalVideos: 23, TotalViews: 999, TotalLikes: 50, TotalComments: 120}

		mockVideos.On("FindWithCommentCounts", mock.Anything, mock.MatchedBy(func(q *domain.VideoQuery) bool {
			return q.Status != nil && *q.Status == domain.VideoApproved && q.Page == 2 && q.Limit == 10
		})).Return([]domain.VideoWithCommentCount{
			{Video: domain.Video{Title: "a"}, CommentCount: 4},
		}, int64(23), overall, nil).Once()

		page, err := uc.VideoAnalytics(context.Background(), domain.VideoQuery{Status: &approved, Page: 2, Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, page.Videos, 1)
		assert.Equal(t, int64(4), page.Videos[0].CommentCount)
		assert.Equal(t, 2, page.Pagination.CurrentPage)
		assert.Equal(t, int64(3), page.Pagination.TotalPages)
		assert.Equal(t, int64(23), page.Pagination.TotalItems)
		// overall 來自過濾後的全集, 不是當前頁
		assert.Equal(t, int64(999), page.Overall.TotalViews)
		mockVideos.AssertExpectations(t)
	})

	t.Run("非法狀態過濾", func(t *testing.T) {
		uc := NewAnalyticsUseCase(new(MockVideoRepo), new(MockCommentRepo))

		bad := domain.VideoStatus("weird")
		page, err := uc.VideoAnalytics(context.Background(), domain.VideoQuery{Status: &bad})
		assert.Nil(t, page)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})
}
