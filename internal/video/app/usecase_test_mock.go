package app

import (
	"context"
	"video_share_service/internal/video/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockVideoRepo Mock VideoRepo
type MockVideoRepo struct {
	mock.Mock
}

// Create moke create video
func (m *MockVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

// GetByID moke get video by id
func (m *MockVideoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// Find moke find videos
func (m *MockVideoRepo) Find(ctx context.Context, q *domain.VideoQuery) ([]domain.Video, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Video), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

// IncrementViews moke increment views
func (m *MockVideoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AddLike moke add like
func (m *MockVideoRepo) AddLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

// RemoveLike moke remove like
func (m *MockVideoRepo) RemoveLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

// Delete moke delete video
func (m *MockVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindWithCommentCounts moke analytics aggregation
func (m *MockVideoRepo) FindWithCommentCounts(ctx context.Context, q *domain.VideoQuery) ([]domain.VideoWithCommentCount, int64, *domain.OverallStats, error) {
	args := m.Called(ctx, q)
	var videos []domain.VideoWithCommentCount
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.VideoWithCommentCount)
	}
	var overall *domain.OverallStats
	if args.Get(2) != nil {
		overall = args.Get(2).(*domain.OverallStats)
	}
	return videos, args.Get(1).(int64), overall, args.Error(3)
}

// MockCommentRepo Mock CommentRepo
type MockCommentRepo struct {
	mock.Mock
}

// Create moke create comment
func (m *MockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// GetByID moke get comment by id
func (m *MockCommentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByVideo moke find comments by video
func (m *MockCommentRepo) FindByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int) ([]domain.CommentWithAuthor, int64, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CommentWithAuthor), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

// CountByVideo moke count comments by video
func (m *MockCommentRepo) CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

// Delete moke delete comment
func (m *MockCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteByVideo moke cascade delete comments
func (m *MockCommentRepo) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStore Mock database.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// UploadFile moke upload file
func (m *MockObjectStore) UploadFile(ctx context.Context, objectName, filePath, contentType string) (string, error) {
	args := m.Called(ctx, objectName, filePath, contentType)
	return args.String(0), args.Error(1)
}

// RemoveFile moke remove file
func (m *MockObjectStore) RemoveFile(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

// ObjectURL moke object url
func (m *MockObjectStore) ObjectURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

// MockThumbnailer Mock Thumbnailer
type MockThumbnailer struct {
	mock.Mock
}

// Derive moke derive thumbnail
func (m *MockThumbnailer) Derive(ctx context.Context, inputPath string) (string, error) {
	args := m.Called(ctx, inputPath)
	return args.String(0), args.Error(1)
}
