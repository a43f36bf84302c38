package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUploadReq() domain.UploadVideoReq {
	return domain.UploadVideoReq{
		Title:       "Test Video",
		Description: "A video uploaded by the tests",
		Tags:        []string{"Music", " rock "},
		Video: &domain.FileUpload{
			FileName:    "test.mp4",
			ContentType: "video/mp4",
			Size:        1024,
			File:        bytes.NewReader([]byte("dummy video content")),
		},
	}
}

// 測試 UploadVideo
func TestUploadVideo(t *testing.T) {
	logger.SetNewNop()
	userID := primitive.NewObjectID()

	newUsecase := func() (*MockVideoRepo, *MockObjectStore, *MockThumbnailer, VideoUseCase) {
		mockRepo := new(MockVideoRepo)
		mockStore := new(MockObjectStore)
		mockThumb := new(MockThumbnailer)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), mockStore, mockThumb, "/static/placeholder.jpg", t.TempDir())
		return mockRepo, mockStore, mockThumb, uc
	}

	// **情境 1: 成功上傳影片, 縮圖由影片衍生**
	t.Run("成功上傳影片", func(t *testing.T) {
		mockRepo, mockStore, mockThumb, uc := newUsecase()

		derived, err := os.CreateTemp(t.TempDir(), "thumb-*.jpg")
		assert.NoError(t, err)
		derived.Close()

		mockStore.On("UploadFile", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "videos/") && strings.HasSuffix(name, ".mp4")
		}), mock.Anything, "video/mp4").Return("http://minio/videos/v.mp4", nil).Once()

		mockThumb.On("Derive", mock.Anything, mock.Anything).Return(derived.Name(), nil).Once()

		mockStore.On("UploadFile", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "thumbnails/") && strings.HasSuffix(name, ".jpg")
		}), derived.Name(), "image/jpeg").Return("http://minio/thumbnails/t.jpg", nil).Once()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			video := args.Get(1).(*domain.Video)
			video.ID = primitive.NewObjectID()
		}).Once()

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, newUploadReq())
		assert.NoError(t, err)
		assert.NotNil(t, video)
		assert.Equal(t, domain.VideoApproved, video.Status)
		assert.Equal(t, "http://minio/videos/v.mp4", video.URL)
		assert.Equal(t, "http://minio/thumbnails/t.jpg", video.Thumbnail)
		assert.Equal(t, []string{"music", "rock"}, video.Tags)
		assert.Equal(t, userID, video.User)

		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
		mockThumb.AssertExpectations(t)
	})

	// **情境 1b: 一般使用者上傳進待審**
	t.Run("一般使用者上傳進待審", func(t *testing.T) {
		mockRepo, mockStore, mockThumb, uc := newUsecase()

		mockStore.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, "video/mp4").
			Return("http://minio/videos/v.mp4", nil).Once()
		mockThumb.On("Derive", mock.Anything, mock.Anything).Return("", errors.New("no ffmpeg")).Once()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleConsumer, newUploadReq())
		assert.NoError(t, err)
		assert.Equal(t, domain.VideoPending, video.Status)
	})

	// **情境 2: 縮圖衍生失敗不影響上傳**
	t.Run("縮圖衍生失敗不影響上傳", func(t *testing.T) {
		mockRepo, mockStore, mockThumb, uc := newUsecase()

		mockStore.On("UploadFile", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "videos/")
		}), mock.Anything, "video/mp4").Return("http://minio/videos/v.mp4", nil).Once()

		mockThumb.On("Derive", mock.Anything, mock.Anything).Return("", errors.New("ffmpeg exited 1")).Once()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, newUploadReq())
		assert.NoError(t, err)
		assert.NotNil(t, video)
		assert.Empty(t, video.Thumbnail)
		assert.Empty(t, video.ThumbnailObject)

		mockStore.AssertExpectations(t)
		mockThumb.AssertExpectations(t)
	})

	// **情境 3: 請求驗證失敗**
	t.Run("請求驗證失敗", func(t *testing.T) {
		_, _, _, uc := newUsecase()

		req := newUploadReq()
		req.Title = "ab"

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, req)
		assert.Nil(t, video)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	// **情境 4: MIME 不在白名單**
	t.Run("MIME 不在白名單", func(t *testing.T) {
		_, _, _, uc := newUsecase()

		req := newUploadReq()
		req.Video.ContentType = "application/pdf"

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, req)
		assert.Nil(t, video)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	// **情境 5: 建立暫存目錄失敗**
	t.Run("建立暫存目錄失敗", func(t *testing.T) {
		_, _, _, uc := newUsecase()

		originalCreateDir := createDir
		defer func() { createDir = originalCreateDir }()
		createDir = func(path string) error {
			return errors.New("mkdir error")
		}

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, newUploadReq())
		assert.Error(t, err)
		assert.Nil(t, video)
	})

	// **情境 6: 上傳 MinIO 失敗**
	t.Run("上傳 MinIO 失敗", func(t *testing.T) {
		_, mockStore, _, uc := newUsecase()

		mockStore.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, "video/mp4").
			Return("", errors.New("minio error")).Once()

		video, err := uc.UploadVideo(context.Background(), userID.Hex(), token.RoleAdmin, newUploadReq())
		assert.Error(t, err)
		assert.Nil(t, video)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Status)
	})
}

// 測試 ListVideos
func TestListVideos(t *testing.T) {
	logger.SetNewNop()

	t.Run("一般使用者強制 approved", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "/static/placeholder.jpg", t.TempDir())

		pending := domain.VideoPending
		mockRepo.On("Find", mock.Anything, mock.MatchedBy(func(q *domain.VideoQuery) bool {
			return q.Status != nil && *q.Status == domain.VideoApproved
		})).Return([]domain.Video{{Title: "a"}, {Title: "b", Thumbnail: "http://minio/t.jpg"}}, int64(12), nil).Once()

		page, err := uc.ListVideos(context.Background(), token.RoleConsumer, domain.VideoQuery{Status: &pending, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		// 無縮圖的補上佔位圖
		assert.Equal(t, "/static/placeholder.jpg", page.Videos[0].Thumbnail)
		assert.Equal(t, "http://minio/t.jpg", page.Videos[1].Thumbnail)
		mockRepo.AssertExpectations(t)
	})

	t.Run("管理員可用任意狀態過濾", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		pending := domain.VideoPending
		mockRepo.On("Find", mock.Anything, mock.MatchedBy(func(q *domain.VideoQuery) bool {
			return q.Status != nil && *q.Status == domain.VideoPending
		})).Return([]domain.Video{}, int64(0), nil).Once()

		page, err := uc.ListVideos(context.Background(), token.RoleAdmin, domain.VideoQuery{Status: &pending})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), page.TotalPages)
		mockRepo.AssertExpectations(t)
	})
}

// 測試 GetVideo
func TestGetVideo(t *testing.T) {
	logger.SetNewNop()
	videoID := primitive.NewObjectID()

	t.Run("成功取得並增加瀏覽數", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		uc := NewVideoUseCase(mockRepo, mockComments, new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Status: domain.VideoApproved, Views: 7}, nil).Once()
		mockRepo.On("IncrementViews", mock.Anything, videoID).Return(nil).Once()
		mockComments.On("FindByVideo", mock.Anything, videoID, 0, 0).
			Return([]domain.CommentWithAuthor{{Text: "nice"}}, int64(1), nil).Once()

		detail, err := uc.GetVideo(context.Background(), token.RoleConsumer, videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(8), detail.Video.Views)
		assert.Len(t, detail.Comments, 1)
		mockRepo.AssertExpectations(t)
		mockComments.AssertExpectations(t)
	})

	t.Run("瀏覽數更新失敗仍回傳影片", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		uc := NewVideoUseCase(mockRepo, mockComments, new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Status: domain.VideoApproved, Views: 7}, nil).Once()
		mockRepo.On("IncrementViews", mock.Anything, videoID).Return(errors.New("db down")).Once()
		mockComments.On("FindByVideo", mock.Anything, videoID, 0, 0).
			Return([]domain.CommentWithAuthor{}, int64(0), nil).Once()

		detail, err := uc.GetVideo(context.Background(), token.RoleConsumer, videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(7), detail.Video.Views)
	})

	t.Run("一般使用者不可見未審核影片", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Status: domain.VideoPending}, nil).Once()

		detail, err := uc.GetVideo(context.Background(), token.RoleConsumer, videoID.Hex())
		assert.Nil(t, detail)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("管理員可見未審核影片且不計瀏覽", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		uc := NewVideoUseCase(mockRepo, mockComments, new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Status: domain.VideoPending, Views: 3}, nil).Once()
		mockComments.On("FindByVideo", mock.Anything, videoID, 0, 0).
			Return([]domain.CommentWithAuthor{}, int64(0), nil).Once()

		detail, err := uc.GetVideo(context.Background(), token.RoleAdmin, videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(3), detail.Video.Views)
		mockRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("無效 id", func(t *testing.T) {
		uc := NewVideoUseCase(new(MockVideoRepo), new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		detail, err := uc.GetVideo(context.Background(), token.RoleConsumer, "not-a-hex-id")
		assert.Nil(t, detail)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("影片不存在", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).Return(nil, repository.ErrVideoNotFound).Once()

		detail, err := uc.GetVideo(context.Background(), token.RoleConsumer, videoID.Hex())
		assert.Nil(t, detail)
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}

// 測試 ToggleLike
func TestToggleLike(t *testing.T) {
	logger.SetNewNop()
	videoID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("按讚再取消回到原數", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Likes: 5, LikedBy: []primitive.ObjectID{}}, nil).Once()
		mockRepo.On("AddLike", mock.Anything, videoID, userID).Return(nil).Once()

		likes, err := uc.ToggleLike(context.Background(), userID.Hex(), videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(6), likes)

		mockRepo.On("GetByID", mock.Anything, videoID).
			Return(&domain.Video{ID: videoID, Likes: 6, LikedBy: []primitive.ObjectID{userID}}, nil).Once()
		mockRepo.On("RemoveLike", mock.Anything, videoID, userID).Return(nil).Once()

		likes, err = uc.ToggleLike(context.Background(), userID.Hex(), videoID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, int64(5), likes)
		mockRepo.AssertExpectations(t)
	})

	t.Run("影片不存在", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).Return(nil, repository.ErrVideoNotFound).Once()

		_, err := uc.ToggleLike(context.Background(), userID.Hex(), videoID.Hex())
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}

// 測試 DeleteVideo
func TestDeleteVideo(t *testing.T) {
	logger.SetNewNop()
	videoID := primitive.NewObjectID()

	stored := &domain.Video{
		ID:              videoID,
		Object:          "videos/v.mp4",
		ThumbnailObject: "thumbnails/t.jpg",
	}

	t.Run("刪除連帶留言與物件", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		mockStore := new(MockObjectStore)
		uc := NewVideoUseCase(mockRepo, mockComments, mockStore, new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).Return(stored, nil).Once()
		mockComments.On("DeleteByVideo", mock.Anything, videoID).Return(int64(3), nil).Once()
		mockRepo.On("Delete", mock.Anything, videoID).Return(nil).Once()
		mockStore.On("RemoveFile", mock.Anything, "videos/v.mp4").Return(nil).Once()
		mockStore.On("RemoveFile", mock.Anything, "thumbnails/t.jpg").Return(nil).Once()

		err := uc.DeleteVideo(context.Background(), videoID.Hex())
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockComments.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("blob 清理失敗不影響刪除", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		mockStore := new(MockObjectStore)
		uc := NewVideoUseCase(mockRepo, mockComments, mockStore, new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).Return(stored, nil).Once()
		mockComments.On("DeleteByVideo", mock.Anything, videoID).Return(int64(0), nil).Once()
		mockRepo.On("Delete", mock.Anything, videoID).Return(nil).Once()
		mockStore.On("RemoveFile", mock.Anything, "videos/v.mp4").Return(errors.New("minio down")).Once()
		mockStore.On("RemoveFile", mock.Anything, "thumbnails/t.jpg").Return(errors.New("minio down")).Once()

		err := uc.DeleteVideo(context.Background(), videoID.Hex())
		assert.NoError(t, err)
	})

	t.Run("影片不存在", func(t *testing.T) {
		mockRepo := new(MockVideoRepo)
		uc := NewVideoUseCase(mockRepo, new(MockCommentRepo), new(MockObjectStore), new(MockThumbnailer), "", t.TempDir())

		mockRepo.On("GetByID", mock.Anything, videoID).Return(nil, repository.ErrVideoNotFound).Once()

		err := uc.DeleteVideo(context.Background(), videoID.Hex())
		var appErr *errprocess.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Status)
	})
}
