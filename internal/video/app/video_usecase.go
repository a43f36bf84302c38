package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	"video_share_service/pkg/database"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/token"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VideoUseCase 這裡封裝了對外提供的應用服務
type VideoUseCase interface {
	UploadVideo(ctx context.Context, userID string, role token.RoleType, up domain.UploadVideoReq) (*domain.Video, error)
	ListVideos(ctx context.Context, role token.RoleType, q domain.VideoQuery) (*domain.VideoListPage, error)
	GetVideo(ctx context.Context, role token.RoleType, videoID string) (*domain.VideoDetail, error)
	ToggleLike(ctx context.Context, userID, videoID string) (int64, error)
	DeleteVideo(ctx context.Context, videoID string) error
}

type videoUseCase struct {
	videoRepo   repository.VideoRepo
	commentRepo repository.CommentRepo
	store       database.ObjectStore
	thumbnailer Thumbnailer

	placeholderThumb string
	tempDir          string
}

// NewVideoUseCase 建立一個新的 VideoUseCase
func NewVideoUseCase(videoRepo repository.VideoRepo,
	commentRepo repository.CommentRepo,
	store database.ObjectStore,
	thumbnailer Thumbnailer,
	placeholderThumb string,
	tempDir string,
) VideoUseCase {
	if tempDir == "" {
		tempDir = "./tmp"
	}
	return &videoUseCase{
		videoRepo:        videoRepo,
		commentRepo:      commentRepo,
		store:            store,
		thumbnailer:      thumbnailer,
		placeholderThumb: placeholderThumb,
		tempDir:          tempDir,
	}
}

// 測試時可替換, 模擬 I/O 失敗
var (
	timeNow = time.Now


	createDir = func(path string) error {
		return os.MkdirAll(path, 0755)
	}

	createFile = func(name string) (*os.File, error) {
		return os.Create(name)
	}

	copyFile = func(dst *os.File, src io.Reader) (written int64, err error) {
		return io.Copy(dst, src)
	}
)

// stageFile 先存成本地檔案再上傳, 避免 stream 不完整與記憶體壓力
func (u *videoUseCase) stageFile(f *domain.FileUpload) (string, error) {
	if err := createDir(u.tempDir); err != nil {
		return "", fmt.Errorf("建立暫存目錄失敗: %w", err)
	}
	stagePath := filepath.Join(u.tempDir, uuid.New().String()+filepath.Ext(f.FileName))
	stageFile, err := createFile(stagePath)
	if err != nil {
		return "", fmt.Errorf("建立暫存檔案失敗: %w", err)
	}
	defer stageFile.Close()

	if _, err := copyFile(stageFile, f.File); err != nil {
		return "", fmt.Errorf("儲存檔案失敗: %w", err)
	}
	return stagePath, nil
}

// UploadVideo 接收上傳請求, 完成上傳, 縮圖與資料庫寫入.
// Thumbnail derivation is the one recoverable step: on failure the video is
// persisted with a null thumbnail.
func (u *videoUseCase) UploadVideo(ctx context.Context, userID string, role token.RoleType, up domain.UploadVideoReq) (*domain.Video, error) {
	if err := up.Validate(); err != nil {
		return nil, err
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errprocess.BadRequest("invalid user id")
	}

	stagePath, err := u.stageFile(up.Video)
	if err != nil {
		return nil, errprocess.Internal("failed to stage upload", err)
	}
	defer os.Remove(stagePath)

	// 上傳物件名帶隨機後綴, 避免同名覆蓋
	objectName := fmt.Sprintf("videos/%s%s", uuid.New().String(), filepath.Ext(up.Video.FileName))
	videoURL, err := u.store.UploadFile(ctx, objectName, stagePath, up.Video.ContentType)
	if err != nil {
		return nil, errprocess.Internal("failed to upload video", err)
	}

	thumbURL, thumbObject := u.resolveThumbnail(ctx, up.Thumbnail, stagePath)

	// 管理員上傳直接核准, 其他人進待審
	status := domain.VideoPending
	if role == token.RoleAdmin {
		status = domain.VideoApproved
	}

	video := domain.Video{
		Title:       up.Title,
		Description: up.Description,
		URL:         videoURL,
		Thumbnail:   thumbURL,
		Tags:        up.Tags,
		User:        owner,
		Status:      status,
		LikedBy:     []primitive.ObjectID{},
		CreatedAt:   timeNow(),

		Object:          objectName,
		ThumbnailObject: thumbObject,
	}

	if err := u.videoRepo.Create(ctx, &video); err != nil {
		return nil, errprocess.Internal("failed to create video record", err)
	}

	logger.Log.Info("video uploaded",
		zap.String("video_id", video.ID.Hex()),
		zap.String("object", objectName),
		zap.Bool("has_thumbnail", thumbURL != ""))

	return &video, nil
}

// resolveThumbnail upload the supplied thumbnail, or derive one from the
// staged video. Never fails the pipeline.
func (u *videoUseCase) resolveThumbnail(ctx context.Context, supplied *domain.FileUpload, videoPath string) (string, string) {
	if supplied != nil {
		stagePath, err := u.stageFile(supplied)
		if err != nil {
			logger.Log.Warn("failed to stage thumbnail", zap.Error(err))
			return "", ""
		}
		defer os.Remove(stagePath)

		objectName := fmt.Sprintf("thumbnails/%s%s", uuid.New().String(), filepath.Ext(supplied.FileName))
		url, err := u.store.UploadFile(ctx, objectName, stagePath, supplied.ContentType)
		if err != nil {
			logger.Log.Warn("failed to upload thumbnail", zap.Error(err))
			return "", ""
		}
		return url, objectName
	}

	derivedPath, err := u.thumbnailer.Derive(ctx, videoPath)
	if err != nil {
		logger.Log.Warn("thumbnail derivation failed", zap.Error(err))
		return "", ""
	}
	defer os.Remove(derivedPath)

	objectName := fmt.Sprintf("thumbnails/%s.jpg", uuid.New().String())
	url, err := u.store.UploadFile(ctx, objectName, derivedPath, "image/jpeg")
	if err != nil {
		logger.Log.Warn("failed to upload derived thumbnail", zap.Error(err))
		return "", ""
	}
	return url, objectName
}

// ListVideos page videos newest-first. Consumers only ever see approved.
func (u *videoUseCase) ListVideos(ctx context.Context, role token.RoleType, q domain.VideoQuery) (*domain.VideoListPage, error) {
	q.Normalize()

	if role != token.RoleAdmin {
		st := domain.VideoApproved
		q.Status = &st
	} else if q.Status != nil && !q.Status.IsValid() {
		return nil, errprocess.BadRequest("invalid status filter")
	}

	videos, total, err := u.videoRepo.Find(ctx, &q)
	if err != nil {
		return nil, errprocess.Internal("failed to list videos", err)
	}

	for i := range videos {
		if videos[i].Thumbnail == "" {
			videos[i].Thumbnail = u.placeholderThumb
		}
	}

	return &domain.VideoListPage{
		Videos:      videos,
		TotalPages:  totalPages(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

// GetVideo get video with its comments, counting the view
func (u *videoUseCase) GetVideo(ctx context.Context, role token.RoleType, videoID string) (*domain.VideoDetail, error) {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, errprocess.BadRequest("invalid video id")
	}

	video, err := u.videoRepo.GetByID(ctx, oid)
	if err != nil {
		if err == repository.ErrVideoNotFound {
			return nil, errprocess.NotFound("video not found")
		}
		return nil, errprocess.Internal("failed to load video", err)
	}

	if video.Status != domain.VideoApproved && role != token.RoleAdmin {
		return nil, errprocess.Forbidden("video is not available")
	}

	if video.Status == domain.VideoApproved {
		// 丟失的並發增量可接受, 瀏覽數是近似值
		if err := u.videoRepo.IncrementViews(ctx, oid); err != nil {
			logger.Log.Warn("failed to increment views", zap.String("video_id", videoID), zap.Error(err))
		} else {
			video.Views++
		}
	}

	comments, _, err := u.commentRepo.FindByVideo(ctx, oid, 0, 0)
	if err != nil {
		return nil, errprocess.Internal("failed to load comments", err)
	}

	return &domain.VideoDetail{Video: video, Comments: comments}, nil
}

// ToggleLike like / unlike, the only mutation path for likes and liked_by
func (u *videoUseCase) ToggleLike(ctx context.Context, userID, videoID string) (int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, errprocess.BadRequest("invalid user id")
	}
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return 0, errprocess.BadRequest("invalid video id")
	}

	video, err := u.videoRepo.GetByID(ctx, vid)
	if err != nil {
		if err == repository.ErrVideoNotFound {
			return 0, errprocess.NotFound("video not found")
		}
		return 0, errprocess.Internal("failed to load video", err)
	}

	if video.IsLikedBy(uid) {
		if err := u.videoRepo.RemoveLike(ctx, vid, uid); err != nil {
			return 0, errprocess.Internal("failed to remove like", err)
		}
		return video.Likes - 1, nil
	}

	if err := u.videoRepo.AddLike(ctx, vid, uid); err != nil {
		return 0, errprocess.Internal("failed to add like", err)
	}
	return video.Likes + 1, nil
}

// DeleteVideo cascade comments, remove the record, then best-effort blobs.
// The database deletion is authoritative and is never rolled back.
func (u *videoUseCase) DeleteVideo(ctx context.Context, videoID string) error {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return errprocess.BadRequest("invalid video id")
	}

	video, err := u.videoRepo.GetByID(ctx, vid)
	if err != nil {
		if err == repository.ErrVideoNotFound {
			return errprocess.NotFound("video not found")
		}
		return errprocess.Internal("failed to load video", err)
	}

	deleted, err := u.commentRepo.DeleteByVideo(ctx, vid)
	if err != nil {
		return errprocess.Internal("failed to delete comments", err)
	}

	if err := u.videoRepo.Delete(ctx, vid); err != nil {
		if err == repository.ErrVideoNotFound {
			return errprocess.NotFound("video not found")
		}
		return errprocess.Internal("failed to delete video", err)
	}

	// blob 清理失敗只記錄, 不回滾
	if err := u.store.RemoveFile(ctx, video.Object); err != nil {
		logger.Log.Warn("failed to remove video object", zap.String("object", video.Object), zap.Error(err))
	}
	if video.ThumbnailObject != "" {
		if err := u.store.RemoveFile(ctx, video.ThumbnailObject); err != nil {
			logger.Log.Warn("failed to remove thumbnail object", zap.String("object", video.ThumbnailObject), zap.Error(err))
		}
	}

	logger.Log.Info("video deleted",
		zap.String("video_id", videoID),
		zap.Int64("comments_removed", deleted))

	return nil
}

func totalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
