package domain

import (
	"fmt"
	"io"
	"strings"
	"time"

	"video_share_service/pkg"
	errprocess "video_share_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoStatus definition video moderation state
type VideoStatus string

const (
	// VideoPending awaiting approval, admin-only visibility
	VideoPending VideoStatus = "pending"
	// VideoApproved publicly visible
	VideoApproved VideoStatus = "approved"
	// VideoRejected not reachable by any visible flow
	VideoRejected VideoStatus = "rejected"
)

// IsValid check status is a known moderation state
func (s VideoStatus) IsValid() bool {
	return s == VideoPending || s == VideoApproved || s == VideoRejected
}

const (
	// TitleMinLen / TitleMaxLen bound the video title
	TitleMinLen = 3
	// TitleMaxLen bound the video title
	TitleMaxLen = 100
	// DescriptionMinLen bound the description
	DescriptionMinLen = 10
	// DescriptionMaxLen bound the description
	DescriptionMaxLen = 500
	// MaxTags bound the normalized tag set
	MaxTags = 10
	// MaxUploadBytes 上傳檔案上限 100 MiB
	MaxUploadBytes = 100 << 20
)

// AllowedUploadTypes accepted MIME types, the image types let a thumbnail be
// attached as a second file
var AllowedUploadTypes = []string{
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"image/jpeg",
	"image/png",
}

// Video 定義影片模型
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	URL         string             `bson:"url" json:"url"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Status      VideoStatus        `bson:"status" json:"status"`
	Views       int64              `bson:"views" json:"views"`
	Likes       int64              `bson:"likes" json:"likes"`
	LikedBy     []primitive.ObjectID `bson:"liked_by" json:"likedBy"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`

	// MinIO object keys, kept so deletion can reach the blobs
	Object          string `bson:"object" json:"-"`
	ThumbnailObject string `bson:"thumbnail_object,omitempty" json:"-"`
}

// IsLikedBy check the user already toggled a like on
func (v *Video) IsLikedBy(userID primitive.ObjectID) bool {
	return pkg.Contains(v.LikedBy, userID)
}

// FileUpload is one multipart file moving through the upload pipeline
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UploadVideoReq usecase upload video request
type UploadVideoReq struct {
	Title       string
	Description string
	Tags        []string
	Video       *FileUpload
	Thumbnail   *FileUpload
}

// Validate 檢查上傳請求, 回傳第一個違規
func (up *UploadVideoReq) Validate() error {
	if l := len(strings.TrimSpace(up.Title)); l < TitleMinLen || l > TitleMaxLen {
		return errprocess.BadRequest(fmt.Sprintf("title must be %d-%d characters", TitleMinLen, TitleMaxLen))
	}
	if l := len(strings.TrimSpace(up.Description)); l < DescriptionMinLen || l > DescriptionMaxLen {
		return errprocess.BadRequest(fmt.Sprintf("description must be %d-%d characters", DescriptionMinLen, DescriptionMaxLen))
	}

	tags := NormalizeTags(up.Tags)
	if len(tags) == 0 || len(tags) > MaxTags {
		return errprocess.BadRequest(fmt.Sprintf("between 1 and %d tags are required", MaxTags))
	}
	up.Tags = tags

	if up.Video == nil {
		return errprocess.BadRequest("video file is required")
	}
	if err := validateFile(up.Video); err != nil {
		return err
	}
	if up.Thumbnail != nil {
		if err := validateFile(up.Thumbnail); err != nil {
			return err
		}
	}
	return nil
}

func validateFile(f *FileUpload) error {
	if !pkg.Contains(AllowedUploadTypes, f.ContentType) {
		return errprocess.BadRequest(fmt.Sprintf("unsupported file type %q", f.ContentType))
	}
	if f.Size > MaxUploadBytes {
		return errprocess.BadRequest("file exceeds the 100 MiB limit")
	}
	return nil
}

// ParseTags 支援單一逗號分隔字串
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// NormalizeTags trim, lowercase and dedupe. Idempotent.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || pkg.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// VideoQuery join conditions are used to page and filter videos
type VideoQuery struct {
	Status *VideoStatus
	Tag    *string
	Page   int
	Limit  int
}

// Normalize clamp paging defaults
func (q *VideoQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
}

// VideoListPage usecase list videos response
type VideoListPage struct {
	Videos      []Video `json:"videos"`
	TotalPages  int64   `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}

// VideoDetail usecase get video response
type VideoDetail struct {
	Video    *Video              `json:"video"`
	Comments []CommentWithAuthor `json:"comments"`
}
