package handlers

import (
	"mime/multipart"

	"video_share_service/internal/video/app"
	"video_share_service/internal/video/domain"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VideoHandler 處理影片相關的 HTTP 請求
type VideoHandler struct {
	Videos    app.VideoUseCase
	Analytics app.AnalyticsUseCase
}

// NewVideoHandler 建立新的 VideoHandler
func NewVideoHandler(videos app.VideoUseCase, analytics app.AnalyticsUseCase) *VideoHandler {
	return &VideoHandler{Videos: videos, Analytics: analytics}
}

func fileUploadFromHeader(fh *multipart.FileHeader) (*domain.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &domain.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		File:        f,
	}, func() { f.Close() }, nil
}

func videoQueryFromCtx(c *fiber.Ctx) domain.VideoQuery {
	q := domain.VideoQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}
	if s := c.Query("status"); s != "" {
		st := domain.VideoStatus(s)
		q.Status = &st
	}
	if tag := c.Query("tag"); tag != "" {
		q.Tag = &tag
	}
	return q
}

// Upload 上傳影片
// @Summary Upload a video
// @Description Accepts a multipart upload, stores the blob and derives a thumbnail
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Video title"
// @Param description formData string true "Video description"
// @Param tags formData string true "Comma separated tags"
// @Param video formData file true "Video file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 201 {object} string "created video"
// @Failure 400 {object} string "validation failure"
// @Router /api/videos/upload [post]
func (h *VideoHandler) Upload(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	req := domain.UploadVideoReq{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Tags:        domain.ParseTags(c.FormValue("tags")),
	}

	videoHeader, err := c.FormFile("video")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "video file is required"})
	}
	video, closeVideo, err := fileUploadFromHeader(videoHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable video file"})
	}
	defer closeVideo()
	req.Video = video

	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumb, closeThumb, err := fileUploadFromHeader(thumbHeader)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable thumbnail file"})
		}
		defer closeThumb()
		req.Thumbnail = thumb
	}

	created, err := h.Videos.UploadVideo(c.Context(), actor.ID, actor.Role, req)
	if err != nil {
		return fail(c, err)
	}

	logger.Log.Info("upload", zap.String("video_id", created.ID.Hex()), zap.String("user", actor.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"video": created})
}

// List 影片列表
// @Summary List videos
// @Description Pages videos newest-first, consumers only see approved
// @Tags Videos
// @Produce json
// @Param status query string false "Status filter (admin only)"
// @Param tag query string false "Tag filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} string "video page"
// @Router /api/videos [get]
func (h *VideoHandler) List(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, err := h.Videos.ListVideos(c.Context(), actor.Role, videoQueryFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// Get 取得單一影片
// @Summary Get one video with comments
// @Description Returns the video and its comments, counting a view on approved videos
// @Tags Videos
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} string "video detail"
// @Failure 403 {object} string "video not available"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id} [get]
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	detail, err := h.Videos.GetVideo(c.Context(), actor.Role, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}

// Like 切換按讚
// @Summary Toggle a like
// @Description Likes the video, or removes the caller's existing like
// @Tags Videos
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} string "new like count"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id}/like [post]
func (h *VideoHandler) Like(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	likes, err := h.Videos.ToggleLike(c.Context(), actor.ID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// Delete 刪除影片
// @Summary Delete a video
// @Description Removes the video, its comments and, best effort, its blobs
// @Tags Videos
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} string "deleted"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id} [delete]
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Videos.DeleteVideo(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "video deleted", "id": id})
}

// Stats 單一影片統計
// @Summary Get stats for one video
// @Description Returns the video with its comment count and comments, no view is counted
// @Tags Analytics
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} string "video stats"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id}/stats [get]
func (h *VideoHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Analytics.VideoStats(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// AllAnalytics 影片彙總分析
// @Summary Paged analytics over all videos
// @Description Videos with comment counts plus overall stats for the filtered set
// @Tags Analytics
// @Produce json
// @Param status query string false "Status filter"
// @Param tag query string false "Tag filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} string "analytics page"
// @Router /api/videos/all-analytics [get]
func (h *VideoHandler) AllAnalytics(c *fiber.Ctx) error {
	page, err := h.Analytics.VideoAnalytics(c.Context(), videoQueryFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}
