package handlers

import (
	"video_share_service/internal/video/app"
	"video_share_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler 處理留言相關的 HTTP 請求
type CommentHandler struct {
	Usecase app.CommentUseCase
}

// NewCommentHandler 建立新的 CommentHandler
func NewCommentHandler(usecase app.CommentUseCase) *CommentHandler {
	return &CommentHandler{Usecase: usecase}
}

// Add 新增留言
// @Summary Post a comment
// @Description Adds a comment to an existing video
// @Tags Comments
// @Accept json
// @Produce json
// @Success 201 {object} string "created comment"
// @Failure 400 {object} string "empty text"
// @Failure 404 {object} string "video not found"
// @Router /api/comments [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	type request struct {
		VideoID string `json:"videoId"`
		Text    string `json:"text"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Usecase.AddComment(c.Context(), actor.ID, req.VideoID, req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// List 影片留言列表
// @Summary List a video's comments
// @Description Pages comments newest-first with author info joined in
// @Tags Comments
// @Produce json
// @Param videoId path string true "Video id"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} string "comment page"
// @Router /api/comments/{videoId} [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	page, err := h.Usecase.ListComments(c.Context(), c.Params("videoId"),
		c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// Delete 刪除留言
// @Summary Delete a comment
// @Description Only the author or an admin may remove a comment
// @Tags Comments
// @Produce json
// @Param id path string true "Comment id"
// @Success 200 {object} string "deleted"
// @Failure 403 {object} string "not allowed"
// @Failure 404 {object} string "comment not found"
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middlewares.ActingUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	id := c.Params("id")
	if err := h.Usecase.DeleteComment(c.Context(), actor.ID, actor.Role, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted", "id": id})
}
