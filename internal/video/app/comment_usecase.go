package app

import (
	"context"
	"strings"
	"time"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentUseCase 留言的應用服務
type CommentUseCase interface {
	AddComment(ctx context.Context, userID, videoID, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, videoID string, page, limit int) (*domain.CommentPage, error)
	DeleteComment(ctx context.Context, actorID string, actorRole token.RoleType, commentID string) error
}

type commentUseCase struct {
	commentRepo repository.CommentRepo
	videoRepo   repository.VideoRepo
}

// NewCommentUseCase 建立一個新的 CommentUseCase
func NewCommentUseCase(commentRepo repository.CommentRepo, videoRepo repository.VideoRepo) CommentUseCase {
	return &commentUseCase{commentRepo: commentRepo, videoRepo: videoRepo}
}

// AddComment post a comment on an existing video
func (u *commentUseCase) AddComment(ctx context.Context, userID, videoID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errprocess.BadRequest("comment text is required")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errprocess.BadRequest("invalid user id")
	}
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, errprocess.NotFound("video not found")
	}

	if _, err := u.videoRepo.GetByID(ctx, vid); err != nil {
		if err == repository.ErrVideoNotFound {
			return nil, errprocess.NotFound("video not found")
		}
		return nil, errprocess.Internal("failed to load video", err)
	}

	comment := domain.Comment{
		Text:      text,
		Video:     vid,
		User:      uid,
		CreatedAt: time.Now(),
	}
	if err := u.commentRepo.Create(ctx, &comment); err != nil {
		return nil, errprocess.Internal("failed to create comment", err)
	}
	return &comment, nil
}

// ListComments page a video's comments newest-first with author info joined in
func (u *commentUseCase) ListComments(ctx context.Context, videoID string, page, limit int) (*domain.CommentPage, error) {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, errprocess.NotFound("video not found")
	}

	if _, err := u.videoRepo.GetByID(ctx, vid); err != nil {
		if err == repository.ErrVideoNotFound {
			return nil, errprocess.NotFound("video not found")
		}
		return nil, errprocess.Internal("failed to load video", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	comments, total, err := u.commentRepo.FindByVideo(ctx, vid, page, limit)
	if err != nil {
		return nil, errprocess.Internal("failed to list comments", err)
	}

	return &domain.CommentPage{
		Comments:    comments,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// DeleteComment only the author or an admin may remove a comment
func (u *commentUseCase) DeleteComment(ctx context.Context, actorID string, actorRole token.RoleType, commentID string) error {
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return errprocess.BadRequest("invalid comment id")
	}

	comment, err := u.commentRepo.GetByID(ctx, cid)
	if err != nil {
		if err == repository.ErrCommentNotFound {
			return errprocess.NotFound("comment not found")
		}
		return errprocess.Internal("failed to load comment", err)
	}

	if actorRole != token.RoleAdmin && comment.User.Hex() != actorID {
		return errprocess.Forbidden("not allowed to delete this comment")
	}

	if err := u.commentRepo.Delete(ctx, cid); err != nil {
		if err == repository.ErrCommentNotFound {
			return errprocess.NotFound("comment not found")
		}
		return errprocess.Internal("failed to delete comment", err)
	}
	return nil
}
