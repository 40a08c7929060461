package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/repository"
)

// CommentCreateInput carries the validated fields of a comment creation
// request.
type CommentCreateInput struct {
	Name    string
	Content string
	PostID  uint
}

// CommentUpdateInput carries the fields present in a comment update request.
// Nil fields are left untouched.
type CommentUpdateInput struct {
	Name    *string
	Content *string
}

// CommentService handles business rules for comments.
type CommentService interface {
	ListByPost(ctx context.Context, postID uint, params pagination.Params) ([]model.Comment, *model.Post, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*model.Comment, error)
	Create(ctx context.Context, authorID uint, input CommentCreateInput) (*model.Comment, error)
	Update(ctx context.Context, id, userID uint, input CommentUpdateInput) (*model.Comment, error)
	Delete(ctx context.Context, id, userID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// findPublishedPost resolves a post for comment operations; missing and
// unpublished posts are indistinguishable to callers.
func (s *commentService) findPublishedPost(ctx context.Context, postID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !post.IsPublished {
		return nil, apperrors.ErrNotFound
	}
	return post, nil
}

// ListByPost returns a page of a published post's comments, newest first,
// along with the post itself for the response envelope.
func (s *commentService) ListByPost(ctx context.Context, postID uint, params pagination.Params) ([]model.Comment, *model.Post, pagination.Meta, error) {
	post, err := s.findPublishedPost(ctx, postID)
	if err != nil {
		return nil, nil, pagination.Meta{}, err
	}

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, params.Offset(), params.PerPage)
	if err != nil {
		return nil, nil, pagination.Meta{}, fmt.Errorf("list comments: %w", err)
	}
	return comments, post, params.MetaFor(total), nil
}

// Get returns a comment by ID.
func (s *commentService) Get(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

// Create persists a new comment with the caller as author. The referenced
// post must exist and be published at the moment of creation.
func (s *commentService) Create(ctx context.Context, authorID uint, input CommentCreateInput) (*model.Comment, error) {
	if _, err := s.findPublishedPost(ctx, input.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Name:     input.Name,
		Content:  input.Content,
		PostID:   input.PostID,
		AuthorID: authorID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return s.commentRepo.FindByID(ctx, comment.ID)
}

// Update merges the provided fields into an existing comment. Existence is
// checked before ownership; values are trimmed before storage.
func (s *commentService) Update(ctx context.Context, id, userID uint, input CommentUpdateInput) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}

	if !comment.CanEdit(userID) {
		return nil, apperrors.ErrForbidden
	}

	if input.Name != nil {
		comment.Name = strings.TrimSpace(*input.Name)
	}
	if input.Content != nil {
		comment.Content = strings.TrimSpace(*input.Content)
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment after existence and ownership checks.
func (s *commentService) Delete(ctx context.Context, id, userID uint) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if !comment.CanEdit(userID) {
		return apperrors.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
