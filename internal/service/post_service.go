package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/repository"
)

// PostCreateInput carries the validated fields of a post creation request.
type PostCreateInput struct {
	Title       string
	Content     string
	IsPublished *bool
}

// PostUpdateInput carries the fields present in a post update request. Nil
// fields are left untouched.
type PostUpdateInput struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

// PostService handles business rules for posts.
type PostService interface {
	List(ctx context.Context, params pagination.Params) ([]model.Post, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, authorID uint, input PostCreateInput) (*model.Post, error)
	Update(ctx context.Context, id, userID uint, input PostUpdateInput) (*model.Post, error)
	Delete(ctx context.Context, id, userID uint) error
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// List returns a page of published posts, newest first.
func (s *postService) List(ctx context.Context, params pagination.Params) ([]model.Post, pagination.Meta, error) {
	posts, total, err := s.postRepo.ListPublished(ctx, params.Offset(), params.PerPage)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list posts: %w", err)
	}
	return posts, params.MetaFor(total), nil
}

// Get returns a published post. Unpublished posts read as absent for every
// caller, including their author.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
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

// Create persists a new post with the caller as author. The slug is derived
// from the title; publication defaults to true when unspecified.
func (s *postService) Create(ctx context.Context, authorID uint, input PostCreateInput) (*model.Post, error) {
	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	post := &model.Post{
		Title:       input.Title,
		Content:     input.Content,
		Slug:        model.MakeSlug(input.Title),
		IsPublished: published,
		AuthorID:    authorID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.postRepo.FindByID(ctx, post.ID)
}

// Update merges the provided fields into an existing post. Existence is
// checked before ownership, so a missing post reports not-found even to a
// non-owner. The slug is recomputed when the title changes.
func (s *postService) Update(ctx context.Context, id, userID uint, input PostUpdateInput) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if !post.CanEdit(userID) {
		return nil, apperrors.ErrForbidden
	}

	if input.Title != nil && *input.Title != post.Title {
		post.Title = *input.Title
		post.Slug = model.MakeSlug(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post after existence and ownership checks. Comments are
// cascaded away by the data layer.
func (s *postService) Delete(ctx context.Context, id, userID uint) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}

	if !post.CanEdit(userID) {
		return apperrors.ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
