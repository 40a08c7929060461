package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/pagination"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListPublished(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func TestPostList(t *testing.T) {
	ctx := context.Background()
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo)

	stored := []model.Post{{ID: 2, Title: "newer"}, {ID: 1, Title: "older"}}
	postRepo.On("ListPublished", ctx, 10, 10).Return(stored, int64(25), nil)

	posts, meta, err := svc.List(ctx, pagination.Params{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.Pages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestPostGet(t *testing.T) {
	ctx := context.Background()

	t.Run("published post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, IsPublished: true}, nil)

		post, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Get(ctx, 404)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unpublished post reads as missing", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5, IsPublished: false}, nil)

		_, err := svc.Get(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to published and derives slug", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("Create", ctx, mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			post := args.Get(1).(*model.Post)
			assert.True(t, post.IsPublished)
			assert.Equal(t, "hello-world-2024", post.Slug)
			post.ID = 3
		}).Return(nil)
		postRepo.On("FindByID", ctx, uint(3)).Return(&model.Post{ID: 3, Slug: "hello-world-2024", IsPublished: true}, nil)

		post, err := svc.Create(ctx, 5, PostCreateInput{Title: "Hello, World! 2024", Content: "body"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), post.ID)
		postRepo.AssertExpectations(t)
	})

	t.Run("explicit unpublished", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		unpublished := false
		postRepo.On("Create", ctx, mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			post := args.Get(1).(*model.Post)
			assert.False(t, post.IsPublished)
			post.ID = 4
		}).Return(nil)
		postRepo.On("FindByID", ctx, uint(4)).Return(&model.Post{ID: 4}, nil)

		_, err := svc.Create(ctx, 5, PostCreateInput{Title: "Draft", Content: "body", IsPublished: &unpublished})
		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("non-owner forbidden", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5}, nil)

		title := "hijacked"
		_, err := svc.Update(ctx, 1, 6, PostUpdateInput{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing post reported before ownership", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		title := "anything"
		_, err := svc.Update(ctx, 404, 6, PostUpdateInput{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("changed title recomputes slug", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5, Title: "Old Title", Slug: "old-title"}, nil)
		postRepo.On("Update", ctx, mock.AnythingOfType("*model.Post")).Return(nil)

		title := "New Title"
		post, err := svc.Update(ctx, 1, 5, PostUpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "new-title", post.Slug)
	})

	t.Run("same title leaves slug alone", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5, Title: "Old Title", Slug: "custom-slug"}, nil)
		postRepo.On("Update", ctx, mock.AnythingOfType("*model.Post")).Return(nil)

		title := "Old Title"
		content := "new body"
		post, err := svc.Update(ctx, 1, 5, PostUpdateInput{Title: &title, Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "custom-slug", post.Slug)
		assert.Equal(t, "new body", post.Content)
	})
}

func TestPostDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		post := &model.Post{ID: 1, AuthorID: 5}
		postRepo.On("FindByID", ctx, uint(1)).Return(post, nil)
		postRepo.On("Delete", ctx, post).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1, 5))
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5}, nil)

		err := svc.Delete(ctx, 1, 6)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
