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

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(ctx, postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func TestCommentListByPost(t *testing.T) {
	ctx := context.Background()

	t.Run("published post", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		svc := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, Title: "Post", IsPublished: true}, nil)
		commentRepo.On("ListByPost", ctx, uint(1), 0, 20).Return([]model.Comment{{ID: 2}, {ID: 1}}, int64(2), nil)

		comments, post, meta, err := svc.ListByPost(ctx, 1, pagination.Params{Page: 1, PerPage: 20})
		require.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, uint(1), post.ID)
		assert.Equal(t, int64(2), meta.Total)
	})

	t.Run("unpublished post reads as missing", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		svc := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, IsPublished: false}, nil)

		_, _, _, err := svc.ListByPost(ctx, 1, pagination.Params{Page: 1, PerPage: 20})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		commentRepo.AssertNotCalled(t, "ListByPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		svc := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, IsPublished: true}, nil)
		commentRepo.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Comment).ID = 7
		}).Return(nil)
		commentRepo.On("FindByID", ctx, uint(7)).Return(&model.Comment{ID: 7, Name: "Nice", PostID: 1, AuthorID: 5}, nil)

		comment, err := svc.Create(ctx, 5, CommentCreateInput{Name: "Nice", Content: "Agreed", PostID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(7), comment.ID)
		commentRepo.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		svc := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, 5, CommentCreateInput{Name: "x", Content: "y", PostID: 404})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unpublished post", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		svc := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByID", ctx, uint(1)).Return(&model.Post{ID: 1, AuthorID: 5, IsPublished: false}, nil)

		_, err := svc.Create(ctx, 5, CommentCreateInput{Name: "x", Content: "y", PostID: 1})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates with trimming", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		svc := NewCommentService(commentRepo, new(MockPostRepository))

		commentRepo.On("FindByID", ctx, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 5, Name: "old", Content: "old"}, nil)
		commentRepo.On("Update", ctx, mock.AnythingOfType("*model.Comment")).Return(nil)

		name := "  New Name  "
		content := "  spaced out  "
		comment, err := svc.Update(ctx, 1, 5, CommentUpdateInput{Name: &name, Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "New Name", comment.Name)
		assert.Equal(t, "spaced out", comment.Content)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		svc := NewCommentService(commentRepo, new(MockPostRepository))

		commentRepo.On("FindByID", ctx, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 5}, nil)

		name := "hijacked"
		_, err := svc.Update(ctx, 1, 6, CommentUpdateInput{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing comment reported before ownership", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		svc := NewCommentService(commentRepo, new(MockPostRepository))

		commentRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		name := "anything"
		_, err := svc.Update(ctx, 404, 6, CommentUpdateInput{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		svc := NewCommentService(commentRepo, new(MockPostRepository))

		comment := &model.Comment{ID: 1, AuthorID: 5}
		commentRepo.On("FindByID", ctx, uint(1)).Return(comment, nil)
		commentRepo.On("Delete", ctx, comment).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1, 5))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		svc := NewCommentService(commentRepo, new(MockPostRepository))

		commentRepo.On("FindByID", ctx, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 5}, nil)

		err := svc.Delete(ctx, 1, 6)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
