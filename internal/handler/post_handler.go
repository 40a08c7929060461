package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/service"
)

const (
	postsDefaultPerPage = 10
	postsMaxPerPage     = 50
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostCreateRequest represents a post creation request.
type PostCreateRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Content     string `json:"content" validate:"required,notblank"`
	IsPublished *bool  `json:"is_published"`
}

// PostUpdateRequest represents a partial post update.
type PostUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=200"`
	Content     *string `json:"content" validate:"omitempty,notblank"`
	IsPublished *bool   `json:"is_published"`
}

// PostListResponse is the paginated post listing envelope.
type PostListResponse struct {
	Posts      []model.PostSummary `json:"posts"`
	Pagination pagination.Meta     `json:"pagination"`
}

// List godoc
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-indexed)"
// @Param per_page query int false "Page size (max 50)"
// @Success 200 {object} PostListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	params, err := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), postsDefaultPerPage, postsMaxPerPage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	posts, meta, err := h.postService.List(c.Request().Context(), params)
	if err != nil {
		return writeError(c, err)
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, posts[i].Summary())
	}

	return c.JSON(http.StatusOK, PostListResponse{Posts: summaries, Pagination: meta})
}

// Get godoc
// @Summary Get a published post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]model.PostDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post": post.Detail()})
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostCreateRequest true "Post data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	var req PostCreateRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	post, err := h.postService.Create(c.Request().Context(), user.ID, service.PostCreateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"post":    post.Detail(),
	})
}

// Update godoc
// @Summary Update a post (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body PostUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req PostUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	post, err := h.postService.Update(c.Request().Context(), id, user.ID, service.PostUpdateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post updated successfully",
		"post":    post.Detail(),
	})
}

// Delete godoc
// @Summary Delete a post (owner only)
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.postService.Delete(c.Request().Context(), id, user.ID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
