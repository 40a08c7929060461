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
	commentsDefaultPerPage = 20
	commentsMaxPerPage     = 100
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentCreateRequest represents a comment creation request.
type CommentCreateRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Content string `json:"content" validate:"required,notblank"`
	PostID  uint   `json:"post_id" validate:"required"`
}

// CommentUpdateRequest represents a partial comment update.
type CommentUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,notblank,max=100"`
	Content *string `json:"content" validate:"omitempty,notblank"`
}

// CommentListResponse is the paginated comment listing envelope.
type CommentListResponse struct {
	Comments   []model.CommentView `json:"comments"`
	Post       model.PostRef       `json:"post"`
	Pagination pagination.Meta     `json:"pagination"`
}

// ListByPost godoc
// @Summary List comments for a published post
// @Tags comments
// @Produce json
// @Param post_id path int true "Post ID"
// @Param page query int false "Page number (1-indexed)"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} CommentListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/posts/{post_id} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return writeError(c, err)
	}

	params, err := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), commentsDefaultPerPage, commentsMaxPerPage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	comments, post, meta, err := h.commentService.ListByPost(c.Request().Context(), postID, params)
	if err != nil {
		return writeError(c, err)
	}

	views := make([]model.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].View())
	}

	return c.JSON(http.StatusOK, CommentListResponse{
		Comments:   views,
		Post:       post.Ref(),
		Pagination: meta,
	})
}

// Get godoc
// @Summary Get a comment by ID
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]model.CommentView
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"comment": comment.View()})
}

// Create godoc
// @Summary Create a comment on a published post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CommentCreateRequest true "Comment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	var req CommentCreateRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	comment, err := h.commentService.Create(c.Request().Context(), user.ID, service.CommentCreateInput{
		Name:    req.Name,
		Content: req.Content,
		PostID:  req.PostID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment created successfully",
		"comment": comment.View(),
	})
}

// Update godoc
// @Summary Update a comment (owner only)
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body CommentUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req CommentUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	comment, err := h.commentService.Update(c.Request().Context(), id, user.ID, service.CommentUpdateInput{
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Comment updated successfully",
		"comment": comment.View(),
	})
}

// Delete godoc
// @Summary Delete a comment (owner only)
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.commentService.Delete(c.Request().Context(), id, user.ID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
