package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/middleware"
	"github.com/inkwell/blog-backend/internal/service"
	"github.com/inkwell/blog-backend/pkg/ginutil"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListComments godoc
// @Summary      List comments on a post
// @Description  Approved, non-deleted comments of a post, newest first
// @Tags         comments
// @Produce      json
// @Param        id     path   int  true   "Post ID"
// @Param        page   query  int  false  "Page number"     default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	comments, meta, err := h.service.ListByPost(
		postID,
		ginutil.QueryInt(c, "page", 1),
		ginutil.QueryInt(c, "limit", 0),
	)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch comments", err)
		return
	}

	common.SuccessList(c, "comments", comments, meta)
}

// CreateComment godoc
// @Summary      Add a comment
// @Description  Comments on a published post; a reply must reference a comment on the same post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                          true  "Post ID"
// @Param        request  body  domain.CreateCommentRequest  true  "Comment payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.Create(middleware.GetPrincipal(c).ID, postID, &req)
	if errors.Is(err, common.ErrPostNotFound) {
		common.Fail(c, http.StatusNotFound, "Post not found", err)
		return
	}
	if errors.Is(err, common.ErrPostNotPublished) {
		common.Fail(c, http.StatusBadRequest, "Cannot comment on an unpublished post", err)
		return
	}
	if errors.Is(err, common.ErrCommentNotFound) {
		common.Fail(c, http.StatusNotFound, "Parent comment not found", err)
		return
	}
	if errors.Is(err, common.ErrInvalidParent) {
		common.Fail(c, http.StatusBadRequest, "Parent comment belongs to a different post", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to create comment", err)
		return
	}

	common.Success(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Replaces a comment's content; owner or admin only
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                          true  "Comment ID"
// @Param        request  body  domain.UpdateCommentRequest  true  "Update payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid comment ID", err)
		return
	}

	var req domain.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.Update(middleware.GetPrincipal(c), id, &req)
	if errors.Is(err, common.ErrCommentNotFound) {
		common.Fail(c, http.StatusNotFound, "Comment not found", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.Fail(c, http.StatusForbidden, "Not authorized to update this comment", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update comment", err)
		return
	}

	common.Success(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": comment})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Soft-deletes a comment; owner or admin only
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid comment ID", err)
		return
	}

	err = h.service.Delete(middleware.GetPrincipal(c), id)
	if errors.Is(err, common.ErrCommentNotFound) {
		common.Fail(c, http.StatusNotFound, "Comment not found", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.Fail(c, http.StatusForbidden, "Not authorized to delete this comment", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete comment", err)
		return
	}

	common.Success(c, http.StatusOK, "Comment deleted successfully", nil)
}

// ApproveComment godoc
// @Summary      Moderate a comment
// @Description  Approves or rejects a comment; rejected comments disappear from listings (admin only)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                           true  "Comment ID"
// @Param        request  body  domain.ApproveCommentRequest  true  "Approval payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id}/approve [put]
func (h *CommentHandler) ApproveComment(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid comment ID", err)
		return
	}

	var req domain.ApproveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.SetApproval(id, *req.IsApproved)
	if errors.Is(err, common.ErrCommentNotFound) {
		common.Fail(c, http.StatusNotFound, "Comment not found", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update comment", err)
		return
	}

	message := "Comment approved"
	if !*req.IsApproved {
		message = "Comment rejected"
	}
	common.Success(c, http.StatusOK, message, gin.H{"comment": comment})
}
