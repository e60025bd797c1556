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

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Paginated post listing. Anonymous callers see published posts only;
// @Description  admins and authors filtering on their own posts may use the status filter.
// @Tags         posts
// @Produce      json
// @Param        page      query  int     false  "Page number"        default(1)
// @Param        limit     query  int     false  "Items per page"     default(10)
// @Param        search    query  string  false  "Title substring"
// @Param        category  query  string  false  "Category filter"
// @Param        author    query  string  false  "Author ID filter"
// @Param        status    query  string  false  "Status filter (elevated callers only)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	q := service.ListPostsQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		AuthorID: c.Query("author"),
		Status:   c.Query("status"),
		Page:     ginutil.QueryInt(c, "page", 1),
		Limit:    ginutil.QueryInt(c, "limit", 0),
	}

	posts, meta, err := h.service.List(middleware.GetPrincipal(c), q)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}

	common.SuccessList(c, "posts", posts, meta)
}

// GetPost godoc
// @Summary      Get a post
// @Description  Fetches one post by numeric ID or slug. Draft posts are visible only
// @Description  to their author or an admin; a published fetch increments the view counter.
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post ID or slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.service.Get(middleware.GetPrincipal(c), c.Param("id"))
	if errors.Is(err, common.ErrPostNotFound) {
		common.Fail(c, http.StatusNotFound, "Post not found", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.Fail(c, http.StatusForbidden, "Not authorized to view this draft post", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch post", err)
		return
	}

	common.Success(c, http.StatusOK, "", gin.H{"post": post})
}

// ListMyPosts godoc
// @Summary      List own posts
// @Description  Lists the caller's posts in any status; admins see everyone's
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number"     default(1)
// @Param        limit   query  int     false  "Items per page"  default(10)
// @Param        status  query  string  false  "Status filter"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/my [get]
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	posts, meta, err := h.service.ListMine(
		middleware.GetPrincipal(c),
		c.Query("status"),
		ginutil.QueryInt(c, "page", 1),
		ginutil.QueryInt(c, "limit", 0),
	)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}

	common.SuccessList(c, "posts", posts, meta)
}

// GetStats godoc
// @Summary      Post statistics
// @Description  Totals by status and the five most viewed published posts (admin only)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /posts/stats [get]
func (h *PostHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	common.Success(c, http.StatusOK, "", gin.H{"stats": stats})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post owned by the caller; the slug is derived from the title here and never changes
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreatePostRequest  true  "Post payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(middleware.GetPrincipal(c).ID, &req)
	if errors.Is(err, common.ErrSlugConflict) {
		common.Fail(c, http.StatusConflict, "Could not allocate a unique slug", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to create post", err)
		return
	}

	common.Success(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Partial update by the post's author or an admin; author and slug are immutable
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                       true  "Post ID"
// @Param        request  body  domain.UpdatePostRequest  true  "Update payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.Update(middleware.GetPrincipal(c), id, &req)
	if errors.Is(err, common.ErrPostNotFound) {
		common.Fail(c, http.StatusNotFound, "Post not found", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.Fail(c, http.StatusForbidden, "Not authorized to update this post", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update post", err)
		return
	}

	common.Success(c, http.StatusOK, "Post updated successfully", gin.H{"post": post})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Soft-deletes a post; the record and its slug remain reserved
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	err = h.service.Delete(middleware.GetPrincipal(c), id)
	if errors.Is(err, common.ErrPostNotFound) {
		common.Fail(c, http.StatusNotFound, "Post not found", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.Fail(c, http.StatusForbidden, "Not authorized to delete this post", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete post", err)
		return
	}

	common.Success(c, http.StatusOK, "Post deleted successfully", nil)
}
