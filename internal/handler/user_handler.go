package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/service"
	"github.com/inkwell/blog-backend/pkg/ginutil"
)

// UserHandler handles admin user management requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// SetActiveRequest activation toggle payload
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Paginated listing of all accounts (admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"     default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.service.List(
		ginutil.QueryInt(c, "page", 1),
		ginutil.QueryInt(c, "limit", 0),
	)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}

	common.SuccessList(c, "users", users, meta)
}

// SetActive godoc
// @Summary      Activate or deactivate a user
// @Description  Toggles the account's active flag; deactivated users cannot log in (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string            true  "User ID"
// @Param        request  body  SetActiveRequest  true  "Activation payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/active [patch]
func (h *UserHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.SetActive(c.Param("id"), *req.IsActive)
	if errors.Is(err, common.ErrUserNotFound) {
		common.Fail(c, http.StatusNotFound, "User not found", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update user", err)
		return
	}

	message := "User activated"
	if !*req.IsActive {
		message = "User deactivated"
	}
	common.Success(c, http.StatusOK, message, gin.H{"user": user})
}
