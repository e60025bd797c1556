package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blog-backend/internal/common"
)

// RequireAdmin checks that the authenticated principal has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).IsAdmin() {
			common.Fail(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
