package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/repository"
	"github.com/inkwell/blog-backend/pkg/jwt"
)

const principalKey = "principal"

// JWTAuth requires a valid bearer token. The principal is re-resolved against
// the user store so deactivated accounts are rejected even with a live token.
func JWTAuth(jwtManager *jwt.Manager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			common.Fail(c, 401, "Not authorized to access this route. Please login.", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.Fail(c, 401, "Token is invalid or expired. Please login again.", err)
			} else {
				common.Fail(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			common.Fail(c, 401, "User not found. Token is invalid.", nil)
			c.Abort()
			return
		}
		if !user.IsActive {
			common.Fail(c, 401, "User account is deactivated.", nil)
			c.Abort()
			return
		}

		c.Set(principalKey, domain.Principal{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// OptionalAuth resolves a principal when a valid bearer token is present and
// proceeds anonymously otherwise. Used on routes whose results change with
// the caller's identity (listings, draft visibility).
func OptionalAuth(jwtManager *jwt.Manager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(principalKey, domain.Principal{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context; the zero
// value means anonymous
func GetPrincipal(c *gin.Context) domain.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}
	}
	if p, ok := value.(domain.Principal); ok {
		return p
	}
	return domain.Principal{}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
