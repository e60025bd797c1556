package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/inkwell/blog-backend/internal/handler"
	"github.com/inkwell/blog-backend/internal/middleware"
	"github.com/inkwell/blog-backend/internal/repository"
	"github.com/inkwell/blog-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	jwtManager *jwt.Manager,
	users repository.UserRepository,
) {
	authRequired := middleware.JWTAuth(jwtManager, users)
	authOptional := middleware.OptionalAuth(jwtManager, users)
	adminOnly := middleware.RequireAdmin()

	// Operational endpoints
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", authRequired, authHandler.Me)
	}

	// User management (admin)
	usersGroup := api.Group("/users", authRequired, adminOnly)
	{
		usersGroup.GET("", userHandler.ListUsers)
		usersGroup.PATCH("/:id/active", userHandler.SetActive)
	}

	// Posts
	posts := api.Group("/posts")
	{
		posts.GET("", authOptional, postHandler.ListPosts)
		posts.GET("/my", authRequired, postHandler.ListMyPosts)
		posts.GET("/stats", authRequired, adminOnly, postHandler.GetStats)
		posts.POST("", authRequired, postHandler.CreatePost)

		// :id also accepts a slug on reads
		posts.GET("/:id", authOptional, postHandler.GetPost)
		posts.PUT("/:id", authRequired, postHandler.UpdatePost)
		posts.DELETE("/:id", authRequired, postHandler.DeletePost)

		posts.GET("/:id/comments", commentHandler.ListComments)
		posts.POST("/:id/comments", authRequired, commentHandler.CreateComment)
	}

	// Comments
	comments := api.Group("/comments")
	{
		comments.PUT("/:id", authRequired, commentHandler.UpdateComment)
		comments.DELETE("/:id", authRequired, commentHandler.DeleteComment)
		comments.PUT("/:id/approve", authRequired, adminOnly, commentHandler.ApproveComment)
	}
}
