package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/container"
	"github.com/joshua-takyi/devlink/internal/handlers"
	"github.com/joshua-takyi/devlink/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(container.Tokens, container.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "devlink-api",
			})
		})
	}

	users := api.Group("/users")
	{
		users.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"msg": "user functionality works!"})
		})
		users.POST("/register", handlers.RegisterUser(container.UserService))
		users.POST("/login", container.LoginLimiter.Middleware(middleware.ByClientIP), handlers.LoginUser(container.UserService))
		users.GET("/current", auth, handlers.GetCurrentUser(container.UserService))
	}

	profile := api.Group("/profile")
	{
		profile.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"msg": "Profile functionality works!"})
		})
		profile.GET("/all", handlers.GetAllProfiles(container.ProfileService))
		profile.GET("/handle/:handle", handlers.GetProfileByHandle(container.ProfileService))
		profile.GET("/user/:user_id", handlers.GetProfileByUser(container.ProfileService))
		profile.GET("/github/:username", handlers.GetGithubRepos(container.GithubService))

		profile.GET("", auth, handlers.GetCurrentProfile(container.ProfileService))
		profile.POST("", auth, handlers.SaveProfile(container.ProfileService))
		profile.DELETE("", auth, handlers.DeleteAccount(container.ProfileService))
		profile.POST("/experience", auth, handlers.AddExperience(container.ProfileService))
		profile.DELETE("/experience/:id", auth, handlers.DeleteExperience(container.ProfileService))
		profile.POST("/education", auth, handlers.AddEducation(container.ProfileService))
		profile.DELETE("/education/:id", auth, handlers.DeleteEducation(container.ProfileService))
	}

	posts := api.Group("/posts")
	{
		posts.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"msg": "Posts functionality works!"})
		})
		posts.GET("", handlers.ListPosts(container.PostService))
		posts.GET("/:id", handlers.GetPost(container.PostService))
	}

	protectedPosts := posts.Group("")
	protectedPosts.Use(auth)
	{
		protectedPosts.POST("", container.PostLimiter.Middleware(middleware.ByUser), handlers.CreatePost(container.PostService))
		protectedPosts.DELETE("/:id", handlers.DeletePost(container.PostService))
		protectedPosts.POST("/like/:id", handlers.LikePost(container.PostService))
		protectedPosts.POST("/unlike/:id", handlers.UnlikePost(container.PostService))
		protectedPosts.POST("/comment/:id", handlers.AddComment(container.PostService))
		protectedPosts.DELETE("/comment/:id/:comment_id", handlers.DeleteComment(container.PostService))
	}

	return r
}
