package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	gomail "gopkg.in/gomail.v2"

	"goblog/admin"
	"goblog/config"
	"goblog/handlers"
	"goblog/helper"
	"goblog/middleware"
	"goblog/repositories"
	"goblog/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger := config.InitLogger()
	defer logger.Sync()

	// Initialize database
	db := config.InitDB(cfg)

	// Optional widget cache
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Mail transport
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo, commentRepo, tagRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	tagService := services.NewTagService(tagRepo)
	searchService := services.NewSearchService(postRepo, cfg.SearchRankThreshold, cfg.SearchSimilarityFloor)
	shareService := services.NewShareService(dialer, cfg.MailFrom, cfg.BaseURL, logger)
	feedService := services.NewFeedService(postRepo, cfg.SiteName, cfg.BaseURL)
	widgetService := services.NewWidgetService(postRepo, cache, logger)

	// Back-office registry
	registry := admin.NewRegistry()
	lister := admin.NewLister(db, registry)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	postHandler := handlers.NewPostHandler(postService, httpHelper)
	commentHandler := handlers.NewCommentHandler(commentService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	searchHandler := handlers.NewSearchHandler(searchService, httpHelper)
	shareHandler := handlers.NewShareHandler(postService, shareService, httpHelper)
	feedHandler := handlers.NewFeedHandler(feedService, httpHelper)
	widgetHandler := handlers.NewWidgetHandler(widgetService, httpHelper)
	adminHandler := handlers.NewAdminHandler(lister, registry, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public reader surface
	blog := router.Group("/blog")
	{
		blog.GET("/posts", postHandler.ListPosts)
		blog.GET("/posts/:year/:month/:day/:slug", postHandler.GetPostDetail)
		blog.POST("/posts/:id/comments", commentHandler.CreateComment)
		blog.POST("/posts/:id/share", shareHandler.SharePost)
		blog.GET("/search", searchHandler.Search)
		blog.GET("/tags", tagHandler.GetTags)

		widgets := blog.Group("/widgets")
		{
			widgets.GET("/total-posts", widgetHandler.TotalPosts)
			widgets.GET("/latest-posts", widgetHandler.LatestPosts)
			widgets.GET("/most-commented-posts", widgetHandler.MostCommentedPosts)
		}
	}

	// Syndication
	router.GET("/feed", feedHandler.RSS)
	router.GET("/sitemap.xml", feedHandler.Sitemap)

	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Back-office, mounted separately and guarded
	backoffice := router.Group("/admin")
	backoffice.Use(middleware.AuthMiddleware())
	{
		backoffice.GET("/profile", authHandler.GetProfile)

		posts := backoffice.Group("/posts")
		{
			posts.POST("", postHandler.CreatePost)
			posts.PUT("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
		}

		comments := backoffice.Group("/comments")
		{
			comments.PUT("/:id/visibility", commentHandler.SetVisibility)
		}

		tags := backoffice.Group("/tags")
		{
			tags.POST("", middleware.RequireRole("admin"), tagHandler.CreateTag)
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
		}

		backoffice.GET("/entities/:entity", middleware.RequireRole("admin", "editor"), adminHandler.ListEntities)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
