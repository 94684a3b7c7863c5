package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"goblog/admin"
	"goblog/config"
	"goblog/handlers"
	"goblog/helper"
	"goblog/middleware"
	"goblog/models"
	"goblog/repositories"
	"goblog/services"
)

type recordingDialer struct {
	sent []*gomail.Message
	fail bool
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.fail {
		return fmt.Errorf("smtp unreachable")
	}
	d.sent = append(d.sent, m...)
	return nil
}

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	dialer *recordingDialer
	token  string
	postID uint
}

func (suite *IntegrationTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}
	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.db = db
	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	suite.dialer = &recordingDialer{}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	postRepo := repositories.NewPostRepository(suite.db)
	commentRepo := repositories.NewCommentRepository(suite.db)
	tagRepo := repositories.NewTagRepository(suite.db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo, commentRepo, tagRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	tagService := services.NewTagService(tagRepo)
	searchService := services.NewSearchService(postRepo, 0.3, 0.1)
	shareService := services.NewShareService(suite.dialer, "noreply@example.com", "http://example.com", logger)
	feedService := services.NewFeedService(postRepo, "Test blog", "http://example.com")
	widgetService := services.NewWidgetService(postRepo, nil, logger)

	registry := admin.NewRegistry()
	lister := admin.NewLister(suite.db, registry)

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

	router := gin.New()

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

	router.GET("/feed", feedHandler.RSS)
	router.GET("/sitemap.xml", feedHandler.Sitemap)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	backoffice := router.Group("/admin")
	backoffice.Use(middleware.AuthMiddleware())
	{
		backoffice.GET("/profile", authHandler.GetProfile)
		backoffice.POST("/posts", postHandler.CreatePost)
		backoffice.PUT("/posts/:id", postHandler.UpdatePost)
		backoffice.DELETE("/posts/:id", postHandler.DeletePost)
		backoffice.PUT("/comments/:id/visibility", commentHandler.SetVisibility)
		backoffice.POST("/tags", middleware.RequireRole("admin"), tagHandler.CreateTag)
		backoffice.GET("/entities/:entity", middleware.RequireRole("admin", "editor"), adminHandler.ListEntities)
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (suite *IntegrationTestSuite) Test01RegisterAndLogin() {
	w := suite.request(http.MethodPost, "/auth/register", "", map[string]interface{}{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	suite.Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	suite.NotEmpty(data["token"])
	suite.token = data["token"].(string)
}

func (suite *IntegrationTestSuite) Test02CreatePost() {
	w := suite.request(http.MethodPost, "/admin/posts", suite.token, map[string]interface{}{
		"title":            "Go Concurrency Patterns",
		"body":             "Channels and goroutines, **explained**.",
		"status":           "published",
		"publication_date": "2025-01-10T10:00:00Z",
		"tags":             []string{"go", "concurrency"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &post))
	suite.Equal("go-concurrency-patterns", post.Slug)
	suite.Len(post.Tags, 2)
	suite.postID = post.ID

	// Same slug on the same date must be rejected.
	w = suite.request(http.MethodPost, "/admin/posts", suite.token, map[string]interface{}{
		"title":            "Go Concurrency Patterns",
		"body":             "dupe",
		"publication_date": "2025-01-10T18:00:00Z",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) Test03PublicListing() {
	w := suite.request(http.MethodGet, "/blog/posts", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	posts := data["posts"].([]interface{})
	suite.Len(posts, 1)

	pagination := data["pagination"].(map[string]interface{})
	suite.EqualValues(1, pagination["total_records"])

	// Tag filter by slug, unknown tag is a 404.
	w = suite.request(http.MethodGet, "/blog/posts?tag=go", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/blog/posts?tag=ruby", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) Test04PostDetail() {
	w := suite.request(http.MethodGet, "/blog/posts/2025/1/10/go-concurrency-patterns", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	post := data["post"].(map[string]interface{})
	suite.Equal("Go Concurrency Patterns", post["title"])

	w = suite.request(http.MethodGet, "/blog/posts/2025/1/11/go-concurrency-patterns", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) Test05CommentValidationAndCreation() {
	path := fmt.Sprintf("/blog/posts/%d/comments", suite.postID)

	// Malformed email comes back as a field-level error, nothing stored.
	w := suite.request(http.MethodPost, path, "", map[string]interface{}{
		"name":  "Bob",
		"email": "not-an-email",
		"body":  "hello",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.EqualValues(403, suite.decode(w)["code"])

	var count int64
	suite.db.Model(&models.Comment{}).Count(&count)
	suite.EqualValues(0, count)

	w = suite.request(http.MethodPost, path, "", map[string]interface{}{
		"name":  "Bob",
		"email": "bob@example.com",
		"body":  "Great writeup",
	})
	suite.Equal(http.StatusOK, w.Code)

	suite.db.Model(&models.Comment{}).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *IntegrationTestSuite) Test06SharePost() {
	path := fmt.Sprintf("/blog/posts/%d/share", suite.postID)

	// Validation failure must not reach the mail transport.
	w := suite.request(http.MethodPost, path, "", map[string]interface{}{
		"name":  "Ana",
		"email": "broken",
		"to":    "friend@example.com",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Empty(suite.dialer.sent)

	w = suite.request(http.MethodPost, path, "", map[string]interface{}{
		"name":     "Ana",
		"email":    "ana@example.com",
		"to":       "friend@example.com",
		"comments": "must read",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Require().Len(suite.dialer.sent, 1)
	suite.Equal([]string{"friend@example.com"}, suite.dialer.sent[0].GetHeader("To"))

	// Transport failure is a delivery error, distinct from validation.
	suite.dialer.fail = true
	w = suite.request(http.MethodPost, path, "", map[string]interface{}{
		"name":  "Ana",
		"email": "ana@example.com",
		"to":    "friend@example.com",
	})
	suite.Equal(http.StatusBadGateway, w.Code)
	suite.dialer.fail = false
}

func (suite *IntegrationTestSuite) Test07EmptySearchQuery() {
	w := suite.request(http.MethodGet, "/blog/search?query=++&mode=ranked", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	suite.EqualValues(0, data["total"])
}

func (suite *IntegrationTestSuite) Test08Syndication() {
	w := suite.request(http.MethodGet, "/feed", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "rss")
	suite.Contains(w.Body.String(), "<title>Test blog</title>")
	suite.Contains(w.Body.String(), "go-concurrency-patterns")
	// Markdown emphasis stripped from the preview.
	suite.NotContains(w.Body.String(), "**explained**")

	w = suite.request(http.MethodGet, "/sitemap.xml", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "sitemaps.org/schemas/sitemap")
	suite.Contains(w.Body.String(), "<changefreq>weekly</changefreq>")
}

func (suite *IntegrationTestSuite) Test09Widgets() {
	w := suite.request(http.MethodGet, "/blog/widgets/total-posts", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	suite.EqualValues(1, data["total_posts"])

	w = suite.request(http.MethodGet, "/blog/widgets/most-commented-posts", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) Test10AdminEntityLists() {
	w := suite.request(http.MethodGet, "/admin/entities/posts?status=published", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := suite.decode(w)["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	suite.Require().Len(rows, 1)

	row := rows[0].(map[string]interface{})
	suite.Equal("go-concurrency-patterns", row["slug"])
	// Only the declared display fields come back.
	_, hasBody := row["body"]
	suite.False(hasBody)

	// Search across the declared fields.
	w = suite.request(http.MethodGet, "/admin/entities/posts?q=concurrency", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/admin/entities/unknown", suite.token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	// No token, no back-office.
	w = suite.request(http.MethodGet, "/admin/entities/posts", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) Test11CommentModeration() {
	var comment models.Comment
	suite.Require().NoError(suite.db.First(&comment).Error)

	path := fmt.Sprintf("/admin/comments/%d/visibility", comment.ID)
	w := suite.request(http.MethodPut, path, suite.token, map[string]interface{}{
		"is_visible": false,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/blog/posts/2025/1/10/go-concurrency-patterns", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "Great writeup")

	detailData := suite.decode(w)["data"].(map[string]interface{})
	comments := detailData["comments"].([]interface{})
	suite.Empty(comments)
}

func (suite *IntegrationTestSuite) Test12PaginationClamp() {
	w := suite.request(http.MethodGet, "/blog/posts?page=999999", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	suite.EqualValues(1, pagination["current_page"])

	posts := data["posts"].([]interface{})
	suite.NotEmpty(posts)

	sameAsFirst := suite.request(http.MethodGet, "/blog/posts?page=not-a-number", "", nil)
	suite.Equal(http.StatusOK, sameAsFirst.Code)
	first := suite.decode(sameAsFirst)["data"].(map[string]interface{})
	suite.EqualValues(1, first["pagination"].(map[string]interface{})["current_page"])
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
