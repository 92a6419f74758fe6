package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/auth"
	"github.com/mkarpov/readshelf/internal/config"
	"github.com/mkarpov/readshelf/internal/database"
	"github.com/mkarpov/readshelf/internal/database/catalog"
)

// RouterConfig wires the stores and services the HTTP layer depends on.
type RouterConfig struct {
	CatalogStore      CatalogStore
	ReadingStateStore ReadingStateStore
	BookmarkStore     BookmarkStore

	Database  *database.Database
	CatalogDB *catalog.Catalog

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
}

// NewRouter builds the gin engine with the full middleware chain and all
// API routes mounted under /api/v2.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.AuthConfig.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}
	if len(cfg.CSRFSecret) > 0 && cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies, cfg.AuthService))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)

		tokenController := auth.NewAPITokenController(cfg.AuthService)
		router.POST("/api/auth/token", tokenController.GenerateToken)
		router.DELETE("/api/auth/token", tokenController.RevokeToken)
	}

	healthController := NewHealthController(cfg.Database, cfg.CatalogDB, config.APIVersion)
	booksController := NewBooksController(cfg.CatalogStore, cfg.ReadingStateStore)
	statisticsController := NewStatisticsController(cfg.ReadingStateStore)
	bookmarksController := NewBookmarksController(cfg.BookmarkStore, cfg.CatalogStore)

	api := router.Group("/api/v2")
	api.GET("/health", healthController.Status)
	api.GET("/books", booksController.GetBooks)
	api.GET("/books/read", booksController.GetReadBooks)
	api.GET("/books/reading", booksController.GetReadingBooks)
	api.GET("/books/:id", booksController.GetBook)
	api.GET("/books/:id/reading-state", booksController.GetReadingState)
	api.GET("/books/:id/progress", booksController.GetProgress)
	api.GET("/books/:id/statistics", booksController.GetStatistics)
	api.GET("/books/:id/bookmarks", bookmarksController.GetBookBookmarks)
	api.GET("/bookmarks", bookmarksController.GetAllBookmarks)
	api.GET("/statistics/summary", statisticsController.GetSummary)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})

	return router
}
