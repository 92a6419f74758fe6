package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/auth"
	"github.com/mkarpov/readshelf/internal/config"
	"github.com/mkarpov/readshelf/internal/database"
	"github.com/mkarpov/readshelf/internal/database/bookmarks"
	"github.com/mkarpov/readshelf/internal/database/catalog"
	"github.com/mkarpov/readshelf/internal/database/readingstate"
	http_controllers "github.com/mkarpov/readshelf/internal/http"
	"github.com/mkarpov/readshelf/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Readshelf v%s", version)

	// Application database: users, reading state, bookmarks.
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Calibre catalog, opened read-only.
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			log.Printf("Error closing catalog database: %v", err)
		}
	}()

	catalogRepo := catalog.NewRepository(cat.DB)
	stateRepo := readingstate.NewRepository(db.DB)
	bookmarkRepo := bookmarks.NewRepository(db.DB)

	// Periodic catalog health check.
	maintenance := scheduler.NewCatalogMaintenanceScheduler(cat, catalogRepo, cfg.Catalog)
	maintenanceCtx, maintenanceCancel := context.WithCancel(context.Background())
	if err := maintenance.Start(maintenanceCtx); err != nil {
		log.Fatalf("Failed to start catalog maintenance scheduler: %v", err)
	}

	// Authentication, when enabled.
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(db.DB, cfg.Auth)

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. Visit /setup to create an administrator account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	routerCfg := http_controllers.RouterConfig{
		CatalogStore:      catalogRepo,
		ReadingStateStore: stateRepo,
		BookmarkStore:     bookmarkRepo,
		Database:          db,
		CatalogDB:         cat,
		AuthService:       authService,
		AuthMiddleware:    authMiddleware,
		SessionManager:    sessionManager,
		AuthConfig:        cfg.Auth,
		CSRFSecret:        csrfSecret,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		maintenanceCancel()
		maintenance.Stop()
	}

	Serve(router, cfg, onShutdown)
}
