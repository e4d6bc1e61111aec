package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/cache"
	"github.com/tesseract-hub/storefront-service/internal/config"
	"github.com/tesseract-hub/storefront-service/internal/events"
	"github.com/tesseract-hub/storefront-service/internal/handlers"
	"github.com/tesseract-hub/storefront-service/internal/health"
	"github.com/tesseract-hub/storefront-service/internal/middleware"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
	"github.com/tesseract-hub/storefront-service/internal/services"
	"github.com/tesseract-hub/storefront-service/internal/workers"
)

// @title Storefront Customization API
// @version 1.0
// @description Multi-tenant storefront customization service: theme resolution, drafts, version history, banners and permissions
// @termsOfService http://swagger.io/terms/
// @contact.name Tesseract Hub Team
// @contact.email dev@tesseract-hub.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8086
// @BasePath /
// @schemes http https
func main() {
	// Check if running health check
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8086/livez")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Run database migrations
	if err := runMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis client (graceful degradation if unavailable)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (caching disabled)", err)
		} else {
			redisClient = redis.NewClient(opt)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (caching disabled)", err)
				redisClient = nil
			} else {
				log.Println("✓ Redis connection established")
			}
		}
	}

	// Initialize NATS events publisher (graceful degradation if unavailable)
	var publisher *events.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = events.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
			publisher = nil
		} else {
			log.Println("✓ NATS events publisher initialized")
		}
	}

	// Caches
	resolverCache := cache.NewResolverCache(redisClient)
	previewStore := cache.NewPreviewStore(redisClient, time.Duration(cfg.Publisher.PreviewTTLMinutes)*time.Minute)

	// Repositories
	tenantRepo := repository.NewTenantRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)

	// Services
	tenantResolver := services.NewTenantResolver(tenantRepo, resolverCache, logger)
	themeService := services.NewThemeService(themeRepo, resolverCache, previewStore, publisher, logger)
	draftService := services.NewDraftService(draftRepo, versionRepo, publisher, logger)
	versionService := services.NewVersionService(versionRepo, draftRepo, publisher, logger)
	bannerService := services.NewBannerService(bannerRepo, publisher, logger)
	assetService := services.NewAssetService(assetRepo, logger)
	permissionService := services.NewPermissionService(permissionRepo, logger)

	// Handlers
	tenantHandler := handlers.NewTenantHandler(tenantResolver)
	themeHandler := handlers.NewThemeHandler(themeService)
	draftHandler := handlers.NewDraftHandler(draftService)
	versionHandler := handlers.NewVersionHandler(versionService)
	bannerHandler := handlers.NewBannerHandler(bannerService)
	assetHandler := handlers.NewAssetHandler(assetService)
	permissionHandler := handlers.NewPermissionHandler(permissionService)

	// Background publisher for scheduled drafts
	schedulePublisher := workers.NewSchedulePublisher(draftService, time.Duration(cfg.Publisher.ScanIntervalSeconds)*time.Second, logger)
	schedulePublisher.Start()

	// Initialize health checker
	healthChecker := health.NewHealthChecker(db, cfg.App.Version)

	// Initialize Gin router
	router := setupRouter(tenantHandler, themeHandler, draftHandler, versionHandler, bannerHandler, assetHandler, permissionHandler, permissionService, healthChecker)

	// Mark service as ready
	healthChecker.SetReady(true)

	serverAddr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("🚀 Storefront Service starting on %s", serverAddr)
	log.Printf("📚 API Documentation available at http://%s/swagger/index.html", serverAddr)
	log.Printf("🏥 Health endpoints: /health, /livez, /readyz")
	log.Printf("📊 Metrics available at http://%s/metrics", serverAddr)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		schedulePublisher.Stop()
		publisher.Close()
		os.Exit(0)
	}()

	if err := router.Run(serverAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// initializeDatabase establishes database connection
func initializeDatabase(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	dsn := dbConfig.DSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established successfully")
	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.ThemeSettings{},
		&models.Draft{},
		&models.ConfigurationVersion{},
		&models.Banner{},
		&models.Logo{},
		&models.Asset{},
		&models.UserPermission{},
	); err != nil {
		log.Printf("⚠️  AutoMigrate warning: %v", err)
		// Don't fail - the table may already exist with slightly different schema
	}

	log.Println("✅ Database migrations completed successfully")
	return nil
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	tenantHandler *handlers.TenantHandler,
	themeHandler *handlers.ThemeHandler,
	draftHandler *handlers.DraftHandler,
	versionHandler *handlers.VersionHandler,
	bannerHandler *handlers.BannerHandler,
	assetHandler *handlers.AssetHandler,
	permissionHandler *handlers.PermissionHandler,
	permissionService *services.PermissionService,
	healthChecker *health.HealthChecker,
) *gin.Engine {
	// Role guards for mutating admin routes
	canEdit := handlers.RequireAction(permissionService, models.ActionEdit)
	canPublish := handlers.RequireAction(permissionService, models.ActionPublish)
	canManageAssets := handlers.RequireAction(permissionService, models.ActionManageAssets)
	canManagePermissions := handlers.RequireAction(permissionService, models.ActionManagePermissions)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.SetupCORS())
	router.Use(health.MetricsMiddleware())

	// Health and observability endpoints (no auth required)
	router.GET("/health", healthChecker.HealthHandler)
	router.GET("/livez", healthChecker.LivezHandler)
	router.GET("/readyz", healthChecker.ReadyzHandler)
	router.GET("/metrics", health.MetricsHandler())

	// ========================================
	// Public API routes (no auth required)
	// Read-only endpoints consumed by public storefronts
	// ========================================
	publicV1 := router.Group("/api/v1/public")
	publicV1.Use(middleware.TenantMiddleware())
	publicV1.Use(middleware.PreviewMiddleware())
	{
		publicV1.GET("/tenants/resolve", tenantHandler.ResolveTenant)
		publicV1.GET("/theme/default", themeHandler.GetDefaultTheme)
		publicV1.GET("/tenants/by-slug/:slug", tenantHandler.GetTenantBySlug)
		publicV1.GET("/tenants/:tenantId/theme", themeHandler.ResolveTheme)
		publicV1.GET("/tenants/:tenantId/banners", bannerHandler.ListBanners)
		publicV1.GET("/tenants/:tenantId/logos", assetHandler.ListLogos)
		publicV1.GET("/tenants/:tenantId/assets/by-name/:filename", assetHandler.ServeAsset)
	}

	// API v1 routes (admin surface)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())
	v1.Use(middleware.TenantMiddleware())
	v1.Use(middleware.PreviewMiddleware())
	{
		v1.GET("/tenants/resolve", tenantHandler.ResolveTenant)
		v1.GET("/users/:userId/has-tenant", tenantHandler.HasTenant)
		v1.GET("/theme/default", themeHandler.GetDefaultTheme)

		tenants := v1.Group("/tenants/:tenantId")
		{
			tenants.GET("", tenantHandler.GetTenant)

			// Theme
			tenants.GET("/theme", themeHandler.ResolveTheme)
			tenants.PUT("/theme", canEdit, themeHandler.UpdateTheme)
			tenants.GET("/theme/settings", themeHandler.GetThemeSettings)
			tenants.POST("/theme/preview", canEdit, themeHandler.StartPreview)
			tenants.DELETE("/theme/preview/:token", canEdit, themeHandler.EndPreview)

			// Drafts
			tenants.GET("/drafts", draftHandler.ListDrafts)
			tenants.POST("/drafts", canEdit, draftHandler.CreateDraft)
			tenants.GET("/drafts/:draftId", draftHandler.GetDraft)
			tenants.PATCH("/drafts/:draftId", canEdit, draftHandler.UpdateDraft)
			tenants.DELETE("/drafts/:draftId", canEdit, draftHandler.DeleteDraft)
			tenants.POST("/drafts/:draftId/publish", canPublish, draftHandler.PublishDraft)
			tenants.POST("/drafts/:draftId/schedule", canPublish, draftHandler.ScheduleDraft)
			tenants.POST("/drafts/:draftId/unschedule", canPublish, draftHandler.UnscheduleDraft)
			tenants.POST("/drafts/:draftId/submit", canEdit, draftHandler.SubmitDraft)
			tenants.POST("/drafts/:draftId/return", canPublish, draftHandler.ReturnDraft)
			tenants.POST("/drafts/:draftId/archive", canPublish, draftHandler.ArchiveDraft)

			// Versions
			tenants.GET("/versions", versionHandler.ListVersions)
			tenants.GET("/versions/compare", versionHandler.CompareVersions)
			tenants.GET("/versions/:number", versionHandler.GetVersion)
			tenants.POST("/versions/:number/restore", canPublish, versionHandler.RestoreVersion)

			// Banners
			tenants.GET("/banners", bannerHandler.ListBanners)
			tenants.POST("/banners", canManageAssets, bannerHandler.CreateBanner)
			tenants.POST("/banners/reorder", canManageAssets, bannerHandler.ReorderBanners)
			tenants.PATCH("/banners/:bannerId", canManageAssets, bannerHandler.UpdateBanner)
			tenants.DELETE("/banners/:bannerId", canManageAssets, bannerHandler.DeleteBanner)

			// Logos
			tenants.GET("/logos", assetHandler.ListLogos)
			tenants.POST("/logos", canManageAssets, assetHandler.CreateLogo)
			tenants.PATCH("/logos/:logoId", canManageAssets, assetHandler.UpdateLogo)
			tenants.DELETE("/logos/:logoId", canManageAssets, assetHandler.DeleteLogo)

			// Assets
			tenants.GET("/assets", assetHandler.ListAssets)
			tenants.POST("/assets", canManageAssets, assetHandler.RegisterAsset)
			tenants.GET("/assets/by-name/:filename", assetHandler.ServeAsset)
			tenants.DELETE("/assets/:assetId", canManageAssets, assetHandler.DeleteAsset)

			// Permissions
			tenants.GET("/permissions", permissionHandler.ListPermissions)
			tenants.POST("/permissions", canManagePermissions, permissionHandler.GrantPermission)
			tenants.GET("/permissions/:userId/check", permissionHandler.CheckPermission)
			tenants.PATCH("/permissions/:userId", canManagePermissions, permissionHandler.UpdatePermission)
			tenants.DELETE("/permissions/:userId", canManagePermissions, permissionHandler.RevokePermission)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
