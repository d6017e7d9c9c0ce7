package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/superstudio/showcase-api/api/swagger"
	"github.com/superstudio/showcase-api/internal/handler"
	"github.com/superstudio/showcase-api/internal/middleware"
	"github.com/superstudio/showcase-api/internal/repository"
	"github.com/superstudio/showcase-api/internal/service"
	"github.com/superstudio/showcase-api/internal/token"
	"github.com/superstudio/showcase-api/pkg/cache"
	"github.com/superstudio/showcase-api/pkg/config"
	"github.com/superstudio/showcase-api/pkg/database"
	"github.com/superstudio/showcase-api/pkg/logger"
	"github.com/superstudio/showcase-api/pkg/mailer"
	corsmiddleware "github.com/superstudio/showcase-api/pkg/middleware/cors"
	reqidmiddleware "github.com/superstudio/showcase-api/pkg/middleware/requestid"
	"github.com/superstudio/showcase-api/pkg/storage"
)

// @title Showcase API
// @version 1.0.0
// @description Magic-link submission and public catalog API for the student showcase site
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Redis is optional: catalog caching turns off and magic links
		// become replayable until it comes back.
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Assets.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init asset storage", "error", err)
	}
	images := storage.NewImageURLBuilder(cfg.Assets.URLSecret, cfg.Assets.URLTTL)

	codec, err := token.NewCodec(cfg.Auth.Secret, cfg.Auth.MagicLinkTTL, cfg.Auth.SessionTTL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init token codec", "error", err)
	}

	validate := validator.New()

	submissionRepo := repository.NewSubmissionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cacheRepo.Available())
	submissionSvc := service.NewSubmissionService(submissionRepo, assetRepo, store, images, logr, cfg.Assets.MaxUploadBytes)
	catalogSvc := service.NewCatalogService(catalogRepo, cacheSvc, images, logr)
	// Catalog documents are seeded out of band, so cached payloads may
	// predate this process.
	if err := catalogSvc.InvalidateCatalog(context.Background()); err != nil {
		logr.Sugar().Warnw("failed to reset catalog cache", "error", err)
	}
	mail := mailer.New(cfg.SMTP, logr)
	authSvc := service.NewAuthService(submissionRepo, codec, mail, cacheRepo, submissionSvc, validate, logr, service.AuthConfig{
		SubmissionBaseURL: cfg.Auth.SubmissionBaseURL,
		// The raw login link is a live credential. In production it never
		// leaves the server: delivery failures are logged by the mailer, not
		// returned to the caller.
		ExposeLoginURL: cfg.Env != config.EnvProduction,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	assetHandler := handler.NewAssetHandler(store, images, assetRepo)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/health", catalogHandler.Health)

		api.GET("/projects", catalogHandler.Projects)
		api.GET("/studios", catalogHandler.Studios)
		api.GET("/filters", catalogHandler.Filters)

		auth := api.Group("/auth")
		{
			auth.POST("/request-magic-link", authHandler.RequestMagicLink)
			auth.POST("/verify-magic-link", authHandler.VerifyMagicLink)
		}

		submissions := api.Group("/submissions", middleware.Session(authSvc))
		{
			submissions.GET("/me", submissionHandler.GetOwn)
			submissions.PUT("/me", submissionHandler.UpdateOwn)
			submissions.POST("/upload-image", submissionHandler.UploadImage)
		}
	}

	r.GET("/assets/:filename", assetHandler.Serve)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
