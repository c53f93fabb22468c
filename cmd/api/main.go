package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusdash/course-api/api/swagger"
	"github.com/campusdash/course-api/internal/handler"
	"github.com/campusdash/course-api/internal/ingest"
	"github.com/campusdash/course-api/internal/middleware"
	"github.com/campusdash/course-api/internal/repository"
	"github.com/campusdash/course-api/internal/service"
	"github.com/campusdash/course-api/pkg/cache"
	"github.com/campusdash/course-api/pkg/config"
	"github.com/campusdash/course-api/pkg/jobs"
	"github.com/campusdash/course-api/pkg/logger"
	corsmiddleware "github.com/campusdash/course-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusdash/course-api/pkg/middleware/requestid"
)

// @title Course Data API
// @version 1.0.0
// @description Read-only query API over the preprocessed course dataset
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// run owns the defers (queue drain, log flush); exit only after they
	// have executed.
	if err := run(cfg, logr); err != nil {
		logr.Sugar().Errorw("server exited", "error", err)
		_ = logr.Sync()
		os.Exit(1)
	}
	_ = logr.Sync()
}

func run(cfg *config.Config, logr *zap.Logger) error {
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, serving without response cache", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	snapshots, err := repository.NewSnapshotRepository(cfg.Data.ArtifactFile, logr)
	if err != nil {
		return fmt.Errorf("init snapshot repository: %w", err)
	}

	courseSvc := service.NewCourseService(nil, cacheSvc, logr)
	if dataset, err := snapshots.Load(); err != nil {
		logr.Sugar().Warnw("no dataset artifact loaded, serving 503 until refreshed", "error", err)
	} else {
		courseSvc.Reload(context.Background(), dataset)
	}

	preprocessSvc := service.NewPreprocessService(
		ingest.NewXLSXReader(),
		service.NewCatalogService(logr),
		service.NewOfferingsService(logr),
		service.NewPrereqService(),
		snapshots,
		logr,
		service.PreprocessConfig{CatalogFile: cfg.Data.CatalogFile, OfferingsFile: cfg.Data.OfferingsFile},
	)

	var refreshSvc *service.RefreshService
	queue := jobs.NewQueue("dataset-refresh", func(ctx context.Context, job jobs.Job) error {
		return refreshSvc.HandleJob(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Refresh.Workers,
		MaxRetries: cfg.Refresh.MaxRetries,
		RetryDelay: cfg.Refresh.RetryDelay,
		Logger:     logr,
	})
	refreshSvc = service.NewRefreshService(queue, preprocessSvc, courseSvc, metricsSvc, logr)
	queue.Start(context.Background())
	defer queue.Stop()

	exportSvc := service.NewExportService(courseSvc, validator.New(), logr)

	courseHandler := handler.NewCourseHandler(courseSvc)
	adminHandler := handler.NewAdminHandler(refreshSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/list", courseHandler.CourseNumbers)
		api.GET("/courses/subjects", courseHandler.Subjects)
		api.GET("/courses/subjects/:subject", courseHandler.GetBySubject)
		api.GET("/courses/stats/enrollment", courseHandler.EnrollmentStats)
		if cfg.Export.Enabled {
			api.GET("/courses/export", exportHandler.Enrollment)
		}
		api.GET("/courses/:courseKey", courseHandler.GetByKey)
		api.POST("/admin/refresh", adminHandler.Refresh)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	return r.Run(addr)
}
