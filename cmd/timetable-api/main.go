package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edfast/timetable-api/api/swagger"
	"github.com/edfast/timetable-api/internal/handler"
	"github.com/edfast/timetable-api/internal/ingest"
	"github.com/edfast/timetable-api/internal/middleware"
	"github.com/edfast/timetable-api/internal/service"
	"github.com/edfast/timetable-api/pkg/config"
	"github.com/edfast/timetable-api/pkg/logger"
	corsmiddleware "github.com/edfast/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edfast/timetable-api/pkg/middleware/requestid"
	"github.com/edfast/timetable-api/pkg/storage"
)

// @title EdFast Timetable API
// @version 0.1.0
// @description Timetable ingestion, conflict detection and schedule optimization
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
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	timetableSvc := service.NewTimetableService(uploads, service.TimetableConfig{
		Parser: ingest.Config{
			LabRooms:   cfg.Timetable.LabRooms,
			LabTimeRow: cfg.Timetable.LabTimeRow,
			HeaderRow:  cfg.Timetable.HeaderRow,
		},
		StoreTTL:     cfg.Timetable.StoreTTL,
		RetentionTTL: cfg.Uploads.RetentionTTL,
	}, validate, logr, metricsSvc)
	conflictSvc := service.NewConflictService(logr, metricsSvc)
	optimizerSvc := service.NewOptimizerService(cfg.Timetable.MaxCombinations, logr, metricsSvc)

	timetableHandler := handler.NewTimetableHandler(timetableSvc, conflictSvc, optimizerSvc, cfg.Uploads.MaxFileSizeBytes)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/timetables", timetableHandler.Upload)
		api.GET("/timetables", timetableHandler.List)
		api.GET("/timetables/:id", timetableHandler.Get)
		api.DELETE("/timetables/:id", timetableHandler.Delete)
		api.POST("/timetables/:id/filter", timetableHandler.Filter)
		api.POST("/timetables/:id/conflicts", timetableHandler.Conflicts)
		api.POST("/timetables/:id/optimize", timetableHandler.Optimize)
		api.GET("/timetables/:id/stats", timetableHandler.Stats)
		if cfg.Exports.Enabled {
			api.GET("/timetables/:id/export", timetableHandler.Export)
		}
	}

	go func() {
		ticker := time.NewTicker(cfg.Uploads.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			timetableSvc.CleanupUploads()
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
