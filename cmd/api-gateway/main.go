package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/multicampussa/laams-director-api/internal/gateway"
	"github.com/multicampussa/laams-director-api/internal/handler"
	"github.com/multicampussa/laams-director-api/internal/middleware"
	"github.com/multicampussa/laams-director-api/internal/repository"
	"github.com/multicampussa/laams-director-api/internal/service"
	"github.com/multicampussa/laams-director-api/pkg/cache"
	"github.com/multicampussa/laams-director-api/pkg/config"
	"github.com/multicampussa/laams-director-api/pkg/database"
	"github.com/multicampussa/laams-director-api/pkg/logger"
	corsmiddleware "github.com/multicampussa/laams-director-api/pkg/middleware/cors"
	reqidmiddleware "github.com/multicampussa/laams-director-api/pkg/middleware/requestid"
)

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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the calendar cache stays disabled.
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, calendar cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.CalendarTTL, logr, true)
		}
	}

	examRepo := repository.NewExamRepository(db)
	examineeRepo := repository.NewExamExamineeRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	directorRepo := repository.NewDirectorRepository(db)
	checkinRepo := repository.NewDirectorAttendanceRepository(db)

	tokenSvc := service.NewTokenService(cfg.JWT.Secret)
	directorSvc := service.NewDirectorService(examRepo, examineeRepo, assignmentRepo, directorRepo, checkinRepo, cacheSvc, nil, logr)

	objectStore := gateway.NewObjectStoreClient(cfg.ObjectStore.Endpoint, cfg.ObjectStore.Bucket, cfg.ObjectStore.PublicURL, cfg.ObjectStore.Timeout, metricsSvc, logr)
	faceMatcher := gateway.NewFaceMatchClient(cfg.FaceMatch.URL, cfg.FaceMatch.Timeout, metricsSvc, logr)

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	registerDirectorRoutes(r, cfg.APIPrefix, tokenSvc, directorSvc, objectStore, faceMatcher)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerDirectorRoutes(
	r *gin.Engine,
	prefix string,
	tokenSvc *service.TokenService,
	directorSvc *service.DirectorService,
	objectStore *gateway.ObjectStoreClient,
	faceMatcher *gateway.FaceMatchClient,
) {
	calendarHandler := handler.NewCalendarHandler(directorSvc)
	examHandler := handler.NewExamHandler(directorSvc)
	examineeHandler := handler.NewExamineeHandler(directorSvc)
	assignmentHandler := handler.NewAssignmentHandler(directorSvc)
	checkinHandler := handler.NewDirectorAttendanceHandler(directorSvc)
	uploadHandler := handler.NewUploadHandler(objectStore, directorSvc)
	comparisonHandler := handler.NewComparisonHandler(faceMatcher)

	director := r.Group(prefix + "/director")
	director.Use(middleware.Auth(tokenSvc))
	director.Use(middleware.RequireDirector())

	director.POST("/examinees/upload", uploadHandler.Upload)
	director.POST("/comparison", comparisonHandler.Compare)

	director.GET("/:directorNo/exams", calendarHandler.MonthDayList)
	director.GET("/exams/unapproved", calendarHandler.UnappliedAndUnapproved)
	director.GET("/exams/possibleApply", calendarHandler.PossibleToApply)

	director.GET("/exams/:examNo", examHandler.Information)
	director.GET("/exams/:examNo/examinees", examHandler.ExamineeList)
	director.GET("/exams/:examNo/examinees/:examineeNo", examHandler.Examinee)
	director.GET("/exams/:examNo/status", examHandler.Status)

	director.PUT("/exams/:examNo/examinees/:examineeNo/attendance", examineeHandler.CheckAttendance)
	director.PUT("/exams/:examNo/examinees/:examineeNo/document", examineeHandler.CheckDocument)
	director.POST("/exams/:examNo/examinees/:examineeNo/applyCompensation", examineeHandler.ApplyCompensation)

	director.POST("/exams/request", assignmentHandler.Request)
	director.POST("/exams/:examNo/:directorNo/attendance", checkinHandler.CheckIn)
	director.POST("/exams/attendance/home", checkinHandler.CheckInHome)
}
