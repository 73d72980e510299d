package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutor-marketplace-api/api/swagger"
	"github.com/noah-isme/tutor-marketplace-api/internal/handler"
	"github.com/noah-isme/tutor-marketplace-api/internal/middleware"
	"github.com/noah-isme/tutor-marketplace-api/internal/repository"
	"github.com/noah-isme/tutor-marketplace-api/internal/service"
	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
	"github.com/noah-isme/tutor-marketplace-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutor-marketplace-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutor-marketplace-api/pkg/middleware/requestid"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *sqlx.DB, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	var metrics *service.MetricsService
	if cfg.Features.Metrics {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	classRepo := repository.NewClassRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)

	classSvc := service.NewClassService(classRepo, validate, metrics, logr)
	connectionSvc := service.NewConnectionService(connectionRepo, tutorRepo, validate, metrics, logr)

	classHandler := handler.NewClassHandler(classSvc, nil)
	if cfg.Features.Exports {
		classHandler = handler.NewClassHandler(classSvc, service.NewExportService(classSvc, classRepo, logr, nil, nil))
	}
	subjectHandler := handler.NewSubjectHandler(service.NewSubjectService())
	connectionHandler := handler.NewConnectionHandler(connectionSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/classes", classHandler.Search)
	api.POST("/classes", classHandler.Register)
	api.GET("/classes/export", classHandler.Export)
	api.GET("/subjects", subjectHandler.List)
	api.GET("/connections", connectionHandler.Total)
	api.POST("/connections", connectionHandler.Create)

	return r
}
