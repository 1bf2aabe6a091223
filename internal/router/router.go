package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-admin-api/internal/handler"
	"github.com/noah-isme/tutoring-admin-api/internal/middleware"
	"github.com/noah-isme/tutoring-admin-api/internal/repository"
	"github.com/noah-isme/tutoring-admin-api/internal/service"
	"github.com/noah-isme/tutoring-admin-api/pkg/config"
	"github.com/noah-isme/tutoring-admin-api/pkg/export"
	"github.com/noah-isme/tutoring-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutoring-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutoring-admin-api/pkg/middleware/requestid"
)

const cachePrefix = "tutoring:"

// Deps holds the shared resources the HTTP layer is built from.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *sqlx.DB
	Redis   redis.UniversalClient
	Metrics *service.MetricsService
}

// Services groups the use-cases behind the routes.
type Services struct {
	Auth          *service.AuthService
	Students      *service.StudentService
	Classes       *service.ClassService
	Payments      *service.PaymentService
	ConsumedClass *service.ConsumedClassService
	Statistics    *service.StatisticsService
	Attendance    *service.AttendanceService
	Export        *service.ExportService
}

// NewServices wires repositories into services.
func NewServices(deps Deps) *Services {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	validate := validator.New()

	var cache *service.CacheService
	if deps.Redis != nil {
		cache = service.NewCacheService(
			repository.NewCacheRepository(deps.Redis, cachePrefix),
			deps.Metrics,
			deps.Config.Statistics.CacheTTL,
			log,
			deps.Config.Statistics.CacheEnabled,
		)
	}

	stats := service.NewStatisticsService(repository.NewStatisticsRepository(deps.DB), cache, deps.Metrics, log)
	consumed := repository.NewConsumedClassRepository(deps.DB)

	return &Services{
		Auth:          service.NewAuthService(repository.NewUserRepository(deps.DB), validate, log),
		Students:      service.NewStudentService(repository.NewStudentRepository(deps.DB), stats, log),
		Classes:       service.NewClassService(repository.NewClassRepository(deps.DB), log),
		Payments:      service.NewPaymentService(repository.NewPaymentRepository(deps.DB), stats, log),
		ConsumedClass: service.NewConsumedClassService(consumed, stats),
		Statistics:    stats,
		Attendance:    service.NewAttendanceService(consumed, stats, deps.Metrics, validate, log),
		Export:        service.NewExportService(stats, export.NewRenderer()),
	}
}

// New builds the gin engine with every route registered.
func New(deps Deps, svc *Services) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))

	var store handler.Pinger
	if deps.DB != nil {
		store = deps.DB
	}
	metricsHandler := handler.NewMetricsHandler(deps.Metrics, store)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	r.POST("/login", authHandler.Login)

	students := handler.NewStudentHandler(svc.Students)
	r.GET("/students", students.List)
	r.POST("/students", students.Create)
	r.GET("/students/:id", students.Get)
	r.PUT("/students/:id", students.Update)
	r.DELETE("/students/:id", students.Delete)

	classes := handler.NewClassHandler(svc.Classes)
	r.GET("/classes", classes.List)
	r.POST("/classes", classes.Create)
	r.GET("/classes/:id", classes.Get)
	r.PUT("/classes/:id", classes.Update)
	r.DELETE("/classes/:id", classes.Delete)

	payments := handler.NewPaymentHandler(svc.Payments)
	r.GET("/payments", payments.List)
	r.POST("/payments", payments.Create)
	r.GET("/payments/:id", payments.Get)
	r.PUT("/payments/:id", payments.Update)
	r.DELETE("/payments/:id", payments.Delete)

	consumed := handler.NewConsumedClassHandler(svc.ConsumedClass)
	r.GET("/consumed-classes", consumed.List)
	r.POST("/consumed-classes", consumed.Create)
	r.GET("/consumed-classes/:id", consumed.Get)
	r.DELETE("/consumed-classes/:id", consumed.Delete)

	stats := handler.NewStatisticsHandler(svc.Statistics, svc.Export)
	r.GET("/statistics", stats.Students)
	r.GET("/statistics/export", stats.Export)
	r.GET("/statistics/consumed-history/:student_id", stats.ConsumedHistory)

	attendance := handler.NewAttendanceHandler(svc.Attendance)
	r.POST("/class-attendance", attendance.Register)

	return r
}
