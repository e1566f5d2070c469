package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/sales-api/internal/config"
	domainRepo "github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	Sale   *handler.SaleHandler
	Report *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, deps)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Cfg.Cookie.Name))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerSaleRoutes(protected, h, deps)
		registerReportRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)

		authed := auth.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Cfg.Cookie.Name))
		authed.GET("/profile", h.Auth.GetProfile)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		TTL:    deps.Cfg.Idempotency.TTL,
		Logger: deps.Logger,
	})

	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", idempotent, h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	{
		reports.GET("/table", h.Report.Table)
		reports.GET("/chart", h.Report.Chart)
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/text", h.Report.Text)
		reports.GET("/excel", h.Report.Excel)
		reports.GET("/pdf", h.Report.PDF)
	}
}
