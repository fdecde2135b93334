package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "legalynx/docs"
	"legalynx/internal/handler"
	"legalynx/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Analysis *handler.AnalysisHandler
	Bulk     *handler.BulkHandler
	Template *handler.TemplateHandler
	Search   *handler.SearchHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Liveness)
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// Analysis
	r.POST("/analyze", h.Analysis.Analyze)
	r.POST("/upload", h.Analysis.Upload)
	r.POST("/bulk-analyze", h.Bulk.Analyze)
	r.POST("/bulk-analyze/export", h.Bulk.Export)
	r.POST("/semantic-search", h.Search.Search)
	r.GET("/templates", h.Template.List)

	// History
	analyses := r.Group("/analyses")
	analyses.GET("", h.Analysis.List)
	analyses.GET("/:id", h.Analysis.GetByID)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
