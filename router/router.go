package router

import (
	"github.com/gin-gonic/gin"
	"github.com/naiveform/naiveform-backend/config"
	"github.com/naiveform/naiveform-backend/handlers"
	"github.com/naiveform/naiveform-backend/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config            *config.Config
	SubmissionHandler *handlers.SubmissionHandler
	FormHandler       *handlers.FormHandler
	ResponseHandler   *handlers.ResponseHandler
	HealthHandler     *handlers.HealthHandler
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Anonymous submission endpoints
	r.POST("/f/:formIdOrSlug", deps.SubmissionHandler.Submit)
	r.POST("/html-action/:formId", deps.SubmissionHandler.SubmitHTMLAction)

	// Owner-facing management API. Identity arrives via the X-User-ID header
	// set by the auth proxy in front of this service.
	v1 := r.Group("/v1")
	{
		formRoutes := v1.Group("/forms")
		{
			formRoutes.POST("", deps.FormHandler.CreateForm)
			formRoutes.GET("", deps.FormHandler.ListForms)
			formRoutes.GET("/:id", deps.FormHandler.GetForm)
			formRoutes.PATCH("/:id", deps.FormHandler.UpdateForm)
			formRoutes.GET("/:id/embed", deps.FormHandler.GetEmbed)
			formRoutes.GET("/:id/responses", deps.ResponseHandler.ListResponses)
			formRoutes.GET("/:id/webhook-logs", deps.ResponseHandler.ListWebhookLogs)
		}
	}

	return r
}
