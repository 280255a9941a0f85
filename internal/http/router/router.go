package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-builder/internal/config"
	"github.com/ignatzorin/proposal-builder/internal/http/handlers"
	"github.com/ignatzorin/proposal-builder/internal/http/middleware"
	"github.com/ignatzorin/proposal-builder/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	proposalHandler *handlers.ProposalHandler,
	templateHandler *handlers.TemplateHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/templates", templateHandler.ListTemplates)
	api.GET("/templates/:name", templateHandler.GetTemplate)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/auth/profile", authHandler.Profile)

		protected.GET("/proposals", proposalHandler.ListProposals)
		protected.POST("/proposals", proposalHandler.CreateProposal)
		protected.GET("/proposals/:id", proposalHandler.GetProposal)
		protected.PUT("/proposals/:id", proposalHandler.UpdateProposal)
		protected.DELETE("/proposals/:id", proposalHandler.DeleteProposal)
		protected.PUT("/proposals/:id/sections/:sectionId", proposalHandler.UpdateSection)
		protected.PUT("/proposals/:id/sections/:sectionId/elements/:elementId", proposalHandler.UpdateElement)

		protected.POST("/media/photos", mediaHandler.UploadPhoto)
	}

	return r
}
