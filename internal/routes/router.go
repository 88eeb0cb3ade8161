package routes

import (
	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/logger"
	"jobboard/internal/middleware"
	"jobboard/internal/usecase/account"
	"jobboard/internal/usecase/application"
	"jobboard/internal/usecase/job"
	"jobboard/internal/usecase/newsletter"
	"jobboard/internal/usecase/passwordreset"
	"jobboard/internal/usecase/profile"
	"jobboard/internal/usecase/resume"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// Dependencies carries the wired use cases the HTTP layer serves.
type Dependencies struct {
	Accounts       *account.Service
	PasswordResets *passwordreset.Service
	Jobs           *job.Service
	Applications   *application.Service
	Profiles       *profile.Service
	Newsletter     *newsletter.Service
	Resumes        *resume.Service
	HealthChecks   map[string]handler.Pinger
}

func SetupRoutes(cfg *config.Config, deps *Dependencies) *gin.Engine {
	production := cfg.Server.Environment == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, sentry, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware("/health"))
	router.Use(middleware.SecurityHeadersMiddleware(production))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware("general", cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	router.GET("/health", healthHandler.Health)

	authHandler := handler.NewAuthHandler(deps.Accounts, deps.PasswordResets)
	jobHandler := handler.NewJobHandler(deps.Jobs, deps.Applications)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	newsletterHandler := handler.NewNewsletterHandler(deps.Newsletter)
	aiHandler := handler.NewAIHandler(deps.Resumes)

	v1 := router.Group("/api/v1")
	{
		authLimited := v1.Group("")
		authLimited.Use(middleware.RateLimitMiddleware("auth", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst))
		authHandler.RegisterRoutes(authLimited)

		jobHandler.RegisterRoutes(v1, middleware.OptionalAuthMiddleware(&cfg.JWT))
		newsletterHandler.RegisterRoutes(v1)
		aiHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(&cfg.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			jobHandler.RegisterApplicationRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				jobHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
