package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/projectsclub/collab-api/internal/constants"
	"github.com/projectsclub/collab-api/internal/handlers"
	"github.com/projectsclub/collab-api/internal/metrics"
	"github.com/projectsclub/collab-api/internal/middleware"
	"github.com/projectsclub/collab-api/internal/ratelimit"
	"github.com/projectsclub/collab-api/internal/services"
	"github.com/projectsclub/collab-api/internal/token"
)

// Deps is everything the HTTP layer needs. Metrics may be nil. Client IPs are
// taken from X-Forwarded-For only when the peer is in TrustedProxies.
type Deps struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Tokens         *token.Manager
	Limiters       ratelimit.Factory
	Metrics        *metrics.Metrics
	CORSOrigins    []string
	TrustedProxies []string

	Auth         *services.AuthService
	Profiles     *services.ProfileService
	Projects     *services.ProjectService
	Applications *services.ApplicationService
	HTF          *services.HTFService
}

// New builds the gin engine with every route mounted.
func New(d Deps) (*gin.Engine, error) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limiters := d.Limiters
	if limiters == nil {
		limiters = ratelimit.MemoryFactory{}
	}

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(middleware.BodyLimit(constants.MaxRequestBodySize))

	authHandler := handlers.NewAuthHandler(d.Auth)
	profileHandler := handlers.NewProfileHandler(d.Profiles)
	projectHandler := handlers.NewProjectHandler(d.Projects)
	applicationHandler := handlers.NewApplicationHandler(d.Applications)
	htfHandler := handlers.NewHTFHandler(d.HTF)
	healthHandler := handlers.NewHealthHandler(d.DB)

	requireAuth := middleware.RequireAuth(d.Tokens)
	optionalAuth := middleware.OptionalAuth(d.Tokens)
	throttle := func(name string, limit int) gin.HandlerFunc {
		policy := ratelimit.Policy{Name: name, Limit: limit, Window: constants.RateLimitWindow}
		return middleware.RateLimit(limiters.New(policy), log)
	}

	// Health check endpoint
	r.GET("/health", healthHandler.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", throttle("login", constants.LoginRateLimit), authHandler.Login)
			auth.POST("/request-password-reset", throttle("request_password_reset", constants.ResetRequestRateLimit), authHandler.RequestPasswordReset)
			auth.POST("/reset-password", throttle("reset_password", constants.ResetPasswordRateLimit), authHandler.ResetPassword)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.DELETE("/account", requireAuth, authHandler.DeleteAccount)
		}

		// Profile routes; avatar reads are public
		profile := api.Group("/profile")
		{
			for _, root := range []string{"", "/"} {
				profile.GET(root, requireAuth, profileHandler.GetOwnProfile)
				profile.PUT(root, requireAuth, profileHandler.UpdateProfile)
			}
			profile.POST("/resume", requireAuth, profileHandler.UploadResume)
			profile.GET("/resume", requireAuth, profileHandler.DownloadResume)
			profile.DELETE("/resume", requireAuth, profileHandler.DeleteResume)
			profile.POST("/avatar", requireAuth, profileHandler.UploadAvatar)
			profile.GET("/avatar", optionalAuth, profileHandler.GetAvatar)
			profile.DELETE("/avatar", requireAuth, profileHandler.DeleteAvatar)
			profile.GET("/:userId", profileHandler.GetPublicProfile)
			profile.GET("/:userId/avatar", profileHandler.GetAvatar)
		}

		// Project and application routes
		projects := api.Group("/projects")
		{
			for _, root := range []string{"", "/"} {
				projects.POST(root, requireAuth, projectHandler.CreateProject)
			}
			projects.GET("/search", projectHandler.SearchProjects)
			projects.GET("/me", requireAuth, projectHandler.GetMyProjects)
			projects.GET("/user/:userId", projectHandler.GetUserProjects)
			projects.GET("/applications/me", requireAuth, applicationHandler.MyApplications)
			projects.PUT("/applications/:id/status", requireAuth, applicationHandler.SetStatus)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", requireAuth, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireAuth, projectHandler.DeleteProject)
			projects.POST("/:id/apply", requireAuth, applicationHandler.Apply)
			projects.GET("/:id/applications", requireAuth, applicationHandler.ProjectApplications)
		}

		// Submission gallery routes
		htf := api.Group("/htf")
		{
			for _, root := range []string{"", "/"} {
				htf.GET(root, optionalAuth, htfHandler.ListSubmissions)
				htf.POST(root, requireAuth, htfHandler.CreateSubmission)
			}
			htf.DELETE("/:id", requireAuth, htfHandler.DeleteSubmission)
		}
	}

	return r, nil
}
