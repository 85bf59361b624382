package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/api/http/handler"
	"github.com/dtroode/portfolio/internal/api/http/middleware"
	"github.com/dtroode/portfolio/internal/config"
	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
	"github.com/dtroode/portfolio/internal/service"
)

// Router represents the REST router for portfolio operations.
// It wires handlers to routes and configures the middleware chain.
type Router struct {
	cfg            config.HTTP
	authService    handler.AuthService
	projectService handler.ProjectService
	resumeService  handler.ResumeService
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	health         *handler.Health
	staticDir      string
	logger         *logger.Logger
}

// Deps holds what New needs to build the router.
// AuthService is nil when sessions come from an external identity provider.
type Deps struct {
	Config         config.HTTP
	AuthService    handler.AuthService
	ProjectService handler.ProjectService
	ResumeService  handler.ResumeService
	Verifier       model.IdentityVerifier
	ContextManager model.ContextManager
	Health         *handler.Health
	StaticDir      string
	Logger         *logger.Logger
}

// New creates new Router instance.
func New(deps Deps) *Router {
	return &Router{
		cfg:            deps.Config,
		authService:    deps.AuthService,
		projectService: deps.ProjectService,
		resumeService:  deps.ResumeService,
		verifier:       deps.Verifier,
		contextManager: deps.ContextManager,
		health:         deps.Health,
		staticDir:      deps.StaticDir,
		logger:         deps.Logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.NewLogging(r.logger).Handle,
		cors.New(r.corsConfig()),
	)

	if r.health != nil {
		engine.GET("/health", r.health.Check)
		engine.GET("/healthz", r.health.Check)
	}

	if r.staticDir != "" {
		engine.Static(strings.TrimSuffix(service.StaticPrefix, "/"), r.staticDir)
	}

	api := engine.Group("/api")
	api.Use(
		middleware.Timeout(r.cfg.RequestTimeout),
		middleware.BodyLimit(r.cfg.MaxUploadBytes),
	)

	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger).Handle
	requireAdmin := middleware.NewRequireAdmin(r.contextManager, r.logger).Handle

	r.registerAuthRoutes(api, authenticate)
	r.registerProjectRoutes(api, authenticate, requireAdmin)
	r.registerResumeRoutes(api, authenticate, requireAdmin)

	return engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.AdminUIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(r.cfg.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = r.cfg.AllowedOrigins
	return cfg
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup, authenticate gin.HandlerFunc) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	auth := api.Group("/auth")

	auth.GET("/me", authenticate, authHandler.Me)

	if r.authService == nil {
		return
	}

	limit := middleware.NewRateLimit(r.cfg.LoginRatePerMinute)
	auth.POST("/login", limit.Handle, authHandler.Login)
	auth.POST("/refresh", limit.Handle, authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
}

func (r *Router) registerProjectRoutes(api *gin.RouterGroup, authenticate, requireAdmin gin.HandlerFunc) {
	projectHandler := handler.NewProject(r.projectService, r.logger)
	projects := api.Group("/projects")

	projects.GET("", projectHandler.List)
	projects.GET("/:id/image", projectHandler.Image)
	projects.POST("", authenticate, requireAdmin, projectHandler.Create)
	projects.DELETE("/:id", authenticate, requireAdmin, projectHandler.Delete)
}

func (r *Router) registerResumeRoutes(api *gin.RouterGroup, authenticate, requireAdmin gin.HandlerFunc) {
	resumeHandler := handler.NewResume(r.resumeService, r.contextManager, r.logger)
	resume := api.Group("/resume")

	resume.GET("", resumeHandler.Get)
	resume.GET("/file", resumeHandler.File)
	resume.POST("", authenticate, requireAdmin, resumeHandler.Upload)
}
