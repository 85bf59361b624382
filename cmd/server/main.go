package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpcontext "github.com/dtroode/portfolio/internal/api/http/context"
	"github.com/dtroode/portfolio/internal/api/http/handler"
	"github.com/dtroode/portfolio/internal/api/http/router"
	httpServer "github.com/dtroode/portfolio/internal/api/http/server"
	"github.com/dtroode/portfolio/internal/cache/redis"
	"github.com/dtroode/portfolio/internal/config"
	"github.com/dtroode/portfolio/internal/jobs"
	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
	"github.com/dtroode/portfolio/internal/repository/postgres"
	"github.com/dtroode/portfolio/internal/server"
	"github.com/dtroode/portfolio/internal/service"
	storage "github.com/dtroode/portfolio/internal/storage/minio"
	"github.com/dtroode/portfolio/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	storageClient, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	healthDeps := map[string]handler.Pinger{"postgres": db}

	var cache model.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, serving without cache", "error", err, "addr", cfg.Redis.Addr)
		} else {
			defer redisCache.Close()
			cache = redisCache
			healthDeps["redis"] = redisCache
		}
	}

	projectService := service.NewProject(projectRepo, storageClient, cache, logger)
	resumeService := service.NewResume(resumeRepo, storageClient, cache, logger, service.ResumeOptions{
		Strategy:   model.ResumeStrategy(cfg.Resume.Strategy),
		StaticDir:  cfg.Resume.StaticDir,
		StaticFile: cfg.Resume.StaticFile,
	})

	var (
		authService handler.AuthService
		verifier    model.IdentityVerifier
	)

	switch cfg.Auth.Provider {
	case "firebase":
		firebaseVerifier, err := token.NewFirebaseVerifier(ctx, cfg.Auth.FirebaseCredentials, cfg.Auth.AdminUID)
		if err != nil {
			logger.Fatal("failed to initialize firebase verifier", "error", err)
		}
		verifier = firebaseVerifier
	default:
		tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret), refreshTokenRepo, logger)
		auth := service.NewAuth(userRepo, tokenService, logger)

		if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
			if _, err := auth.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
				logger.Fatal("failed to bootstrap admin account", "error", err)
			}
		}

		cleanup, err := jobs.NewTokenCleanup(refreshTokenRepo, cfg.Auth.CleanupSchedule, logger.Named("token-cleanup"))
		if err != nil {
			logger.Fatal("failed to schedule token cleanup", "error", err)
		}
		cleanup.Start()
		defer func() { <-cleanup.Stop().Done() }()

		authService = auth
		verifier = tokenService
	}

	staticDir := ""
	if model.ResumeStrategy(cfg.Resume.Strategy) == model.ResumeStrategyStatic {
		staticDir = cfg.Resume.StaticDir
	}

	r := router.New(router.Deps{
		Config:         cfg.HTTP,
		AuthService:    authService,
		ProjectService: projectService,
		ResumeService:  resumeService,
		Verifier:       verifier,
		ContextManager: httpcontext.NewManager(),
		Health:         handler.NewHealth("portfolio-api", buildVersion, healthDeps),
		StaticDir:      staticDir,
		Logger:         logger,
	})

	apiServer := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
