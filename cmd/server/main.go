package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectsclub/collab-api/internal/config"
	"github.com/projectsclub/collab-api/internal/database"
	"github.com/projectsclub/collab-api/internal/logger"
	"github.com/projectsclub/collab-api/internal/mailer"
	"github.com/projectsclub/collab-api/internal/metrics"
	"github.com/projectsclub/collab-api/internal/ratelimit"
	"github.com/projectsclub/collab-api/internal/repository"
	"github.com/projectsclub/collab-api/internal/router"
	"github.com/projectsclub/collab-api/internal/services"
	"github.com/projectsclub/collab-api/internal/token"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "optional config file (yaml, json, toml)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database, zapLog)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Run migrations
	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(db, cfg.Database.Driver, zapLog); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Rate limit counters live in Redis when configured, in memory otherwise
	var limiters ratelimit.Factory = ratelimit.MemoryFactory{}
	if cfg.RateLimit.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		limiters = ratelimit.RedisFactory{Client: rdb}
		zapLog.Info("Rate limiting backed by Redis", zap.String("addr", cfg.RateLimit.RedisAddr))
	}

	mail := mailer.New(cfg.Mail)
	if !cfg.Mail.Enabled() {
		zapLog.Warn("SMTP is not configured, outgoing email is disabled")
	}

	m := metrics.New()
	tokens := token.NewManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	engine, err := router.New(router.Deps{
		DB:             db,
		Logger:         zapLog,
		Tokens:         tokens,
		Limiters:       limiters,
		Metrics:        m,
		CORSOrigins:    cfg.Server.CORSOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		Auth: services.NewAuthService(services.AuthDeps{
			Users:       userRepo,
			Resets:      repository.NewPasswordResetRepository(db),
			Tokens:      tokens,
			Mailer:      mail,
			FrontendURL: cfg.Server.FrontendURL,
			Logger:      zapLog,
			Recorder:    m,
		}),
		Profiles:     services.NewProfileService(userRepo, profileRepo),
		Projects:     services.NewProjectService(projectRepo),
		Applications: services.NewApplicationService(applicationRepo, projectRepo),
		HTF:          services.NewHTFService(repository.NewHTFRepository(db), cfg.HTF.Reveal),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zapLog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
