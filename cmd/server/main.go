package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cha17/gowra-sub000/internal/auth"
	"github.com/Cha17/gowra-sub000/internal/di"
	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/handler"
	"github.com/Cha17/gowra-sub000/pkg/config"
	"github.com/Cha17/gowra-sub000/pkg/database"
	"github.com/Cha17/gowra-sub000/pkg/logger"
	"github.com/Cha17/gowra-sub000/pkg/middleware"
	"github.com/Cha17/gowra-sub000/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	dbCfg := database.DefaultPostgresConfig()
	dbCfg.URL = cfg.Database.URL
	dbCfg.Host = cfg.Database.Host
	dbCfg.Port = cfg.Database.Port
	dbCfg.User = cfg.Database.User
	dbCfg.Password = cfg.Database.Password
	dbCfg.Database = cfg.Database.DBName
	dbCfg.SSLMode = cfg.Database.SSLMode
	if cfg.Database.MaxConns > 0 {
		dbCfg.MaxConns = int32(cfg.Database.MaxConns)
	}
	if cfg.Database.MinConns > 0 {
		dbCfg.MinConns = int32(cfg.Database.MinConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		dbCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		dbCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	}

	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()
	log.Info("Connected to postgres", zap.String("database", cfg.Database.DBName))

	if cfg.Database.MigrationsPath != "" {
		version, err := database.RunMigrations(cfg.Database.MigrateURL(), cfg.Database.MigrationsPath)
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Migrations applied", zap.Uint("version", version))
	}

	container := di.NewContainer(cfg, db)

	if err := seedAdmin(ctx, container, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
		})
		defer limiter.Stop()
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:    cfg,
		Log:       log,
		Tokens:    container.Tokens,
		AuthSvc:   container.AuthService,
		EventSvc:  container.EventService,
		Health:    container.HealthHandler,
		Auth:      container.AuthHandler,
		Event:     container.EventHandler,
		Reg:       container.RegistrationHandler,
		Payment:   container.PaymentHandler,
		Admin:     container.AdminHandler,
		RateLimit: limiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if tel != nil {
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}
	return nil
}

// seedAdmin ensures the default admin account exists at boot
func seedAdmin(ctx context.Context, c *di.Container, cfg *config.Config) error {
	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	return c.AdminRepo.EnsureDefault(ctx, &domain.Admin{
		ID:           uuid.New().String(),
		Email:        cfg.Admin.Email,
		Name:         cfg.Admin.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
}
