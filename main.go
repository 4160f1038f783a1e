package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/msomdec/rms-content/internal/config"
	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/handler"
	"github.com/msomdec/rms-content/internal/logging"
	"github.com/msomdec/rms-content/internal/repository/filesystem"
	"github.com/msomdec/rms-content/internal/repository/postgres"
	"github.com/msomdec/rms-content/internal/repository/sqlite"
	"github.com/msomdec/rms-content/internal/service"
)

// Login attempts refill at one every ten seconds per client, with a burst of five.
const (
	loginRate  = 0.1
	loginBurst = 5
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "driver", cfg.Database.Driver)

	assets, err := filesystem.New(cfg.Assets.Dir, logger)
	if err != nil {
		slog.Error("failed to open asset directory", "dir", cfg.Assets.Dir, "error", err)
		os.Exit(1)
	}

	maxUpload := cfg.Assets.MaxUploadSizeBytes()
	authService := service.NewAuthService(db.Users(), cfg.Auth.JWTSecret, cfg.Auth.BcryptCost, logger)
	slideService := service.NewSlideService(db.Slides(), assets, logger, maxUpload)
	articleService := service.NewArticleService(db.Articles(), logger)

	if cfg.Auth.BootstrapAdmin() {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			slog.Error("failed to ensure admin account", "error", err)
			os.Exit(1)
		}
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Deps{
		Auth:          authService,
		Slides:        slideService,
		Articles:      articleService,
		Assets:        assets,
		LoginLimiter:  service.NewTokenBucket(ctx, loginRate, loginBurst),
		MaxUploadSize: maxUpload,
		CookieSecure:  cfg.Auth.SecureCookies(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Wrap(mux, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeoutDuration(),
		IdleTimeout:       cfg.Server.IdleTimeoutDuration(),
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (domain.Database, error) {
	if cfg.Driver == config.DriverPostgres {
		return postgres.New(ctx, cfg.DSN)
	}
	return sqlite.New(cfg.Path)
}
