// College Portal Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ashureev/college-portal/internal/api"
	"github.com/ashureev/college-portal/internal/assistant"
	"github.com/ashureev/college-portal/internal/config"
	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/middleware"
	"github.com/ashureev/college-portal/internal/ratelimit"
	"github.com/ashureev/college-portal/internal/seed"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/studyplan"
	"github.com/ashureev/college-portal/internal/sweeper"
	"github.com/ashureev/college-portal/internal/validation"
	"github.com/ashureev/college-portal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize storage.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	files, err := filestore.NewLocal(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		slog.Error("Failed to initialize upload directory", "error", err)
		os.Exit(1)
	}

	if cfg.SeedOnStart {
		seedCatalog(repo, files)
	}

	// Initialize services.
	tokens := identity.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	limiter, err := newLimiter(cfg)
	if err != nil {
		slog.Error("Failed to initialize rate limiter", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := limiter.Close(); closeErr != nil {
			slog.Warn("Failed to close rate limiter", "error", closeErr)
		}
	}()

	transcript, err := assistant.NewTranscript(assistant.TranscriptConfig{
		Enabled:   cfg.ConversationLog.Enabled,
		Dir:       cfg.ConversationLog.Dir,
		QueueSize: cfg.ConversationLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize conversation log", "error", err)
		os.Exit(1)
	}

	svc := assistant.NewService(assistant.NewGenerator(nil), repo, transcript)
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			slog.Warn("Failed to close assistant service", "error", closeErr)
		}
	}()

	// Initialize handlers.
	apiHandler := api.NewHandler(api.Options{
		Repo:      repo,
		Files:     files,
		Tokens:    tokens,
		Planner:   studyplan.NewPlanner(time.Now),
		Validator: validation.New(),
		MaxUpload: cfg.MaxUploadBytes,
		IsDev:     cfg.IsDevelopment(),
	})
	assistantHandler := assistant.NewHandler(svc, limiter)
	wsHandler := assistant.NewWebSocketHandler(svc, limiter, cfg.AllowedOrigins(), cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(identity.Middleware(tokens, repo))

	apiHandler.RegisterRoutes(r)
	assistantHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.With(identity.RequireAuth).Get("/ws/assistant", wsHandler.ServeHTTP)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// WebSocket connections are long lived, so no WriteTimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweepDone := sweeper.Start(ctx, repo, cfg.RevocationSweepInterval)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	<-sweepDone

	slog.Info("Server stopped successfully")
}

// newLimiter returns a Redis-backed limiter when REDIS_ADDR is set and an
// in-memory one otherwise.
func newLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RateLimit.RedisAddr == "" {
		slog.Info("Using in-memory rate limiter", "requests", cfg.RateLimit.Requests, "window", cfg.RateLimit.Window)
		return ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimit.Window), nil
	}
	limiter, err := ratelimit.NewRedis(cfg.RateLimit.RedisAddr, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		return nil, err
	}
	slog.Info("Using Redis rate limiter", "addr", cfg.RateLimit.RedisAddr)
	return limiter, nil
}

// seedCatalog loads subjects and roadmaps. Sample notes need an owner and
// are created with portal-admin seed.
func seedCatalog(repo store.Repository, files seed.FileWriter) {
	catalog, err := seed.Load()
	if err != nil {
		slog.Error("Failed to load seed catalog", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := seed.Apply(ctx, catalog, repo, files, 0)
	if err != nil {
		slog.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog seeded", "subjects", res.Subjects, "roadmaps", res.Roadmaps)
}
