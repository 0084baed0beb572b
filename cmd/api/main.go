package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wellnesscare/wellness-platform/internal/admin"
	"github.com/wellnesscare/wellness-platform/internal/api/router"
	"github.com/wellnesscare/wellness-platform/internal/chat"
	"github.com/wellnesscare/wellness-platform/internal/chatbot"
	appconfig "github.com/wellnesscare/wellness-platform/internal/config"
	"github.com/wellnesscare/wellness-platform/internal/entities"
	"github.com/wellnesscare/wellness-platform/internal/feedback"
	"github.com/wellnesscare/wellness-platform/internal/keywords"
	"github.com/wellnesscare/wellness-platform/internal/language"
	"github.com/wellnesscare/wellness-platform/internal/observability/metrics"
	"github.com/wellnesscare/wellness-platform/internal/patients"
	"github.com/wellnesscare/wellness-platform/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting wellness-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Initialize storage
	var (
		pool         *pgxpool.Pool
		keywordRepo  keywords.Repository
		chatStore    chat.Store
		patientRepo  patients.Repository
		feedbackRepo feedback.Repository
		adminRepo    admin.Repository
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		keywordRepo = keywords.NewPostgresRepository(pool)
		chatStore = chat.NewPostgresStore(pool)
		patientRepo = patients.NewPostgresRepository(pool)
		feedbackRepo = feedback.NewPostgresRepository(pool)
		adminRepo = admin.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		keywordRepo = keywords.NewInMemoryRepository()
		chatStore = chat.NewInMemoryStore()
		patientRepo = patients.NewInMemoryRepository()
		feedbackRepo = feedback.NewInMemoryRepository()
		adminRepo = admin.NewInMemoryRepository()
	}

	// Keyword snapshot cache in front of the repository
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		keywordRepo = keywords.NewCachedRepository(keywordRepo, redis.NewClient(opts), cfg.KeywordCacheTTL, logger)
		logger.Info("keyword cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.KeywordCacheTTL)
	}

	// Optional language and entity providers. The chat service degrades to
	// passthrough and lexicon extraction when these stay nil.
	var bridge language.Bridge
	if cfg.TranslateAPIKey != "" {
		b, err := language.NewGoogleBridge(ctx, cfg.TranslateAPIKey, cfg.AdapterTimeout)
		if err != nil {
			logger.Error("failed to create translate client", "error", err)
			os.Exit(1)
		}
		bridge = b
		logger.Info("translation enabled", "canonical", cfg.CanonicalLanguage)
	}

	var extractor entities.Extractor
	if cfg.GeminiAPIKey != "" {
		ex, err := entities.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		extractor = ex
		logger.Info("gemini entity extraction enabled", "model", cfg.GeminiModelID)
	}

	chatMetrics := metrics.NewChatMetrics(nil)

	// Initialize services
	chatService := chatbot.NewService(
		keywordRepo,
		chatStore,
		bridge,
		extractor,
		chatbot.NewResolver(cfg.FuzzyThreshold),
		cfg.CanonicalLanguage,
		logger.Logger,
	).WithMetrics(chatMetrics)

	patientAuth := patients.NewAuthenticator(cfg.AuthJWTSecret, cfg.TokenTTL)
	adminAuth := admin.NewAuthenticator(cfg.AdminJWTSecret, cfg.TokenTTL)

	adminService := admin.NewService(adminRepo, adminAuth, patientRepo, feedbackRepo, keywordRepo, logger.Logger)
	if err := adminService.EnsureDefault(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		logger.Error("failed to bootstrap default admin", "error", err)
		os.Exit(1)
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		ChatHandler:        chatbot.NewHandler(chatService, chatStore, logger.Logger),
		FeedbackHandler:    feedback.NewHandler(feedbackRepo, patientRepo, logger.Logger).WithMetrics(chatMetrics),
		FeedbackAdmin:      feedback.NewAdminHandler(feedbackRepo, logger.Logger),
		PatientHandler:     patients.NewHandler(patientRepo, patientAuth, logger.Logger),
		PatientAdmin:       patients.NewAdminHandler(patientRepo, logger.Logger),
		KeywordHandler:     keywords.NewHandler(keywordRepo, logger),
		AdminHandler: admin.NewHandler(adminService, logger.Logger).
			WithDefaultCredentials(cfg.DefaultAdminEmail, cfg.DefaultAdminPassword),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRateLimit:      cfg.ChatRateLimit,
		ChatRateBurst:      cfg.ChatRateBurst,
	}
	if pool != nil {
		routerCfg.DB = pool
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
