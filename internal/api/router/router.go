// Package router assembles the HTTP surface: public auth and chat routes,
// and the token-protected admin console.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wellnesscare/wellness-platform/internal/admin"
	"github.com/wellnesscare/wellness-platform/internal/chatbot"
	"github.com/wellnesscare/wellness-platform/internal/feedback"
	httpmiddleware "github.com/wellnesscare/wellness-platform/internal/http/middleware"
	"github.com/wellnesscare/wellness-platform/internal/keywords"
	"github.com/wellnesscare/wellness-platform/internal/patients"
	"github.com/wellnesscare/wellness-platform/pkg/logging"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chatbot.Handler
	FeedbackHandler    *feedback.Handler
	FeedbackAdmin      *feedback.AdminHandler
	PatientHandler     *patients.Handler
	PatientAdmin       *patients.AdminHandler
	KeywordHandler     *keywords.Handler
	AdminHandler       *admin.Handler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	DB                 Pinger

	// ChatRateLimit caps per-IP requests/sec on the chat routes. Zero
	// disables limiting.
	ChatRateLimit float64
	ChatRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck(cfg.DB))
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.PatientHandler != nil {
			public.Route("/api", func(api chi.Router) {
				cfg.PatientHandler.Routes(api)
				if cfg.FeedbackHandler != nil {
					cfg.FeedbackHandler.APIRoutes(api)
				}
			})
		}
	})

	// Chat endpoints, optionally rate limited
	r.Group(func(chat chi.Router) {
		if cfg.ChatRateLimit > 0 {
			chat.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
		}
		if cfg.ChatHandler != nil {
			cfg.ChatHandler.Routes(chat)
		}
		if cfg.FeedbackHandler != nil {
			cfg.FeedbackHandler.ChatRoutes(chat)
		}
	})

	// Admin console, token protected except for login
	r.Route("/admin", func(adm chi.Router) {
		if cfg.AdminHandler != nil {
			cfg.AdminHandler.PublicRoutes(adm)
		}
		adm.Group(func(protected chi.Router) {
			protected.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.AdminHandler != nil {
				cfg.AdminHandler.Routes(protected)
			}
			if cfg.PatientAdmin != nil {
				cfg.PatientAdmin.Routes(protected)
			}
			if cfg.FeedbackAdmin != nil {
				cfg.FeedbackAdmin.Routes(protected)
			}
			if cfg.KeywordHandler != nil {
				protected.Get("/keywords", cfg.KeywordHandler.List)
				protected.Post("/keywords", cfg.KeywordHandler.Upsert)
				protected.Put("/keywords/{id}", cfg.KeywordHandler.Replace)
				protected.Delete("/keywords/{id}", cfg.KeywordHandler.Delete)
			}
		})
	})

	return r
}

func healthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "disconnected"
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err == nil {
				database = "connected"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		})
	}
}
