package api

import (
	"net/http"

	"github.com/convocraft/backend/internal/api/handler"
	customMiddleware "github.com/convocraft/backend/internal/api/middleware"
	"github.com/convocraft/backend/internal/config"
	"github.com/convocraft/backend/internal/llm"
	"github.com/convocraft/backend/internal/llm/gemini"
	"github.com/convocraft/backend/internal/llm/ollama"
	"github.com/convocraft/backend/internal/redis"
	"github.com/convocraft/backend/internal/security"
	"github.com/convocraft/backend/internal/service"
	"github.com/convocraft/backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, st *store.Store, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Generative-text providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}

	// Services
	authService := service.NewAuthService(st, jwtManager)
	resetService := service.NewResetService(st, nil)
	historyService := service.NewHistoryService(st)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, resetService)
	generateHandler := handler.NewGenerateHandler(llmRouter, historyService)
	historyHandler := handler.NewHistoryHandler(historyService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	// Public routes
	r.Get("/", handler.Root)
	r.Get("/health", handler.HealthCheck)

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Post("/reset-password/request", authHandler.RequestReset)
	r.Post("/reset-password/complete", authHandler.CompleteReset)

	// Stateless generation, no persistence side effect
	r.Post("/generate", generateHandler.Icebreakers)
	r.Post("/suggest-replies", generateHandler.SuggestReplies)

	// Session-holders only
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		if redisClient != nil {
			rateLimiter := redis.NewRateLimiter(redisClient, cfg.Redis.RequestsPerMinute, cfg.Redis.Burst)
			r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
		}

		r.Get("/me", authHandler.Me)
		r.Get("/history", historyHandler.List)
		r.Post("/practice-chat", generateHandler.PracticeChat)
		r.Get("/llm-providers", handler.ListProviders(llmRouter))
	})

	return r
}
