package handler

import (
	"net/http"

	"github.com/convocraft/backend/internal/api/response"
	"github.com/convocraft/backend/internal/llm"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// Root returns a liveness banner
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Backend running"))
}

// ListProviders returns configured generative-text providers
func ListProviders(llmRouter *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"providers": llmRouter.ListProviders(),
			"default":   llmRouter.DefaultProvider(),
		})
	}
}
