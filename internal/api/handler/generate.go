package handler

import (
	"encoding/json"
	"net/http"

	"github.com/convocraft/backend/internal/api/middleware"
	"github.com/convocraft/backend/internal/api/response"
	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/llm"
	"github.com/convocraft/backend/internal/service"
	"github.com/rs/zerolog/log"
)

// GenerateHandler handles generative-text endpoints
type GenerateHandler struct {
	llmRouter      *llm.Router
	historyService *service.HistoryService
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(llmRouter *llm.Router, historyService *service.HistoryService) *GenerateHandler {
	return &GenerateHandler{
		llmRouter:      llmRouter,
		historyService: historyService,
	}
}

// Icebreakers generates conversation starters. Stateless: nothing is
// persisted, no session required.
func (h *GenerateHandler) Icebreakers(w http.ResponseWriter, r *http.Request) {
	var input domain.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	text, err := h.generate(r, llm.IcebreakerPrompt(input.Context, input.Personality))
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		response.InternalError(w, "generation failed")
		return
	}

	response.OK(w, map[string]string{"output": text})
}

// SuggestReplies generates reply suggestions for a received message.
// Stateless, no session required.
func (h *GenerateHandler) SuggestReplies(w http.ResponseWriter, r *http.Request) {
	var input domain.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	text, err := h.generate(r, llm.SuggestRepliesPrompt(input.Message))
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		response.InternalError(w, "generation failed")
		return
	}

	response.OK(w, map[string]string{"output": text})
}

// PracticeChat runs one practice conversation turn and records the exchange
// in the caller's history. Session required.
func (h *GenerateHandler) PracticeChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	reply, err := h.generate(r, llm.PracticeChatPrompt(input.Message))
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		response.InternalError(w, "generation failed")
		return
	}

	// The reply already happened; a failed append must not fail the caller
	if err := h.historyService.Append(r.Context(), userID, input.Message, reply); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to record practice exchange")
	}

	response.OK(w, map[string]string{"reply": reply})
}

func (h *GenerateHandler) generate(r *http.Request, prompt string) (string, error) {
	provider, err := h.llmRouter.GetProvider("")
	if err != nil {
		return "", err
	}

	resp, err := provider.GenerateText(r.Context(), prompt)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int("tokens", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("generation complete")

	return resp.Text, nil
}
