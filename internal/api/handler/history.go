package handler

import (
	"net/http"

	"github.com/convocraft/backend/internal/api/middleware"
	"github.com/convocraft/backend/internal/api/response"
	"github.com/convocraft/backend/internal/service"
)

// HistoryHandler serves the per-user interaction log
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List returns the caller's history, oldest first
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	entries, err := h.historyService.List(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entries)
}
