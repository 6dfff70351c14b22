package handler

import (
	"log/slog"
	"net/http"

	"conversa/internal/domain/models"
	"conversa/internal/domain/services"
	"conversa/internal/httputil"
)

// HistoryResponse is the body of GET /historico/...
type HistoryResponse struct {
	History []models.HistoryEntry `json:"historico"`
}

// HistoryHandler serves stored conversations
type HistoryHandler struct {
	errorWriter
	historyService services.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService services.HistoryService, logger *slog.Logger, debug bool) *HistoryHandler {
	return &HistoryHandler{
		errorWriter:    errorWriter{logger: logger, debug: debug},
		historyService: historyService,
	}
}

// GetHistory returns every message of the conversation, oldest first
// GET /historico/{projeto}/{pasta}/{chat_id}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	path := models.ConversationPath{
		Project: r.PathValue("projeto"),
		Folder:  r.PathValue("pasta"),
		ChatID:  r.PathValue("chat_id"),
	}

	history, err := h.historyService.GetHistory(r.Context(), path)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, HistoryResponse{History: history})
}
