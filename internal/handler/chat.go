package handler

import (
	"log/slog"
	"net/http"

	"conversa/internal/domain/services"
	"conversa/internal/httputil"
)

// ChatHandler accepts prompts
type ChatHandler struct {
	errorWriter
	chatService services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatService, logger *slog.Logger, debug bool) *ChatHandler {
	return &ChatHandler{
		errorWriter: errorWriter{logger: logger, debug: debug},
		chatService: chatService,
	}
}

// SendMessage replays history to the model and returns its reply
// POST /enviar_mensagem
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req services.SendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.handleError(w, r, badRequest(err))
		return
	}

	resp, err := h.chatService.SendMessage(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
