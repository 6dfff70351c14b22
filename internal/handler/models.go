package handler

import (
	"log/slog"
	"net/http"

	"conversa/internal/capabilities"
	"conversa/internal/domain/services"
	"conversa/internal/httputil"
)

// ModelsResponse lists the catalog of the active provider
type ModelsResponse struct {
	Provider  string                           `json:"provedor"`
	Model     string                           `json:"modelo"`
	Models    []capabilities.ModelCapabilities `json:"modelos"`
	Providers []string                         `json:"provedores"`
}

// ModelsHandler handles HTTP requests for model capabilities
type ModelsHandler struct {
	errorWriter
	registry *capabilities.Registry
	provider services.ModelProvider
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(registry *capabilities.Registry, provider services.ModelProvider, logger *slog.Logger, debug bool) *ModelsHandler {
	return &ModelsHandler{
		errorWriter: errorWriter{logger: logger, debug: debug},
		registry:    registry,
		provider:    provider,
	}
}

// ListModels returns the active model and its provider's catalog
// GET /modelos
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.registry.ListProviderModels(h.provider.Name())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if models == nil {
		models = []capabilities.ModelCapabilities{}
	}

	httputil.RespondJSON(w, http.StatusOK, ModelsResponse{
		Provider:  h.provider.Name(),
		Model:     h.provider.Model(),
		Models:    models,
		Providers: h.registry.GetAllProviders(),
	})
}
