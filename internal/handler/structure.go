package handler

import (
	"log/slog"
	"net/http"

	"conversa/internal/domain/models"
	"conversa/internal/domain/services"
	"conversa/internal/httputil"
)

// SaveStructureRequest is the body of POST /estrutura
type SaveStructureRequest struct {
	Tree models.StructureTree `json:"arvore"`
}

// StatusResponse acknowledges a write
type StatusResponse struct {
	Status string `json:"status"`
}

// StructureHandler serves the sidebar structure tree
type StructureHandler struct {
	errorWriter
	structureService services.StructureService
}

// NewStructureHandler creates a new structure handler
func NewStructureHandler(structureService services.StructureService, logger *slog.Logger, debug bool) *StructureHandler {
	return &StructureHandler{
		errorWriter:      errorWriter{logger: logger, debug: debug},
		structureService: structureService,
	}
}

// GetStructure returns the tree itself, {} when nothing was saved
// GET /estrutura
func (h *StructureHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	tree, err := h.structureService.LoadStructure(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// SaveStructure overwrites the tree
// POST /estrutura
func (h *StructureHandler) SaveStructure(w http.ResponseWriter, r *http.Request) {
	var req SaveStructureRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.handleError(w, r, badRequest(err))
		return
	}

	if err := h.structureService.SaveStructure(r.Context(), req.Tree); err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, StatusResponse{Status: "sucesso"})
}
