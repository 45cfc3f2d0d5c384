package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/usecase"
)

// PortabilityService defines the behavior needed by PortabilityHandler.
type PortabilityService interface {
	Export(ctx context.Context) (*usecase.ExportDocument, error)
	Import(ctx context.Context, r io.Reader) (*usecase.ImportStats, error)
}

// PortabilityHandler handles backup export and import requests.
type PortabilityHandler struct {
	portabilityUC PortabilityService
}

// NewPortabilityHandler creates a new PortabilityHandler.
func NewPortabilityHandler(portabilityUC PortabilityService) *PortabilityHandler {
	return &PortabilityHandler{portabilityUC: portabilityUC}
}

// Export streams the full backup document.
func (h *PortabilityHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.portabilityUC.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export", err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="rentas-backup.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// Import validates an uploaded backup and replaces the entire store.
func (h *PortabilityHandler) Import(w http.ResponseWriter, r *http.Request) {
	stats, err := h.portabilityUC.Import(r.Context(), r.Body)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResponse{
		Properties:    stats.Properties,
		Tenants:       stats.Tenants,
		Receipts:      stats.Receipts,
		CashMovements: stats.CashMovements,
	})
}
