package handler

import (
	"context"
	"net/http"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error)
	Repair(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconciliationHandler handles drift detection requests.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Get runs a reconciliation pass and reports drift without repairing.
func (h *ReconciliationHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Reconcile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}

// Repair overwrites drifted stored balances with recomputed values.
func (h *ReconciliationHandler) Repair(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Repair(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to repair", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}
