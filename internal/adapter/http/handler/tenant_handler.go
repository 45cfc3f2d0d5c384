package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// TenantService defines the behavior needed by TenantHandler.
type TenantService interface {
	CreateTenant(ctx context.Context, input usecase.CreateTenantInput) (*domain.Tenant, error)
	GetTenant(ctx context.Context, id string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
	GetBalance(ctx context.Context, tenantID string) (decimal.Decimal, error)
	AssignProperty(ctx context.Context, tenantID, propertyID string) (*domain.Tenant, error)
	UnassignProperty(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// StatementService defines the statement behavior needed by TenantHandler.
type StatementService interface {
	GetStatement(ctx context.Context, tenantID string) (*usecase.Statement, error)
}

// TenantHandler handles tenant-related HTTP requests.
type TenantHandler struct {
	tenantUC    TenantService
	statementUC StatementService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantUC TenantService, statementUC StatementService) *TenantHandler {
	return &TenantHandler{tenantUC: tenantUC, statementUC: statementUC}
}

// Create registers a new tenant.
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantUC.CreateTenant(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create tenant", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TenantFromDomain(tenant))
}

// Get retrieves a tenant by ID.
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tenant ID", "")
		return
	}

	tenant, err := h.tenantUC.GetTenant(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tenant", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TenantFromDomain(tenant))
}

// List lists tenants.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantUC.ListTenants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tenants", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TenantsFromDomain(tenants))
}

// Statement returns the tenant's recomputed running account.
func (h *TenantHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tenant ID", "")
		return
	}

	statement, err := h.statementUC.GetStatement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase(statement))
}

// Balance returns the tenant's current balance, cache-backed.
func (h *TenantHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tenant ID", "")
		return
	}

	balance, err := h.tenantUC.GetBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{TenantID: id, Balance: balance})
}

// AssignProperty links the tenant to a property, marking it occupied.
func (h *TenantHandler) AssignProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tenant ID", "")
		return
	}

	var req dto.AssignPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "missing property ID", "")
		return
	}

	tenant, err := h.tenantUC.AssignProperty(r.Context(), id, req.PropertyID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to assign property", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TenantFromDomain(tenant))
}

// UnassignProperty releases the tenant's property, marking it available.
func (h *TenantHandler) UnassignProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tenant ID", "")
		return
	}

	tenant, err := h.tenantUC.UnassignProperty(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to unassign property", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TenantFromDomain(tenant))
}
