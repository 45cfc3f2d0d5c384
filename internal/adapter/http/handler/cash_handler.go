package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// CashService defines the behavior needed by CashHandler.
type CashService interface {
	Balances(ctx context.Context) (*usecase.RegisterBalances, error)
	ListMovements(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error)
	DailyIncome(ctx context.Context) (map[domain.Currency]decimal.Decimal, error)
	Deliver(ctx context.Context, input usecase.DeliverInput) (*domain.CashMovement, error)
	DeliverAll(ctx context.Context, currency domain.Currency) (*domain.CashMovement, error)
}

// CashHandler handles cash register HTTP requests.
type CashHandler struct {
	cashUC CashService
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(cashUC CashService) *CashHandler {
	return &CashHandler{cashUC: cashUC}
}

// Balance returns the per-currency register position.
func (h *CashHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.cashUC.Balances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterBalancesResponse{
		ARS:         balances.ARS,
		USD:         balances.USD,
		TransferARS: balances.TransferARS,
	})
}

// Movements lists cash movements filtered by date range, type and method.
func (h *CashHandler) Movements(w http.ResponseWriter, r *http.Request) {
	filter := domain.MovementFilter{
		Type:   domain.MovementType(r.URL.Query().Get("type")),
		Method: domain.PaymentMethod(r.URL.Query().Get("method")),
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		filter.To = &to
	}

	movements, err := h.cashUC.ListMovements(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// Daily returns today's income per currency.
func (h *CashHandler) Daily(w http.ResponseWriter, r *http.Request) {
	income, err := h.cashUC.DailyIncome(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get daily income", err.Error())
		return
	}

	out := make(map[string]decimal.Decimal, len(income))
	for currency, amount := range income {
		out[string(currency)] = amount
	}

	writeJSON(w, http.StatusOK, dto.DailyIncomeResponse{
		Date:   time.Now().UTC().Format("2006-01-02"),
		Income: out,
	})
}

// Deliver draws money out of the register.
func (h *CashHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.cashUC.Deliver(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deliver", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// DeliverAll draws the full balance of one currency.
func (h *CashHandler) DeliverAll(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliverAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.cashUC.DeliverAll(r.Context(), domain.Currency(req.Currency))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deliver all", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}
