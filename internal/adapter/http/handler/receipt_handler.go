package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// ReceiptService defines the behavior needed by ReceiptHandler.
type ReceiptService interface {
	CreateReceipt(ctx context.Context, input usecase.CreateReceiptInput) (*usecase.CreateReceiptOutput, error)
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, input usecase.ListReceiptsInput) ([]*domain.Receipt, error)
	UpdateReceipt(ctx context.Context, id string, input usecase.UpdateReceiptInput) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, id string) error
	ConfirmReceipt(ctx context.Context, id string) (*domain.Receipt, error)
}

// PaymentService defines the payment behavior needed by ReceiptHandler.
type PaymentService interface {
	ApplyPayment(ctx context.Context, input usecase.ApplyPaymentInput) (*usecase.ApplyPaymentResult, error)
}

// ReceiptHandler handles receipt-related HTTP requests.
type ReceiptHandler struct {
	receiptUC ReceiptService
	paymentUC PaymentService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptUC ReceiptService, paymentUC PaymentService) *ReceiptHandler {
	return &ReceiptHandler{receiptUC: receiptUC, paymentUC: paymentUC}
}

// Create creates a new receipt awaiting confirmation.
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.receiptUC.CreateReceipt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create receipt", err.Error())
		return
	}

	resp := dto.CreateReceiptResponse{
		Receipt:   dto.ReceiptFromDomain(out.Receipt),
		UpdateDue: out.UpdateDue,
	}
	if out.UpdateDue {
		next := out.NextUpdateDate
		resp.NextUpdateDate = &next
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get retrieves a receipt by ID, overdue projection included.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	receipt, err := h.receiptUC.GetReceipt(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// List lists receipts.
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	receipts, err := h.receiptUC.ListReceipts(r.Context(), usecase.ListReceiptsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list receipts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListReceiptsResponse{
		Receipts: dto.ReceiptsFromDomain(receipts),
		Total:    int64(len(receipts)),
	})
}

// Update edits an unpaid receipt.
func (h *ReceiptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	var req dto.UpdateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.receiptUC.UpdateReceipt(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Delete removes a receipt.
func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	if err := h.receiptUC.DeleteReceipt(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete receipt", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Confirm moves an unconfirmed receipt into pendiente.
func (h *ReceiptHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	receipt, err := h.receiptUC.ConfirmReceipt(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to confirm receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Pay applies a split-instrument payment to a receipt.
func (h *ReceiptHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	var req dto.ApplyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.ApplyPayment(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentResponse{
		Receipt:   dto.ReceiptFromDomain(result.Receipt),
		Movements: dto.MovementsFromDomain(result.Movements),
	})
}
