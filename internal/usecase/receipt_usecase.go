package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// ReceiptUseCase handles receipt lifecycle: creation, confirmation, editing
// and reads with the overdue projection applied.
type ReceiptUseCase struct {
	receiptRepo  ReceiptRepository
	tenantRepo   TenantRepository
	propertyRepo PropertyRepository
	idGen        IDGenerator
	clock        Clock
}

// NewReceiptUseCase creates a new ReceiptUseCase.
func NewReceiptUseCase(
	receiptRepo ReceiptRepository,
	tenantRepo TenantRepository,
	propertyRepo PropertyRepository,
	idGen IDGenerator,
	clock Clock,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo:  receiptRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateReceiptInput represents input for creating a receipt.
type CreateReceiptInput struct {
	TenantName   string
	Month        time.Month
	Year         int
	Rent         decimal.Decimal
	Expenses     decimal.Decimal
	OtherCharges []domain.Charge
	Currency     domain.Currency
	DueDate      *time.Time
}

// CreateReceiptOutput carries the created receipt plus the tariff-review
// reminder, returned explicitly instead of kept as global alert state.
type CreateReceiptOutput struct {
	Receipt        *domain.Receipt
	UpdateDue      bool
	NextUpdateDate time.Time
}

// CreateReceipt creates a receipt in pendiente_confirmacion. The tenant's
// cached balance is captured as the previousBalance snapshot; the statement
// builder never reads it back.
func (uc *ReceiptUseCase) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*CreateReceiptOutput, error) {
	if err := domain.ValidatePeriod(input.Month, input.Year); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Rent); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Expenses); err != nil {
		return nil, err
	}
	for _, c := range input.OtherCharges {
		if err := domain.ValidateAmount(c.Amount); err != nil {
			return nil, err
		}
	}

	tenant, err := uc.tenantRepo.GetByName(ctx, input.TenantName)
	if err != nil {
		return nil, err
	}

	property, err := uc.propertyRepo.GetByName(ctx, tenant.Property)
	if err != nil {
		return nil, err
	}

	seq, err := uc.receiptRepo.CountByYear(ctx, input.Year)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	dueDate := time.Date(input.Year, input.Month, DueDay, 0, 0, 0, 0, time.UTC)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	total := domain.ComputeTotal(input.Rent, input.Expenses, tenant.Balance, input.OtherCharges)

	receipt := &domain.Receipt{
		ID:               uc.idGen.Generate(),
		Number:           fmt.Sprintf("REC-%d-%03d", input.Year, seq+1),
		Tenant:           tenant.Name,
		Property:         property.Name,
		Building:         property.Building,
		Month:            input.Month,
		Year:             input.Year,
		Rent:             input.Rent,
		Expenses:         input.Expenses,
		OtherCharges:     input.OtherCharges,
		PreviousBalance:  tenant.Balance,
		Total:            total,
		PaidAmount:       decimal.Zero,
		RemainingBalance: total,
		Currency:         input.Currency,
		PaymentMethod:    domain.MethodCash,
		Status:           domain.StatusUnconfirmed,
		DueDate:          dueDate,
		CreatedDate:      now,
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return &CreateReceiptOutput{
		Receipt:        receipt,
		UpdateDue:      property.UpdateDue(now),
		NextUpdateDate: property.NextUpdateDate,
	}, nil
}

// ConfirmReceipt moves a receipt from pendiente_confirmacion to pendiente.
func (uc *ReceiptUseCase) ConfirmReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receipt.Confirm(); err != nil {
		return nil, err
	}

	if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// UpdateReceiptInput represents input for editing a receipt.
type UpdateReceiptInput struct {
	Month        time.Month
	Year         int
	Rent         decimal.Decimal
	Expenses     decimal.Decimal
	OtherCharges []domain.Charge
	Currency     domain.Currency
	DueDate      *time.Time
}

// UpdateReceipt edits an unpaid receipt. The previousBalance snapshot and
// the payment history are preserved; the total and remaining balance are
// recomputed.
func (uc *ReceiptUseCase) UpdateReceipt(ctx context.Context, id string, input UpdateReceiptInput) (*domain.Receipt, error) {
	if err := domain.ValidatePeriod(input.Month, input.Year); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Rent); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Expenses); err != nil {
		return nil, err
	}
	for _, c := range input.OtherCharges {
		if err := domain.ValidateAmount(c.Amount); err != nil {
			return nil, err
		}
	}

	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !receipt.Editable() {
		return nil, domain.ErrReceiptNotEditable
	}

	receipt.Month = input.Month
	receipt.Year = input.Year
	receipt.Rent = input.Rent
	receipt.Expenses = input.Expenses
	receipt.OtherCharges = input.OtherCharges
	receipt.Currency = input.Currency
	if input.DueDate != nil {
		receipt.DueDate = *input.DueDate
	}

	receipt.Total = domain.ComputeTotal(receipt.Rent, receipt.Expenses, receipt.PreviousBalance, receipt.OtherCharges)
	remaining := receipt.Total.Sub(receipt.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	receipt.RemainingBalance = remaining

	if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// DeleteReceipt removes a receipt. This is the explicit user action the
// state machine itself never takes.
func (uc *ReceiptUseCase) DeleteReceipt(ctx context.Context, id string) error {
	if _, err := uc.receiptRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.receiptRepo.Delete(ctx, id)
}

// GetReceipt retrieves a receipt with the overdue projection applied.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt.Status = receipt.EffectiveStatus(uc.clock.Now())
	return receipt, nil
}

// ListReceiptsInput represents input for listing receipts.
type ListReceiptsInput struct {
	Limit  int
	Offset int
}

// ListReceipts lists receipts with the overdue projection applied.
func (uc *ReceiptUseCase) ListReceipts(ctx context.Context, input ListReceiptsInput) ([]*domain.Receipt, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	receipts, err := uc.receiptRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	for _, r := range receipts {
		r.Status = r.EffectiveStatus(now)
	}

	return receipts, nil
}
