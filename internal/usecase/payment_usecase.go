package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// PaymentUseCase applies incoming payments to receipts. A payment may be
// split across three instruments; the whole application is all-or-nothing.
type PaymentUseCase struct {
	txManager    TransactionManager
	receiptRepo  ReceiptRepository
	tenantRepo   TenantRepository
	movementRepo MovementRepository
	registerRepo RegisterRepository
	balanceCache BalanceCache
	idGen        IDGenerator
	clock        Clock
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	receiptRepo ReceiptRepository,
	tenantRepo TenantRepository,
	movementRepo MovementRepository,
	registerRepo RegisterRepository,
	balanceCache BalanceCache,
	idGen IDGenerator,
	clock Clock,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:    txManager,
		receiptRepo:  receiptRepo,
		tenantRepo:   tenantRepo,
		movementRepo: movementRepo,
		registerRepo: registerRepo,
		balanceCache: balanceCache,
		idGen:        idGen,
		clock:        clock,
	}
}

// ApplyPaymentInput represents one payment request against one receipt.
// Cash and Transfer are in pesos, Dollars in hard currency.
type ApplyPaymentInput struct {
	ReceiptID string
	Cash      decimal.Decimal
	Transfer  decimal.Decimal
	Dollars   decimal.Decimal
}

// Total is the sum across all instruments.
func (in ApplyPaymentInput) Total() decimal.Decimal {
	return in.Cash.Add(in.Transfer).Add(in.Dollars)
}

// DominantMethod returns the instrument that contributed the most.
// Ties resolve in entry order: cash, then transfer, then dollars.
func (in ApplyPaymentInput) DominantMethod() domain.PaymentMethod {
	method, top := domain.MethodCash, in.Cash
	if in.Transfer.GreaterThan(top) {
		method, top = domain.MethodTransfer, in.Transfer
	}
	if in.Dollars.GreaterThan(top) {
		method = domain.MethodDollars
	}
	return method
}

// ApplyPaymentResult carries the mutated receipt and the movements the
// payment produced.
type ApplyPaymentResult struct {
	Receipt   *domain.Receipt
	Movements []*domain.CashMovement
}

// ApplyPayment validates and applies a payment. All rejections happen
// before any mutation; on acceptance the receipt, the register movements
// and the tenant's cached balance change inside one transaction.
func (uc *PaymentUseCase) ApplyPayment(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentResult, error) {
	for _, amount := range []decimal.Decimal{input.Cash, input.Transfer, input.Dollars} {
		if amount.IsNegative() {
			return nil, domain.ErrNegativeInstrument
		}
	}

	total := input.Total()
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPaymentAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	receipt, err := uc.receiptRepo.GetByIDForUpdate(ctx, tx, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	if !receipt.Payable() {
		return nil, domain.ErrReceiptNotPayable
	}

	if total.GreaterThan(receipt.RemainingBalance) {
		return nil, fmt.Errorf("%w: paying %s, remaining %s",
			domain.ErrPaymentExceedsBalance, total, receipt.RemainingBalance)
	}

	now := uc.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	receipt.PaidAmount = receipt.PaidAmount.Add(total)
	receipt.RemainingBalance = receipt.Total.Sub(receipt.PaidAmount)
	receipt.PaymentMethod = input.DominantMethod()
	if receipt.RemainingBalance.IsZero() {
		receipt.Status = domain.StatusPaid
	}

	if err := uc.receiptRepo.UpdateTx(ctx, tx, receipt); err != nil {
		return nil, err
	}

	movements, err := uc.recordIncome(ctx, tx, receipt, input, today)
	if err != nil {
		return nil, err
	}

	// Legacy data may reference tenants that no longer exist; the receipt
	// mutation still stands, only the cache update is skipped.
	tenant, err := uc.tenantRepo.GetByNameForUpdate(ctx, tx, receipt.Tenant)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		tenant = nil
	case err != nil:
		return nil, err
	}

	if tenant != nil {
		newBalance := tenant.ReduceBalance(total)
		if err := uc.tenantRepo.UpdateBalance(ctx, tx, tenant.ID, newBalance); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if tenant != nil && uc.balanceCache != nil {
		// Cache refresh is advisory; a failure must not fail the payment.
		_ = uc.balanceCache.Delete(ctx, tenant.ID)
	}

	return &ApplyPaymentResult{Receipt: receipt, Movements: movements}, nil
}

type instrumentShare struct {
	amount   decimal.Decimal
	method   domain.PaymentMethod
	currency domain.Currency
}

func (uc *PaymentUseCase) recordIncome(
	ctx context.Context,
	tx Transaction,
	receipt *domain.Receipt,
	input ApplyPaymentInput,
	today time.Time,
) ([]*domain.CashMovement, error) {
	shares := []instrumentShare{
		{amount: input.Cash, method: domain.MethodCash, currency: domain.CurrencyARS},
		{amount: input.Transfer, method: domain.MethodTransfer, currency: domain.CurrencyARS},
		{amount: input.Dollars, method: domain.MethodDollars, currency: domain.CurrencyUSD},
	}

	var movements []*domain.CashMovement
	for _, share := range shares {
		if !share.amount.IsPositive() {
			continue
		}

		movement := &domain.CashMovement{
			ID:            uc.idGen.Generate(),
			Type:          domain.MovementIncome,
			Description:   fmt.Sprintf("Pago alquiler - %s (%s)", receipt.Tenant, domain.MethodLabel(share.method)),
			Amount:        share.amount,
			Currency:      share.currency,
			Date:          today,
			Tenant:        receipt.Tenant,
			Property:      receipt.Property,
			PaymentMethod: share.method,
		}

		if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
			return nil, err
		}

		if err := uc.registerRepo.Add(ctx, tx, share.currency, share.amount); err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	return movements, nil
}
