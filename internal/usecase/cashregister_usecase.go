package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// CashRegisterUseCase exposes the derived multi-currency register and the
// delivery (draw-down) operations.
type CashRegisterUseCase struct {
	txManager    TransactionManager
	movementRepo MovementRepository
	registerRepo RegisterRepository
	idGen        IDGenerator
	clock        Clock
}

// NewCashRegisterUseCase creates a new CashRegisterUseCase.
func NewCashRegisterUseCase(
	txManager TransactionManager,
	movementRepo MovementRepository,
	registerRepo RegisterRepository,
	idGen IDGenerator,
	clock Clock,
) *CashRegisterUseCase {
	return &CashRegisterUseCase{
		txManager:    txManager,
		movementRepo: movementRepo,
		registerRepo: registerRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// RegisterBalances is the register position across currencies, with the
// in-transit transfer subtotal broken out.
type RegisterBalances struct {
	ARS         decimal.Decimal
	USD         decimal.Decimal
	TransferARS decimal.Decimal
}

// Balances returns the lifetime balance per currency, derived from the full
// movement history.
func (uc *CashRegisterUseCase) Balances(ctx context.Context) (*RegisterBalances, error) {
	ars, err := uc.movementRepo.Balance(ctx, domain.CurrencyARS)
	if err != nil {
		return nil, err
	}

	usd, err := uc.movementRepo.Balance(ctx, domain.CurrencyUSD)
	if err != nil {
		return nil, err
	}

	transfer, err := uc.movementRepo.BalanceByMethod(ctx, domain.CurrencyARS, domain.MethodTransfer)
	if err != nil {
		return nil, err
	}

	return &RegisterBalances{ARS: ars, USD: usd, TransferARS: transfer}, nil
}

// ListMovements returns a filtered view of the movement history.
func (uc *CashRegisterUseCase) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.movementRepo.List(ctx, filter)
}

// DailyIncome returns today's income per currency, the same-day
// reconciliation figure distinct from the lifetime balance.
func (uc *CashRegisterUseCase) DailyIncome(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	now := uc.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return uc.movementRepo.IncomeByDate(ctx, today)
}

// DeliverInput represents a draw-down request.
type DeliverInput struct {
	Amount       decimal.Decimal
	Currency     domain.Currency
	DeliveryType domain.DeliveryType
	Description  string
}

// Deliver draws money out of the register. The per-currency register row is
// locked for the balance check, so concurrent deliveries cannot overdraw.
func (uc *CashRegisterUseCase) Deliver(ctx context.Context, input DeliverInput) (*domain.CashMovement, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if err := domain.ValidateDeliveryType(input.DeliveryType); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidDeliveryAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.registerRepo.GetForUpdate(ctx, tx, input.Currency); err != nil {
		return nil, err
	}

	// The movement sum is the authority; the locked register row only
	// serializes the check against concurrent deliveries.
	balance, err := uc.movementRepo.BalanceTx(ctx, tx, input.Currency)
	if err != nil {
		return nil, err
	}

	if input.Amount.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: delivering %s, holding %s",
			domain.ErrInsufficientCash, input.Amount, balance)
	}

	movement, err := uc.appendDelivery(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}

// DeliverAll draws down the register's entire balance for one currency in a
// single movement. Rejected when the balance is not positive.
func (uc *CashRegisterUseCase) DeliverAll(ctx context.Context, currency domain.Currency) (*domain.CashMovement, error) {
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.registerRepo.GetForUpdate(ctx, tx, currency); err != nil {
		return nil, err
	}

	balance, err := uc.movementRepo.BalanceTx(ctx, tx, currency)
	if err != nil {
		return nil, err
	}

	if !balance.IsPositive() {
		return nil, domain.ErrEmptyRegister
	}

	movement, err := uc.appendDelivery(ctx, tx, DeliverInput{
		Amount:       balance,
		Currency:     currency,
		DeliveryType: domain.DeliveryOwner,
		Description:  fmt.Sprintf("Entrega total al propietario - %s", currency),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}

func (uc *CashRegisterUseCase) appendDelivery(ctx context.Context, tx Transaction, input DeliverInput) (*domain.CashMovement, error) {
	description := input.Description
	if description == "" {
		description = domain.DefaultDeliveryDescription(input.DeliveryType)
	}

	now := uc.clock.Now()

	movement := &domain.CashMovement{
		ID:           uc.idGen.Generate(),
		Type:         domain.MovementDelivery,
		Description:  description,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		DeliveryType: input.DeliveryType,
	}

	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.registerRepo.Add(ctx, tx, input.Currency, input.Amount.Neg()); err != nil {
		return nil, err
	}

	return movement, nil
}
