package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
	"github.com/avidela/rentas/internal/usecase/mocks"
)

func newPaymentFixture(t *testing.T) (*usecase.PaymentUseCase, *mocks.MockReceiptRepository, *mocks.MockTenantRepository, *mocks.MockMovementRepository, *mocks.MockRegisterRepository) {
	t.Helper()

	receiptRepo := mocks.NewMockReceiptRepository()
	tenantRepo := mocks.NewMockTenantRepository()
	movementRepo := mocks.NewMockMovementRepository()
	registerRepo := mocks.NewMockRegisterRepository()

	uc := usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(),
		receiptRepo,
		tenantRepo,
		movementRepo,
		registerRepo,
		mocks.NewMockBalanceCache(),
		mocks.NewMockIDGenerator(),
		mocks.FixedClock{Time: time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)},
	)

	return uc, receiptRepo, tenantRepo, movementRepo, registerRepo
}

func pendingReceipt(total int64) *domain.Receipt {
	amount := decimal.NewFromInt(total)
	return &domain.Receipt{
		ID:               "rec-1",
		Number:           "REC-2026-001",
		Tenant:           "Juan Pérez",
		Property:         "Depto 3B",
		Month:            time.March,
		Year:             2026,
		Rent:             amount,
		Total:            amount,
		PaidAmount:       decimal.Zero,
		RemainingBalance: amount,
		Currency:         domain.CurrencyARS,
		Status:           domain.StatusPending,
		DueDate:          time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestPaymentUseCase_FullCashPayment(t *testing.T) {
	uc, receiptRepo, tenantRepo, movementRepo, registerRepo := newPaymentFixture(t)
	ctx := context.Background()

	receiptRepo.Create(ctx, pendingReceipt(55000))
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(55000)})

	result, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Cash:      decimal.NewFromInt(55000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Receipt.Status != domain.StatusPaid {
		t.Errorf("expected status %q, got %q", domain.StatusPaid, result.Receipt.Status)
	}
	if !result.Receipt.RemainingBalance.IsZero() {
		t.Errorf("expected zero remaining balance, got %s", result.Receipt.RemainingBalance)
	}
	if result.Receipt.PaymentMethod != domain.MethodCash {
		t.Errorf("expected method %q, got %q", domain.MethodCash, result.Receipt.PaymentMethod)
	}

	if len(result.Movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(result.Movements))
	}
	mv := result.Movements[0]
	if mv.Type != domain.MovementIncome || mv.Currency != domain.CurrencyARS {
		t.Errorf("unexpected movement: type %q currency %q", mv.Type, mv.Currency)
	}
	if mv.Description != "Pago alquiler - Juan Pérez (Efectivo)" {
		t.Errorf("unexpected description %q", mv.Description)
	}

	balance, _ := movementRepo.Balance(ctx, domain.CurrencyARS)
	if !balance.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("expected register balance 55000, got %s", balance)
	}
	registers, _ := registerRepo.All(ctx)
	if !registers[domain.CurrencyARS].Equal(decimal.NewFromInt(55000)) {
		t.Errorf("expected accumulator 55000, got %s", registers[domain.CurrencyARS])
	}

	tenant, _ := tenantRepo.GetByID(ctx, "ten-1")
	if !tenant.Balance.IsZero() {
		t.Errorf("expected tenant balance 0, got %s", tenant.Balance)
	}
}

func TestPaymentUseCase_SplitPayment(t *testing.T) {
	uc, receiptRepo, tenantRepo, _, _ := newPaymentFixture(t)
	ctx := context.Background()

	receiptRepo.Create(ctx, pendingReceipt(30000))
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(30000)})

	result, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Cash:      decimal.NewFromInt(20000),
		Transfer:  decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Receipt.Status != domain.StatusPaid {
		t.Errorf("expected status %q, got %q", domain.StatusPaid, result.Receipt.Status)
	}
	// Cash contributed the larger share, so it is the dominant method.
	if result.Receipt.PaymentMethod != domain.MethodCash {
		t.Errorf("expected method %q, got %q", domain.MethodCash, result.Receipt.PaymentMethod)
	}

	if len(result.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(result.Movements))
	}
	if result.Movements[0].PaymentMethod != domain.MethodCash || !result.Movements[0].Amount.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("unexpected first movement: %q %s", result.Movements[0].PaymentMethod, result.Movements[0].Amount)
	}
	if result.Movements[1].PaymentMethod != domain.MethodTransfer || !result.Movements[1].Amount.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("unexpected second movement: %q %s", result.Movements[1].PaymentMethod, result.Movements[1].Amount)
	}
}

func TestPaymentUseCase_PartialThenOverpayment(t *testing.T) {
	uc, receiptRepo, tenantRepo, movementRepo, _ := newPaymentFixture(t)
	ctx := context.Background()

	receiptRepo.Create(ctx, pendingReceipt(55000))
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(55000)})

	if _, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Transfer:  decimal.NewFromInt(30000),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	receipt, _ := receiptRepo.GetByID(ctx, "rec-1")
	if receipt.Status != domain.StatusPending {
		t.Errorf("partial payment must keep status %q, got %q", domain.StatusPending, receipt.Status)
	}
	if !receipt.RemainingBalance.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("expected remaining 25000, got %s", receipt.RemainingBalance)
	}

	// Paying more than what remains is rejected without side effects.
	_, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Cash:      decimal.NewFromInt(30000),
	})
	if !errors.Is(err, domain.ErrPaymentExceedsBalance) {
		t.Fatalf("expected ErrPaymentExceedsBalance, got %v", err)
	}

	receipt, _ = receiptRepo.GetByID(ctx, "rec-1")
	if !receipt.RemainingBalance.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("rejected payment must not change remaining, got %s", receipt.RemainingBalance)
	}
	if got := len(movementRepo.Movements()); got != 1 {
		t.Errorf("rejected payment must not record movements, got %d", got)
	}
}

func TestPaymentUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		receipt *domain.Receipt
		input   usecase.ApplyPaymentInput
		wantErr error
	}{
		{
			name:    "negative instrument",
			receipt: pendingReceipt(55000),
			input: usecase.ApplyPaymentInput{
				ReceiptID: "rec-1",
				Cash:      decimal.NewFromInt(-100),
				Transfer:  decimal.NewFromInt(200),
			},
			wantErr: domain.ErrNegativeInstrument,
		},
		{
			name:    "zero total",
			receipt: pendingReceipt(55000),
			input:   usecase.ApplyPaymentInput{ReceiptID: "rec-1"},
			wantErr: domain.ErrInvalidPaymentAmount,
		},
		{
			name: "unconfirmed receipt not payable",
			receipt: func() *domain.Receipt {
				r := pendingReceipt(55000)
				r.Status = domain.StatusUnconfirmed
				return r
			}(),
			input: usecase.ApplyPaymentInput{
				ReceiptID: "rec-1",
				Cash:      decimal.NewFromInt(55000),
			},
			wantErr: domain.ErrReceiptNotPayable,
		},
		{
			name: "paid receipt not payable",
			receipt: func() *domain.Receipt {
				r := pendingReceipt(55000)
				r.Status = domain.StatusPaid
				r.PaidAmount = r.Total
				r.RemainingBalance = decimal.Zero
				return r
			}(),
			input: usecase.ApplyPaymentInput{
				ReceiptID: "rec-1",
				Cash:      decimal.NewFromInt(100),
			},
			wantErr: domain.ErrReceiptNotPayable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, receiptRepo, tenantRepo, movementRepo, _ := newPaymentFixture(t)
			ctx := context.Background()

			receiptRepo.Create(ctx, tt.receipt)
			tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez"})

			_, err := uc.ApplyPayment(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := len(movementRepo.Movements()); got != 0 {
				t.Errorf("rejection must not record movements, got %d", got)
			}
		})
	}
}

func TestPaymentUseCase_ConfirmedReceiptIsPayable(t *testing.T) {
	uc, receiptRepo, tenantRepo, _, _ := newPaymentFixture(t)
	ctx := context.Background()

	receipt := pendingReceipt(40000)
	receipt.Status = domain.StatusConfirmed
	receiptRepo.Create(ctx, receipt)
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(40000)})

	result, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Dollars:   decimal.NewFromInt(40000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Receipt.PaymentMethod != domain.MethodDollars {
		t.Errorf("expected method %q, got %q", domain.MethodDollars, result.Receipt.PaymentMethod)
	}
	if result.Movements[0].Currency != domain.CurrencyUSD {
		t.Errorf("dollar income must land in USD, got %q", result.Movements[0].Currency)
	}
}

func TestPaymentUseCase_MissingTenantStillApplies(t *testing.T) {
	uc, receiptRepo, _, movementRepo, _ := newPaymentFixture(t)
	ctx := context.Background()

	receiptRepo.Create(ctx, pendingReceipt(10000))

	result, err := uc.ApplyPayment(ctx, usecase.ApplyPaymentInput{
		ReceiptID: "rec-1",
		Cash:      decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Receipt.Status != domain.StatusPaid {
		t.Errorf("expected status %q, got %q", domain.StatusPaid, result.Receipt.Status)
	}
	if got := len(movementRepo.Movements()); got != 1 {
		t.Errorf("expected 1 movement, got %d", got)
	}
}

func TestApplyPaymentInput_DominantMethod(t *testing.T) {
	tests := []struct {
		name     string
		cash     int64
		transfer int64
		dollars  int64
		want     domain.PaymentMethod
	}{
		{"cash only", 100, 0, 0, domain.MethodCash},
		{"transfer wins", 100, 200, 0, domain.MethodTransfer},
		{"dollars win", 100, 200, 300, domain.MethodDollars},
		{"cash wins tie", 100, 100, 0, domain.MethodCash},
		{"transfer ties dollars", 0, 100, 100, domain.MethodTransfer},
		{"three-way tie", 100, 100, 100, domain.MethodCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := usecase.ApplyPaymentInput{
				Cash:     decimal.NewFromInt(tt.cash),
				Transfer: decimal.NewFromInt(tt.transfer),
				Dollars:  decimal.NewFromInt(tt.dollars),
			}
			if got := input.DominantMethod(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
