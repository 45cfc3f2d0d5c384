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

func newReceiptFixture(t *testing.T, now time.Time) (*usecase.ReceiptUseCase, *mocks.MockReceiptRepository, *mocks.MockTenantRepository, *mocks.MockPropertyRepository) {
	t.Helper()

	receiptRepo := mocks.NewMockReceiptRepository()
	tenantRepo := mocks.NewMockTenantRepository()
	propertyRepo := mocks.NewMockPropertyRepository()

	uc := usecase.NewReceiptUseCase(
		receiptRepo,
		tenantRepo,
		propertyRepo,
		mocks.NewMockIDGenerator(),
		mocks.FixedClock{Time: now},
	)

	return uc, receiptRepo, tenantRepo, propertyRepo
}

func seedTenancy(t *testing.T, tenantRepo *mocks.MockTenantRepository, propertyRepo *mocks.MockPropertyRepository, balance int64, nextUpdate time.Time) {
	t.Helper()
	ctx := context.Background()

	propertyRepo.Create(ctx, &domain.Property{
		ID:             "prop-1",
		Name:           "Depto 3B",
		Building:       "Edificio Norte",
		NextUpdateDate: nextUpdate,
		Status:         domain.PropertyOccupied,
	})

	propID := "prop-1"
	tenantRepo.Create(ctx, &domain.Tenant{
		ID:         "ten-1",
		Name:       "Juan Pérez",
		PropertyID: &propID,
		Property:   "Depto 3B",
		Balance:    decimal.NewFromInt(balance),
	})
}

func TestReceiptUseCase_CreateReceipt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, _, tenantRepo, propertyRepo := newReceiptFixture(t, now)
	seedTenancy(t, tenantRepo, propertyRepo, 5000, now.AddDate(1, 0, 0))
	ctx := context.Background()

	out, err := uc.CreateReceipt(ctx, usecase.CreateReceiptInput{
		TenantName: "Juan Pérez",
		Month:      time.March,
		Year:       2026,
		Rent:       decimal.NewFromInt(50000),
		Expenses:   decimal.NewFromInt(5000),
		OtherCharges: []domain.Charge{
			{Description: "Reparación canilla", Amount: decimal.NewFromInt(2000)},
		},
		Currency: domain.CurrencyARS,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	receipt := out.Receipt
	if receipt.Number != "REC-2026-001" {
		t.Errorf("expected number REC-2026-001, got %q", receipt.Number)
	}
	if receipt.Status != domain.StatusUnconfirmed {
		t.Errorf("expected status %q, got %q", domain.StatusUnconfirmed, receipt.Status)
	}
	// 50000 + 5000 + 2000 charges + 5000 carried balance.
	if !receipt.Total.Equal(decimal.NewFromInt(62000)) {
		t.Errorf("expected total 62000, got %s", receipt.Total)
	}
	if !receipt.RemainingBalance.Equal(receipt.Total) {
		t.Errorf("remaining must equal total at creation, got %s", receipt.RemainingBalance)
	}
	if !receipt.PreviousBalance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected snapshot 5000, got %s", receipt.PreviousBalance)
	}
	if receipt.Building != "Edificio Norte" {
		t.Errorf("expected building from property, got %q", receipt.Building)
	}

	wantDue := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !receipt.DueDate.Equal(wantDue) {
		t.Errorf("expected due date %s, got %s", wantDue, receipt.DueDate)
	}
	if out.UpdateDue {
		t.Error("tariff reminder must not fire before nextUpdateDate")
	}
}

func TestReceiptUseCase_CreateReceiptSequence(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, tenantRepo, propertyRepo := newReceiptFixture(t, now)
	seedTenancy(t, tenantRepo, propertyRepo, 0, now.AddDate(1, 0, 0))
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{ID: "old-1", Year: 2026})
	receiptRepo.Create(ctx, &domain.Receipt{ID: "old-2", Year: 2026})
	receiptRepo.Create(ctx, &domain.Receipt{ID: "old-3", Year: 2025})

	out, err := uc.CreateReceipt(ctx, usecase.CreateReceiptInput{
		TenantName: "Juan Pérez",
		Month:      time.April,
		Year:       2026,
		Rent:       decimal.NewFromInt(50000),
		Currency:   domain.CurrencyARS,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The sequence counts the receipt's year, not the wall-clock year.
	if out.Receipt.Number != "REC-2026-003" {
		t.Errorf("expected number REC-2026-003, got %q", out.Receipt.Number)
	}
}

func TestReceiptUseCase_CreateReceiptTariffReminder(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, _, tenantRepo, propertyRepo := newReceiptFixture(t, now)
	seedTenancy(t, tenantRepo, propertyRepo, 0, now.AddDate(0, -1, 0))
	ctx := context.Background()

	out, err := uc.CreateReceipt(ctx, usecase.CreateReceiptInput{
		TenantName: "Juan Pérez",
		Month:      time.March,
		Year:       2026,
		Rent:       decimal.NewFromInt(50000),
		Currency:   domain.CurrencyARS,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.UpdateDue {
		t.Error("expected tariff reminder when nextUpdateDate has passed")
	}
}

func TestReceiptUseCase_CreateReceiptValidation(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   usecase.CreateReceiptInput
		wantErr error
	}{
		{
			name: "invalid month",
			input: usecase.CreateReceiptInput{
				TenantName: "Juan Pérez",
				Month:      time.Month(13),
				Year:       2026,
				Rent:       decimal.NewFromInt(100),
				Currency:   domain.CurrencyARS,
			},
			wantErr: domain.ErrInvalidPeriod,
		},
		{
			name: "invalid currency",
			input: usecase.CreateReceiptInput{
				TenantName: "Juan Pérez",
				Month:      time.March,
				Year:       2026,
				Rent:       decimal.NewFromInt(100),
				Currency:   domain.Currency("EUR"),
			},
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name: "negative rent",
			input: usecase.CreateReceiptInput{
				TenantName: "Juan Pérez",
				Month:      time.March,
				Year:       2026,
				Rent:       decimal.NewFromInt(-1),
				Currency:   domain.CurrencyARS,
			},
			wantErr: domain.ErrNegativeInstrument,
		},
		{
			name: "negative charge",
			input: usecase.CreateReceiptInput{
				TenantName:   "Juan Pérez",
				Month:        time.March,
				Year:         2026,
				Rent:         decimal.NewFromInt(100),
				OtherCharges: []domain.Charge{{Description: "x", Amount: decimal.NewFromInt(-5)}},
				Currency:     domain.CurrencyARS,
			},
			wantErr: domain.ErrNegativeInstrument,
		},
		{
			name: "unknown tenant",
			input: usecase.CreateReceiptInput{
				TenantName: "Nadie",
				Month:      time.March,
				Year:       2026,
				Rent:       decimal.NewFromInt(100),
				Currency:   domain.CurrencyARS,
			},
			wantErr: domain.ErrTenantNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, tenantRepo, propertyRepo := newReceiptFixture(t, now)
			seedTenancy(t, tenantRepo, propertyRepo, 0, now.AddDate(1, 0, 0))

			_, err := uc.CreateReceipt(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReceiptUseCase_ConfirmReceipt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, _, _ := newReceiptFixture(t, now)
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{ID: "rec-1", Status: domain.StatusUnconfirmed})

	receipt, err := uc.ConfirmReceipt(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != domain.StatusPending {
		t.Errorf("expected status %q, got %q", domain.StatusPending, receipt.Status)
	}

	// Confirming twice is rejected.
	if _, err := uc.ConfirmReceipt(ctx, "rec-1"); !errors.Is(err, domain.ErrReceiptNotConfirmable) {
		t.Fatalf("expected ErrReceiptNotConfirmable, got %v", err)
	}
}

func TestReceiptUseCase_UpdateReceipt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, _, _ := newReceiptFixture(t, now)
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{
		ID:               "rec-1",
		Month:            time.March,
		Year:             2026,
		Rent:             decimal.NewFromInt(50000),
		PreviousBalance:  decimal.NewFromInt(5000),
		Total:            decimal.NewFromInt(55000),
		PaidAmount:       decimal.NewFromInt(10000),
		RemainingBalance: decimal.NewFromInt(45000),
		Currency:         domain.CurrencyARS,
		Status:           domain.StatusPending,
	})

	receipt, err := uc.UpdateReceipt(ctx, "rec-1", usecase.UpdateReceiptInput{
		Month:    time.March,
		Year:     2026,
		Rent:     decimal.NewFromInt(60000),
		Currency: domain.CurrencyARS,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Snapshot and paid amount survive; total and remaining are recomputed.
	if !receipt.Total.Equal(decimal.NewFromInt(65000)) {
		t.Errorf("expected total 65000, got %s", receipt.Total)
	}
	if !receipt.PaidAmount.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("paid amount must survive the edit, got %s", receipt.PaidAmount)
	}
	if !receipt.RemainingBalance.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("expected remaining 55000, got %s", receipt.RemainingBalance)
	}
}

func TestReceiptUseCase_UpdatePaidReceiptRejected(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, _, _ := newReceiptFixture(t, now)
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{ID: "rec-1", Status: domain.StatusPaid})

	_, err := uc.UpdateReceipt(ctx, "rec-1", usecase.UpdateReceiptInput{
		Month:    time.March,
		Year:     2026,
		Rent:     decimal.NewFromInt(1),
		Currency: domain.CurrencyARS,
	})
	if !errors.Is(err, domain.ErrReceiptNotEditable) {
		t.Fatalf("expected ErrReceiptNotEditable, got %v", err)
	}
}

func TestReceiptUseCase_GetReceiptProjectsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, _, _ := newReceiptFixture(t, now)
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{
		ID:               "rec-1",
		Status:           domain.StatusPending,
		RemainingBalance: decimal.NewFromInt(1000),
		DueDate:          time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	})

	receipt, err := uc.GetReceipt(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != domain.StatusOverdue {
		t.Errorf("expected projected status %q, got %q", domain.StatusOverdue, receipt.Status)
	}
}

func TestReceiptUseCase_DeleteReceipt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	uc, receiptRepo, _, _ := newReceiptFixture(t, now)
	ctx := context.Background()

	receiptRepo.Create(ctx, &domain.Receipt{ID: "rec-1", Status: domain.StatusPending})

	if err := uc.DeleteReceipt(ctx, "rec-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.DeleteReceipt(ctx, "rec-1"); !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}
}
