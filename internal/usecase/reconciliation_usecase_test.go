package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
	"github.com/avidela/rentas/internal/usecase/mocks"
)

func newReconciliationFixture(t *testing.T) (*usecase.ReconciliationUseCase, *mocks.MockTenantRepository, *mocks.MockReceiptRepository, *mocks.MockMovementRepository, *mocks.MockRegisterRepository) {
	t.Helper()

	tenantRepo := mocks.NewMockTenantRepository()
	receiptRepo := mocks.NewMockReceiptRepository()
	movementRepo := mocks.NewMockMovementRepository()
	registerRepo := mocks.NewMockRegisterRepository()

	uc := usecase.NewReconciliationUseCase(tenantRepo, receiptRepo, movementRepo, registerRepo)
	return uc, tenantRepo, receiptRepo, movementRepo, registerRepo
}

func TestReconciliationUseCase_Clean(t *testing.T) {
	uc, tenantRepo, receiptRepo, movementRepo, registerRepo := newReconciliationFixture(t)
	ctx := context.Background()

	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(20000)})
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-1", Tenant: "Juan Pérez", Month: time.March, Year: 2026,
		Rent: decimal.NewFromInt(20000), Status: domain.StatusPending,
	})

	movementRepo.Create(ctx, nil, &domain.CashMovement{
		ID: "mov-1", Type: domain.MovementIncome,
		Amount: decimal.NewFromInt(10000), Currency: domain.CurrencyARS,
	})
	registerRepo.Add(ctx, nil, domain.CurrencyARS, decimal.NewFromInt(10000))

	report, err := uc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report)
	}
	if report.TenantsChecked != 1 {
		t.Errorf("expected 1 tenant checked, got %d", report.TenantsChecked)
	}
	if report.RegistersChecked != 2 {
		t.Errorf("expected 2 registers checked, got %d", report.RegistersChecked)
	}
}

func TestReconciliationUseCase_TenantDrift(t *testing.T) {
	uc, tenantRepo, receiptRepo, _, _ := newReconciliationFixture(t)
	ctx := context.Background()

	// Stored balance says 5000, the ledger says 20000.
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(5000)})
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-1", Tenant: "Juan Pérez", Month: time.March, Year: 2026,
		Rent: decimal.NewFromInt(20000), Status: domain.StatusPending,
	})

	report, err := uc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.TenantDiscrepancies) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(report.TenantDiscrepancies))
	}

	d := report.TenantDiscrepancies[0]
	if !d.StoredBalance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("stored balance: got %s", d.StoredBalance)
	}
	if !d.ComputedBalance.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("computed balance: got %s", d.ComputedBalance)
	}
	if !d.Difference.Equal(decimal.NewFromInt(-15000)) {
		t.Errorf("difference: got %s", d.Difference)
	}
}

func TestReconciliationUseCase_RegisterDrift(t *testing.T) {
	uc, _, _, movementRepo, registerRepo := newReconciliationFixture(t)
	ctx := context.Background()

	movementRepo.Create(ctx, nil, &domain.CashMovement{
		ID: "mov-1", Type: domain.MovementIncome,
		Amount: decimal.NewFromInt(10000), Currency: domain.CurrencyARS,
	})
	// Accumulator drifted by 500.
	registerRepo.Add(ctx, nil, domain.CurrencyARS, decimal.NewFromInt(10500))

	report, err := uc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.RegisterDiscrepancies) != 1 {
		t.Fatalf("expected 1 register discrepancy, got %d", len(report.RegisterDiscrepancies))
	}

	d := report.RegisterDiscrepancies[0]
	if d.Currency != domain.CurrencyARS {
		t.Errorf("expected ARS drift, got %q", d.Currency)
	}
	if !d.Difference.Equal(decimal.NewFromInt(500)) {
		t.Errorf("difference: got %s", d.Difference)
	}
}

func TestReconciliationUseCase_Repair(t *testing.T) {
	uc, tenantRepo, receiptRepo, _, _ := newReconciliationFixture(t)
	ctx := context.Background()

	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", Balance: decimal.NewFromInt(5000)})
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-1", Tenant: "Juan Pérez", Month: time.March, Year: 2026,
		Rent: decimal.NewFromInt(20000), Status: domain.StatusPending,
	})

	report, err := uc.Repair(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.TenantDiscrepancies) != 1 {
		t.Fatalf("expected 1 repaired discrepancy, got %d", len(report.TenantDiscrepancies))
	}

	tenant, _ := tenantRepo.GetByID(ctx, "ten-1")
	if !tenant.Balance.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("expected repaired balance 20000, got %s", tenant.Balance)
	}

	after, err := uc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !after.Clean() {
		t.Errorf("expected clean report after repair, got %+v", after)
	}
}
