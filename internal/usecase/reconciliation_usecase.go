package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// ReconciliationUseCase cross-checks the derived figures against their
// denormalized copies: every tenant's stored balance against the statement
// fold, and every register accumulator row against the movement sum.
type ReconciliationUseCase struct {
	tenantRepo   TenantRepository
	receiptRepo  ReceiptRepository
	movementRepo MovementRepository
	registerRepo RegisterRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	tenantRepo TenantRepository,
	receiptRepo ReceiptRepository,
	movementRepo MovementRepository,
	registerRepo RegisterRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		tenantRepo:   tenantRepo,
		receiptRepo:  receiptRepo,
		movementRepo: movementRepo,
		registerRepo: registerRepo,
	}
}

// TenantDiscrepancy is a tenant whose stored balance drifted from the
// statement fold.
type TenantDiscrepancy struct {
	TenantID        string
	TenantName      string
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
}

// RegisterDiscrepancy is a register row whose accumulator drifted from the
// movement sum.
type RegisterDiscrepancy struct {
	Currency        domain.Currency
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
}

// ReconciliationReport is the result of one full pass.
type ReconciliationReport struct {
	TenantsChecked        int
	RegistersChecked      int
	TenantDiscrepancies   []TenantDiscrepancy
	RegisterDiscrepancies []RegisterDiscrepancy
}

// Clean reports whether the pass found no drift.
func (r *ReconciliationReport) Clean() bool {
	return len(r.TenantDiscrepancies) == 0 && len(r.RegisterDiscrepancies) == 0
}

// Reconcile runs a full pass. It only reports; repair is a separate,
// deliberate action.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{}

	tenants, err := uc.tenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, tenant := range tenants {
		receipts, err := uc.receiptRepo.ListByTenant(ctx, tenant.Name)
		if err != nil {
			return nil, err
		}

		computed := BuildStatement(tenant.Name, receipts).FinalBalance
		report.TenantsChecked++

		if !tenant.Balance.Equal(computed) {
			report.TenantDiscrepancies = append(report.TenantDiscrepancies, TenantDiscrepancy{
				TenantID:        tenant.ID,
				TenantName:      tenant.Name,
				StoredBalance:   tenant.Balance,
				ComputedBalance: computed,
				Difference:      tenant.Balance.Sub(computed),
			})
		}
	}

	registers, err := uc.registerRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, currency := range []domain.Currency{domain.CurrencyARS, domain.CurrencyUSD} {
		stored, ok := registers[currency]
		if !ok {
			stored = decimal.Zero
		}

		computed, err := uc.movementRepo.Balance(ctx, currency)
		if err != nil {
			return nil, err
		}

		report.RegistersChecked++

		if !stored.Equal(computed) {
			report.RegisterDiscrepancies = append(report.RegisterDiscrepancies, RegisterDiscrepancy{
				Currency:        currency,
				StoredBalance:   stored,
				ComputedBalance: computed,
				Difference:      stored.Sub(computed),
			})
		}
	}

	return report, nil
}

// Repair overwrites every drifted copy with its recomputed value and returns
// the report of what it fixed.
func (uc *ReconciliationUseCase) Repair(ctx context.Context) (*ReconciliationReport, error) {
	report, err := uc.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range report.TenantDiscrepancies {
		tenant, err := uc.tenantRepo.GetByID(ctx, d.TenantID)
		if err != nil {
			return nil, err
		}

		tenant.Balance = d.ComputedBalance
		if err := uc.tenantRepo.Update(ctx, tenant); err != nil {
			return nil, err
		}
	}

	return report, nil
}
