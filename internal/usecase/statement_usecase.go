package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// StatementUseCase rebuilds a tenant's running account from the receipt
// history. The computation is pure and runs on every read; it never trusts
// the cached tenant balance or the receipts' previousBalance snapshots.
type StatementUseCase struct {
	receiptRepo ReceiptRepository
	tenantRepo  TenantRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(receiptRepo ReceiptRepository, tenantRepo TenantRepository) *StatementUseCase {
	return &StatementUseCase{receiptRepo: receiptRepo, tenantRepo: tenantRepo}
}

// StatementRow is one receipt's line in the running account.
type StatementRow struct {
	Month           time.Month
	Year            int
	PeriodLabel     string
	Rent            decimal.Decimal
	Expenses        decimal.Decimal
	Due             decimal.Decimal
	PreviousBalance decimal.Decimal
	Payment         decimal.Decimal
	Balance         decimal.Decimal
	Settled         bool
	Status          domain.ReceiptStatus
}

// Statement is the full recomputed account of one tenant.
type Statement struct {
	Tenant       string
	Rows         []StatementRow
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
	FinalBalance decimal.Decimal
}

// monthNames are the Spanish period labels.
var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// PeriodLabel formats a billing period.
func PeriodLabel(month time.Month, year int) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d %d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// BuildStatement folds a receipt set into statement rows. The input order
// is irrelevant: rows come out sorted by (year, month), and the carried
// balance is derived entirely from the fold. Due amounts exclude other
// charges and the stored previousBalance snapshot so the recomputation is
// self-consistent regardless of snapshot drift.
func BuildStatement(tenant string, receipts []*domain.Receipt) *Statement {
	sorted := make([]*domain.Receipt, len(receipts))
	copy(sorted, receipts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})

	statement := &Statement{
		Tenant:       tenant,
		Rows:         make([]StatementRow, 0, len(sorted)),
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
		FinalBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for _, r := range sorted {
		due := r.Due()

		payment := decimal.Zero
		if r.Settled() {
			payment = due
			statement.TotalPaid = statement.TotalPaid.Add(due)
		}

		if r.Status == domain.StatusPending || r.Status == domain.StatusUnconfirmed {
			statement.TotalPending = statement.TotalPending.Add(due)
		}

		row := StatementRow{
			Month:           r.Month,
			Year:            r.Year,
			PeriodLabel:     PeriodLabel(r.Month, r.Year),
			Rent:            r.Rent,
			Expenses:        r.Expenses,
			Due:             due,
			PreviousBalance: balance,
			Payment:         payment,
			Balance:         balance.Add(due).Sub(payment),
			Settled:         r.Settled(),
			Status:          r.Status,
		}

		balance = row.Balance
		statement.Rows = append(statement.Rows, row)
	}

	statement.FinalBalance = balance
	return statement
}

// GetStatement recomputes the statement for a tenant by id.
func (uc *StatementUseCase) GetStatement(ctx context.Context, tenantID string) (*Statement, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	receipts, err := uc.receiptRepo.ListByTenant(ctx, tenant.Name)
	if err != nil {
		return nil, err
	}

	return BuildStatement(tenant.Name, receipts), nil
}

// GetStatementByName recomputes the statement for a tenant by name. Used by
// the monthly report, which joins on denormalized names.
func (uc *StatementUseCase) GetStatementByName(ctx context.Context, tenantName string) (*Statement, error) {
	receipts, err := uc.receiptRepo.ListByTenant(ctx, tenantName)
	if err != nil {
		return nil, err
	}

	return BuildStatement(tenantName, receipts), nil
}
