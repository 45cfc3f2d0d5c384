package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// ReportUseCase builds the monthly matrix: every property, its current
// tenant, what the period collected and the tenant's total exposure,
// grouped by building.
type ReportUseCase struct {
	propertyRepo PropertyRepository
	tenantRepo   TenantRepository
	receiptRepo  ReceiptRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	propertyRepo PropertyRepository,
	tenantRepo TenantRepository,
	receiptRepo ReceiptRepository,
) *ReportUseCase {
	return &ReportUseCase{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		receiptRepo:  receiptRepo,
	}
}

// ReportRow is one property's line in the monthly report.
type ReportRow struct {
	Building   string
	Property   string
	Tenant     string
	PaidAmount decimal.Decimal
	// Debt is the tenant's current ledger balance, not the period's own
	// remaining balance: a tenant current on this period may still carry
	// debt from earlier ones, and the report shows total exposure.
	Debt decimal.Decimal
}

// BuildingGroup is a building's rows plus its column subtotals.
type BuildingGroup struct {
	Building  string
	Rows      []ReportRow
	TotalPaid decimal.Decimal
	TotalDebt decimal.Decimal
}

// MonthlyReport is the full matrix for one period.
type MonthlyReport struct {
	Month     time.Month
	Year      int
	Groups    []BuildingGroup
	TotalPaid decimal.Decimal
	TotalDebt decimal.Decimal
}

// MonthlyReport builds the matrix for a period. Receipts are matched by
// their due date falling inside the period; properties are ordered by
// building name, keeping property order stable within a building.
func (uc *ReportUseCase) MonthlyReport(ctx context.Context, month time.Month, year int) (*MonthlyReport, error) {
	if err := domain.ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	properties, err := uc.propertyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].Building < properties[j].Building
	})

	tenants, err := uc.tenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	tenantByProperty := make(map[string]*domain.Tenant)
	for _, t := range tenants {
		if t.PropertyID != nil {
			tenantByProperty[*t.PropertyID] = t
		}
	}

	periodReceipts, err := uc.receiptRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}

	receiptByTenant := make(map[string]*domain.Receipt)
	for _, r := range periodReceipts {
		receiptByTenant[r.Tenant] = r
	}

	report := &MonthlyReport{
		Month:     month,
		Year:      year,
		TotalPaid: decimal.Zero,
		TotalDebt: decimal.Zero,
	}

	for _, p := range properties {
		row := ReportRow{
			Building:   p.Building,
			Property:   p.Name,
			Tenant:     VacantPlaceholder,
			PaidAmount: decimal.Zero,
			Debt:       decimal.Zero,
		}

		if tenant, ok := tenantByProperty[p.ID]; ok {
			row.Tenant = tenant.Name

			if receipt, ok := receiptByTenant[tenant.Name]; ok {
				row.PaidAmount = receipt.PaidAmount
			}

			tenantReceipts, err := uc.receiptRepo.ListByTenant(ctx, tenant.Name)
			if err != nil {
				return nil, err
			}
			row.Debt = BuildStatement(tenant.Name, tenantReceipts).FinalBalance
		}

		last := len(report.Groups) - 1
		if last < 0 || report.Groups[last].Building != row.Building {
			report.Groups = append(report.Groups, BuildingGroup{
				Building:  row.Building,
				TotalPaid: decimal.Zero,
				TotalDebt: decimal.Zero,
			})
			last++
		}

		group := &report.Groups[last]
		group.Rows = append(group.Rows, row)
		group.TotalPaid = group.TotalPaid.Add(row.PaidAmount)
		group.TotalDebt = group.TotalDebt.Add(row.Debt)

		report.TotalPaid = report.TotalPaid.Add(row.PaidAmount)
		report.TotalDebt = report.TotalDebt.Add(row.Debt)
	}

	return report, nil
}
