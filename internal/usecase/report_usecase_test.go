package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
	"github.com/avidela/rentas/internal/usecase/mocks"
)

func TestReportUseCase_MonthlyReport(t *testing.T) {
	ctx := context.Background()

	receiptRepo := mocks.NewMockReceiptRepository()
	tenantRepo := mocks.NewMockTenantRepository()
	propertyRepo := mocks.NewMockPropertyRepository()

	properties := []*domain.Property{
		{ID: "prop-1", Name: "Depto 1A", Building: "Edificio Norte"},
		{ID: "prop-2", Name: "Depto 2B", Building: "Edificio Norte"},
		{ID: "prop-3", Name: "Local 1", Building: "Edificio Sur"},
	}
	propertyRepo.ListFunc = func(ctx context.Context) ([]*domain.Property, error) {
		return properties, nil
	}

	propA, propC := "prop-1", "prop-3"
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-1", Name: "Juan Pérez", PropertyID: &propA})
	tenantRepo.Create(ctx, &domain.Tenant{ID: "ten-2", Name: "María López", PropertyID: &propC})

	// Juan paid March in full; his earlier period is still open.
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-1", Tenant: "Juan Pérez", Month: time.March, Year: 2026,
		Rent: decimal.NewFromInt(50000), Total: decimal.NewFromInt(50000),
		PaidAmount: decimal.NewFromInt(50000), Status: domain.StatusPaid,
	})
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-2", Tenant: "Juan Pérez", Month: time.February, Year: 2026,
		Rent: decimal.NewFromInt(50000), Total: decimal.NewFromInt(50000),
		RemainingBalance: decimal.NewFromInt(50000), Status: domain.StatusPending,
	})
	// María has no receipt in March at all.
	receiptRepo.Create(ctx, &domain.Receipt{
		ID: "rec-3", Tenant: "María López", Month: time.January, Year: 2026,
		Rent: decimal.NewFromInt(30000), Total: decimal.NewFromInt(30000),
		RemainingBalance: decimal.NewFromInt(30000), Status: domain.StatusPending,
	})

	uc := usecase.NewReportUseCase(propertyRepo, tenantRepo, receiptRepo)

	report, err := uc.MonthlyReport(ctx, time.March, 2026)
	require.NoError(t, err)

	require.Len(t, report.Groups, 2)

	norte := report.Groups[0]
	assert.Equal(t, "Edificio Norte", norte.Building)
	require.Len(t, norte.Rows, 2)

	juan := norte.Rows[0]
	assert.Equal(t, "Juan Pérez", juan.Tenant)
	assert.True(t, juan.PaidAmount.Equal(decimal.NewFromInt(50000)), "paid %s", juan.PaidAmount)
	// Debt is the whole ledger balance, not just this period.
	assert.True(t, juan.Debt.Equal(decimal.NewFromInt(50000)), "debt %s", juan.Debt)

	vacant := norte.Rows[1]
	assert.Equal(t, "Sin inquilino", vacant.Tenant)
	assert.True(t, vacant.PaidAmount.IsZero())
	assert.True(t, vacant.Debt.IsZero())

	sur := report.Groups[1]
	assert.Equal(t, "Edificio Sur", sur.Building)
	require.Len(t, sur.Rows, 1)

	maria := sur.Rows[0]
	assert.Equal(t, "María López", maria.Tenant)
	assert.True(t, maria.PaidAmount.IsZero(), "no receipt this period")
	assert.True(t, maria.Debt.Equal(decimal.NewFromInt(30000)), "debt %s", maria.Debt)

	assert.True(t, norte.TotalPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, norte.TotalDebt.Equal(decimal.NewFromInt(50000)))
	assert.True(t, report.TotalPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, report.TotalDebt.Equal(decimal.NewFromInt(80000)))
}

func TestReportUseCase_MonthlyReportInvalidPeriod(t *testing.T) {
	uc := usecase.NewReportUseCase(
		mocks.NewMockPropertyRepository(),
		mocks.NewMockTenantRepository(),
		mocks.NewMockReceiptRepository(),
	)

	_, err := uc.MonthlyReport(context.Background(), time.Month(0), 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = uc.MonthlyReport(context.Background(), time.March, 1900)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReportUseCase_MonthlyReportEmpty(t *testing.T) {
	uc := usecase.NewReportUseCase(
		mocks.NewMockPropertyRepository(),
		mocks.NewMockTenantRepository(),
		mocks.NewMockReceiptRepository(),
	)

	report, err := uc.MonthlyReport(context.Background(), time.March, 2026)
	require.NoError(t, err)
	assert.Empty(t, report.Groups)
	assert.True(t, report.TotalPaid.IsZero())
	assert.True(t, report.TotalDebt.IsZero())
}
