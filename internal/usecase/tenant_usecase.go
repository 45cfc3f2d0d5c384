package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// TenantUseCase manages tenants and their link to properties. Assignment
// keeps both sides of the denormalized pair in step: the tenant's property
// fields and the property's occupancy.
type TenantUseCase struct {
	tenantRepo   TenantRepository
	propertyRepo PropertyRepository
	receiptRepo  ReceiptRepository
	balanceCache BalanceCache
	idGen        IDGenerator
	cacheTTL     time.Duration
}

// NewTenantUseCase creates a new TenantUseCase.
func NewTenantUseCase(
	tenantRepo TenantRepository,
	propertyRepo PropertyRepository,
	receiptRepo ReceiptRepository,
	balanceCache BalanceCache,
	idGen IDGenerator,
	cacheTTL time.Duration,
) *TenantUseCase {
	return &TenantUseCase{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		receiptRepo:  receiptRepo,
		balanceCache: balanceCache,
		idGen:        idGen,
		cacheTTL:     cacheTTL,
	}
}

// CreateTenantInput represents tenant creation data.
type CreateTenantInput struct {
	Name          string
	Email         string
	Phone         string
	ContractStart time.Time
	ContractEnd   time.Time
	Deposit       decimal.Decimal
	Guarantor     domain.Guarantor
}

// CreateTenant registers a tenant with no property assigned.
func (uc *TenantUseCase) CreateTenant(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	if input.Name == "" {
		return nil, domain.ErrTenantNotFound
	}
	if err := domain.ValidateAmount(input.Deposit); err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		ContractStart: input.ContractStart,
		ContractEnd:   input.ContractEnd,
		Deposit:       input.Deposit,
		Guarantor:     input.Guarantor,
		Balance:       decimal.Zero,
		Status:        domain.TenantActive,
	}

	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

// GetTenant returns a tenant by id.
func (uc *TenantUseCase) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	return uc.tenantRepo.GetByID(ctx, id)
}

// ListTenants returns all tenants.
func (uc *TenantUseCase) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	return uc.tenantRepo.List(ctx)
}

// GetBalance returns the tenant's ledger balance, recomputed from the
// receipt history. The cache only short-circuits the fold; on any cache
// error the fold runs anyway.
func (uc *TenantUseCase) GetBalance(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	if cached, ok, err := uc.balanceCache.Get(ctx, tenantID); err == nil && ok {
		return cached, nil
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}

	receipts, err := uc.receiptRepo.ListByTenant(ctx, tenant.Name)
	if err != nil {
		return decimal.Zero, err
	}

	balance := BuildStatement(tenant.Name, receipts).FinalBalance

	// Advisory only.
	_ = uc.balanceCache.Set(ctx, tenantID, balance, uc.cacheTTL)

	return balance, nil
}

// AssignProperty links a tenant to a property and marks it occupied. A
// tenant already holding another property is moved: the old property is
// released first.
func (uc *TenantUseCase) AssignProperty(ctx context.Context, tenantID, propertyID string) (*domain.Tenant, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if tenant.PropertyID != nil && *tenant.PropertyID != propertyID {
		if err := uc.propertyRepo.UpdateOccupancy(ctx, *tenant.PropertyID, "", domain.PropertyAvailable); err != nil {
			return nil, err
		}
	}

	tenant.PropertyID = &property.ID
	tenant.Property = property.Name

	if err := uc.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.UpdateOccupancy(ctx, property.ID, tenant.Name, domain.PropertyOccupied); err != nil {
		return nil, err
	}

	return tenant, nil
}

// UnassignProperty detaches a tenant from their property and releases it.
func (uc *TenantUseCase) UnassignProperty(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.PropertyID == nil {
		return tenant, nil
	}

	propertyID := *tenant.PropertyID
	tenant.PropertyID = nil
	tenant.Property = ""

	if err := uc.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.UpdateOccupancy(ctx, propertyID, "", domain.PropertyAvailable); err != nil {
		return nil, err
	}

	return tenant, nil
}
