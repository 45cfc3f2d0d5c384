package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id string) (*domain.Receipt, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	UpdateTx(ctx context.Context, tx Transaction, receipt *domain.Receipt) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
	ListByTenant(ctx context.Context, tenantName string) ([]*domain.Receipt, error)
	// ListByPeriod selects receipts whose due date falls inside the period.
	ListByPeriod(ctx context.Context, month time.Month, year int) ([]*domain.Receipt, error)
	CountByYear(ctx context.Context, year int) (int, error)
}

// TenantRepository defines data access for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetByName(ctx context.Context, name string) (*domain.Tenant, error)
	GetByNameForUpdate(ctx context.Context, tx Transaction, name string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal) error
	List(ctx context.Context) ([]*domain.Tenant, error)
}

// PropertyRepository defines data access for properties.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	GetByName(ctx context.Context, name string) (*domain.Property, error)
	UpdateOccupancy(ctx context.Context, id string, tenantName string, status domain.PropertyStatus) error
	List(ctx context.Context) ([]*domain.Property, error)
}

// MovementRepository defines data access for cash movements. Movements are
// append-only; there is no update or delete.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.CashMovement) error
	List(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error)
	Balance(ctx context.Context, currency domain.Currency) (decimal.Decimal, error)
	BalanceTx(ctx context.Context, tx Transaction, currency domain.Currency) (decimal.Decimal, error)
	BalanceByMethod(ctx context.Context, currency domain.Currency, method domain.PaymentMethod) (decimal.Decimal, error)
	IncomeByDate(ctx context.Context, day time.Time) (map[domain.Currency]decimal.Decimal, error)
}

// RegisterRepository maintains the per-currency accumulator rows. The rows
// are a cache over the movement sums and the lock anchor for deliveries.
type RegisterRepository interface {
	GetForUpdate(ctx context.Context, tx Transaction, currency domain.Currency) (decimal.Decimal, error)
	Add(ctx context.Context, tx Transaction, currency domain.Currency, delta decimal.Decimal) error
	All(ctx context.Context) (map[domain.Currency]decimal.Decimal, error)
}

// Snapshot is the full exportable state of the system.
type Snapshot struct {
	Properties    []*domain.Property
	Tenants       []*domain.Tenant
	Receipts      []*domain.Receipt
	CashMovements []*domain.CashMovement
}

// SnapshotRepository reads and replaces the whole store. ReplaceAll is
// all-or-nothing: one transaction truncates every table and bulk-inserts the
// snapshot, rebuilding the register rows from the movements.
type SnapshotRepository interface {
	Export(ctx context.Context) (*Snapshot, error)
	ReplaceAll(ctx context.Context, snapshot *Snapshot) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// BalanceCache holds advisory tenant balances. A miss or error is never
// fatal; the statement builder is the authority.
type BalanceCache interface {
	Get(ctx context.Context, tenantID string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, tenantID string, balance decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, tenantID string) error
}

// IdempotencyStore guards payment replays. CheckAndSet reports whether the
// key was already seen and returns the stored response when it was.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Clock abstracts the current date so overdue projection and movement dating
// are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
