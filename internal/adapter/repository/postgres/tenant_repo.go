package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// TenantRepository implements usecase.TenantRepository.
type TenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

const tenantColumns = `
	id, name, email, phone, property_id, property_name,
	contract_start, contract_end, deposit,
	guarantor_name, guarantor_email, guarantor_phone,
	balance, status
`

// Create inserts a new tenant.
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.PropertyID,
		tenant.Property,
		timeToPgTimestamptz(tenant.ContractStart),
		timeToPgTimestamptz(tenant.ContractEnd),
		decimalToNumeric(tenant.Deposit),
		tenant.Guarantor.Name,
		tenant.Guarantor.Email,
		tenant.Guarantor.Phone,
		decimalToNumeric(tenant.Balance),
		string(tenant.Status),
	)

	return err
}

// GetByID retrieves a tenant by ID.
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByName retrieves a tenant by name. Receipts and movements reference
// tenants by their denormalized name.
func (r *TenantRepository) GetByName(ctx context.Context, name string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE name = $1`
	return r.getOne(ctx, query, name)
}

// GetByNameForUpdate retrieves a tenant by name with a FOR UPDATE lock.
func (r *TenantRepository) GetByNameForUpdate(ctx context.Context, tx usecase.Transaction, name string) (*domain.Tenant, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE name = $1 FOR UPDATE`

	tenant, err := scanTenant(pgxTx.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}

		return nil, err
	}

	return tenant, nil
}

// Update persists a mutated tenant.
func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants SET
			name = $2, email = $3, phone = $4, property_id = $5,
			property_name = $6, contract_start = $7, contract_end = $8,
			deposit = $9, guarantor_name = $10, guarantor_email = $11,
			guarantor_phone = $12, balance = $13, status = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.PropertyID,
		tenant.Property,
		timeToPgTimestamptz(tenant.ContractStart),
		timeToPgTimestamptz(tenant.ContractEnd),
		decimalToNumeric(tenant.Deposit),
		tenant.Guarantor.Name,
		tenant.Guarantor.Email,
		tenant.Guarantor.Phone,
		decimalToNumeric(tenant.Balance),
		string(tenant.Status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}

	return nil
}

// UpdateBalance overwrites the cached balance inside a transaction.
func (r *TenantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE tenants SET balance = $2 WHERE id = $1`,
		id, decimalToNumeric(balance),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}

	return nil
}

// List retrieves all tenants ordered by name.
func (r *TenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}

func (r *TenantRepository) getOne(ctx context.Context, query string, arg any) (*domain.Tenant, error) {
	tenant, err := scanTenant(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}

		return nil, err
	}

	return tenant, nil
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var (
		tenant        domain.Tenant
		contractStart pgtype.Timestamptz
		contractEnd   pgtype.Timestamptz
		deposit       pgtype.Numeric
		balance       pgtype.Numeric
		status        string
	)

	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Email,
		&tenant.Phone,
		&tenant.PropertyID,
		&tenant.Property,
		&contractStart,
		&contractEnd,
		&deposit,
		&tenant.Guarantor.Name,
		&tenant.Guarantor.Email,
		&tenant.Guarantor.Phone,
		&balance,
		&status,
	)
	if err != nil {
		return nil, err
	}

	tenant.ContractStart = pgTimestamptzToTime(contractStart)
	tenant.ContractEnd = pgTimestamptzToTime(contractEnd)
	tenant.Deposit = numericToDecimal(deposit)
	tenant.Balance = numericToDecimal(balance)
	tenant.Status = domain.TenantStatus(status)

	return &tenant, nil
}
