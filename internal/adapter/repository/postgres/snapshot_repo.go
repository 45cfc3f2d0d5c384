package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avidela/rentas/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository. ReplaceAll is the
// import path: it truncates every table and reloads it in one transaction, so
// a failed import leaves the previous data intact.
type SnapshotRepository struct {
	pool         *pgxpool.Pool
	receiptRepo  *ReceiptRepository
	tenantRepo   *TenantRepository
	propertyRepo *PropertyRepository
	movementRepo *MovementRepository
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{
		pool:         pool,
		receiptRepo:  NewReceiptRepository(pool),
		tenantRepo:   NewTenantRepository(pool),
		propertyRepo: NewPropertyRepository(pool),
		movementRepo: NewMovementRepository(pool),
	}
}

// Export reads the whole store.
func (r *SnapshotRepository) Export(ctx context.Context) (*usecase.Snapshot, error) {
	properties, err := r.propertyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	tenants, err := r.tenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// No pagination: the export must be complete.
	receipts, err := r.receiptRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := r.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.Snapshot{
		Properties:    properties,
		Tenants:       tenants,
		Receipts:      receipts,
		CashMovements: movements,
	}, nil
}

// ReplaceAll truncates every table and reloads the snapshot atomically. The
// register accumulator rows are rebuilt from the imported movements.
func (r *SnapshotRepository) ReplaceAll(ctx context.Context, snapshot *usecase.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `TRUNCATE properties, tenants, receipts, cash_movements, cash_registers`)
	if err != nil {
		return err
	}

	for _, p := range snapshot.Properties {
		_, err = tx.Exec(ctx, `
			INSERT INTO properties (`+propertyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			p.ID, p.Name, p.Building, p.Address,
			decimalToNumeric(p.Rent), decimalToNumeric(p.Expenses),
			timeToPgTimestamptz(p.NextUpdateDate), p.Tenant, string(p.Status), p.Notes,
		)
		if err != nil {
			return err
		}
	}

	for _, t := range snapshot.Tenants {
		_, err = tx.Exec(ctx, `
			INSERT INTO tenants (`+tenantColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			t.ID, t.Name, t.Email, t.Phone, t.PropertyID, t.Property,
			timeToPgTimestamptz(t.ContractStart), timeToPgTimestamptz(t.ContractEnd),
			decimalToNumeric(t.Deposit),
			t.Guarantor.Name, t.Guarantor.Email, t.Guarantor.Phone,
			decimalToNumeric(t.Balance), string(t.Status),
		)
		if err != nil {
			return err
		}
	}

	for _, receipt := range snapshot.Receipts {
		charges, err := json.Marshal(receipt.OtherCharges)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO receipts (`+receiptColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`,
			receipt.ID, receipt.Number, receipt.Tenant, receipt.Property, receipt.Building,
			int(receipt.Month), receipt.Year,
			decimalToNumeric(receipt.Rent), decimalToNumeric(receipt.Expenses), charges,
			decimalToNumeric(receipt.PreviousBalance), decimalToNumeric(receipt.Total),
			decimalToNumeric(receipt.PaidAmount), decimalToNumeric(receipt.RemainingBalance),
			string(receipt.Currency), string(receipt.PaymentMethod), string(receipt.Status),
			timeToPgTimestamptz(receipt.DueDate), timeToPgTimestamptz(receipt.CreatedDate),
		)
		if err != nil {
			return err
		}
	}

	for _, m := range snapshot.CashMovements {
		_, err = tx.Exec(ctx, `
			INSERT INTO cash_movements (`+movementColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			m.ID, string(m.Type), m.Description,
			decimalToNumeric(m.Amount), string(m.Currency), timeToPgTimestamptz(m.Date),
			m.Tenant, m.Property, string(m.PaymentMethod), string(m.DeliveryType),
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cash_registers (currency, balance)
		SELECT currency, `+signedAmount+`
		FROM cash_movements
		GROUP BY currency
	`)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
