package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// ReceiptRepository implements usecase.ReceiptRepository.
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

const receiptColumns = `
	id, number, tenant_name, property_name, building, month, year,
	rent, expenses, other_charges, previous_balance, total,
	paid_amount, remaining_balance, currency, payment_method, status,
	due_date, created_date
`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new receipt.
func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	charges, err := json.Marshal(receipt.OtherCharges)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = r.pool.Exec(ctx, query,
		receipt.ID,
		receipt.Number,
		receipt.Tenant,
		receipt.Property,
		receipt.Building,
		int(receipt.Month),
		receipt.Year,
		decimalToNumeric(receipt.Rent),
		decimalToNumeric(receipt.Expenses),
		charges,
		decimalToNumeric(receipt.PreviousBalance),
		decimalToNumeric(receipt.Total),
		decimalToNumeric(receipt.PaidAmount),
		decimalToNumeric(receipt.RemainingBalance),
		string(receipt.Currency),
		string(receipt.PaymentMethod),
		string(receipt.Status),
		timeToPgTimestamptz(receipt.DueDate),
		timeToPgTimestamptz(receipt.CreatedDate),
	)

	return err
}

// GetByID retrieves a receipt by ID.
func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`

	receipt, err := scanReceipt(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}

		return nil, err
	}

	return receipt, nil
}

// GetByIDForUpdate retrieves a receipt by ID with a FOR UPDATE lock.
func (r *ReceiptRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Receipt, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1 FOR UPDATE`

	receipt, err := scanReceipt(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}

		return nil, err
	}

	return receipt, nil
}

const receiptUpdateQuery = `
	UPDATE receipts SET
		tenant_name = $2, property_name = $3, building = $4,
		month = $5, year = $6, rent = $7, expenses = $8,
		other_charges = $9, previous_balance = $10, total = $11,
		paid_amount = $12, remaining_balance = $13, currency = $14,
		payment_method = $15, status = $16, due_date = $17
	WHERE id = $1
`

// Update persists a mutated receipt.
func (r *ReceiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	args, err := receiptUpdateArgs(receipt)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, receiptUpdateQuery, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// UpdateTx persists a mutated receipt inside a transaction.
func (r *ReceiptRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := receiptUpdateArgs(receipt)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, receiptUpdateQuery, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// Delete removes a receipt.
func (r *ReceiptRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// List lists receipts ordered by period, newest first.
func (r *ReceiptRepository) List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		ORDER BY year DESC, month DESC, number DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// ListAll retrieves every receipt, for exports.
func (r *ReceiptRepository) ListAll(ctx context.Context) ([]*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY year, month, number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// ListByTenant retrieves a tenant's full receipt history.
func (r *ReceiptRepository) ListByTenant(ctx context.Context, tenantName string) ([]*domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE tenant_name = $1
		ORDER BY year, month
	`

	rows, err := r.pool.Query(ctx, query, tenantName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// ListByPeriod selects receipts whose due date falls inside the period.
func (r *ReceiptRepository) ListByPeriod(ctx context.Context, month time.Month, year int) ([]*domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE date_part('month', due_date) = $1 AND date_part('year', due_date) = $2
		ORDER BY number
	`

	rows, err := r.pool.Query(ctx, query, int(month), year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// CountByYear counts receipts in a billing year, for number sequencing.
func (r *ReceiptRepository) CountByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM receipts WHERE year = $1`, year).Scan(&count)

	return count, err
}

func receiptUpdateArgs(receipt *domain.Receipt) ([]any, error) {
	charges, err := json.Marshal(receipt.OtherCharges)
	if err != nil {
		return nil, err
	}

	return []any{
		receipt.ID,
		receipt.Tenant,
		receipt.Property,
		receipt.Building,
		int(receipt.Month),
		receipt.Year,
		decimalToNumeric(receipt.Rent),
		decimalToNumeric(receipt.Expenses),
		charges,
		decimalToNumeric(receipt.PreviousBalance),
		decimalToNumeric(receipt.Total),
		decimalToNumeric(receipt.PaidAmount),
		decimalToNumeric(receipt.RemainingBalance),
		string(receipt.Currency),
		string(receipt.PaymentMethod),
		string(receipt.Status),
		timeToPgTimestamptz(receipt.DueDate),
	}, nil
}

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var (
		receipt       domain.Receipt
		month         int
		charges       []byte
		rent          pgtype.Numeric
		expenses      pgtype.Numeric
		previous      pgtype.Numeric
		total         pgtype.Numeric
		paid          pgtype.Numeric
		remaining     pgtype.Numeric
		currency      string
		paymentMethod string
		status        string
		dueDate       pgtype.Timestamptz
		createdDate   pgtype.Timestamptz
	)

	err := row.Scan(
		&receipt.ID,
		&receipt.Number,
		&receipt.Tenant,
		&receipt.Property,
		&receipt.Building,
		&month,
		&receipt.Year,
		&rent,
		&expenses,
		&charges,
		&previous,
		&total,
		&paid,
		&remaining,
		&currency,
		&paymentMethod,
		&status,
		&dueDate,
		&createdDate,
	)
	if err != nil {
		return nil, err
	}

	if len(charges) > 0 {
		if err := json.Unmarshal(charges, &receipt.OtherCharges); err != nil {
			return nil, err
		}
	}

	receipt.Month = time.Month(month)
	receipt.Rent = numericToDecimal(rent)
	receipt.Expenses = numericToDecimal(expenses)
	receipt.PreviousBalance = numericToDecimal(previous)
	receipt.Total = numericToDecimal(total)
	receipt.PaidAmount = numericToDecimal(paid)
	receipt.RemainingBalance = numericToDecimal(remaining)
	receipt.Currency = domain.Currency(currency)
	receipt.PaymentMethod = domain.PaymentMethod(paymentMethod)
	receipt.Status = domain.ReceiptStatus(status)
	receipt.DueDate = pgTimestamptzToTime(dueDate)
	receipt.CreatedDate = pgTimestamptzToTime(createdDate)

	return &receipt, nil
}

func scanReceipts(rows pgx.Rows) ([]*domain.Receipt, error) {
	var receipts []*domain.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, rows.Err()
}
