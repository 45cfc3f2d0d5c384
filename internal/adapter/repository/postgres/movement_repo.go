package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository. The table is
// append-only; balances are always sums over it.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `
	id, type, description, amount, currency, date,
	tenant_name, property_name, payment_method, delivery_type
`

// Signed amount: income adds, delivery subtracts.
const signedAmount = `sum(CASE WHEN type = 'income' THEN amount ELSE -amount END)`

// Create appends a movement inside a transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO cash_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		movement.ID,
		string(movement.Type),
		movement.Description,
		decimalToNumeric(movement.Amount),
		string(movement.Currency),
		timeToPgTimestamptz(movement.Date),
		movement.Tenant,
		movement.Property,
		string(movement.PaymentMethod),
		string(movement.DeliveryType),
	)

	return err
}

// List retrieves movements matching the filter, newest first.
func (r *MovementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE 1=1`
	args := []any{}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Method != "" {
		args = append(args, string(filter.Method))
		query += fmt.Sprintf(` AND payment_method = $%d`, len(args))
	}

	query += ` ORDER BY date DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListAll retrieves every movement in chronological order, for exports.
func (r *MovementRepository) ListAll(ctx context.Context) ([]*domain.CashMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements ORDER BY date, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// Balance sums the signed movement history for one currency.
func (r *MovementRepository) Balance(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	return r.balance(ctx, r.pool, currency)
}

// BalanceTx sums the signed movement history inside a transaction, so a
// locked delivery sees a stable figure.
func (r *MovementRepository) BalanceTx(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error) {
	return r.balance(ctx, tx.(*Tx).PgxTx(), currency)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *MovementRepository) balance(ctx context.Context, q querier, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT coalesce(` + signedAmount + `, 0)
		FROM cash_movements
		WHERE currency = $1
	`

	var n pgtype.Numeric
	if err := q.QueryRow(ctx, query, string(currency)).Scan(&n); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n), nil
}

// BalanceByMethod sums the signed history for one currency and instrument.
func (r *MovementRepository) BalanceByMethod(ctx context.Context, currency domain.Currency, method domain.PaymentMethod) (decimal.Decimal, error) {
	query := `
		SELECT coalesce(` + signedAmount + `, 0)
		FROM cash_movements
		WHERE currency = $1 AND payment_method = $2
	`

	var n pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, string(currency), string(method)).Scan(&n); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n), nil
}

// IncomeByDate sums one day's income per currency.
func (r *MovementRepository) IncomeByDate(ctx context.Context, day time.Time) (map[domain.Currency]decimal.Decimal, error) {
	query := `
		SELECT currency, coalesce(sum(amount), 0)
		FROM cash_movements
		WHERE type = 'income' AND date = $1
		GROUP BY currency
	`

	rows, err := r.pool.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	income := make(map[domain.Currency]decimal.Decimal)
	for rows.Next() {
		var currency string
		var n pgtype.Numeric
		if err := rows.Scan(&currency, &n); err != nil {
			return nil, err
		}
		income[domain.Currency(currency)] = numericToDecimal(n)
	}

	return income, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*domain.CashMovement, error) {
	var movements []*domain.CashMovement
	for rows.Next() {
		var (
			movement      domain.CashMovement
			movementType  string
			amount        pgtype.Numeric
			currency      string
			date          pgtype.Timestamptz
			paymentMethod string
			deliveryType  string
		)

		err := rows.Scan(
			&movement.ID,
			&movementType,
			&movement.Description,
			&amount,
			&currency,
			&date,
			&movement.Tenant,
			&movement.Property,
			&paymentMethod,
			&deliveryType,
		)
		if err != nil {
			return nil, err
		}

		movement.Type = domain.MovementType(movementType)
		movement.Amount = numericToDecimal(amount)
		movement.Currency = domain.Currency(currency)
		movement.Date = pgTimestamptzToTime(date)
		movement.PaymentMethod = domain.PaymentMethod(paymentMethod)
		movement.DeliveryType = domain.DeliveryType(deliveryType)

		movements = append(movements, &movement)
	}

	return movements, rows.Err()
}
