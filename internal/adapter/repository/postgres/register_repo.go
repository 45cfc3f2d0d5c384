package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// RegisterRepository implements usecase.RegisterRepository over the
// per-currency accumulator rows. The rows serialize deliveries; the movement
// sums stay authoritative.
type RegisterRepository struct {
	pool *pgxpool.Pool
}

// NewRegisterRepository creates a new RegisterRepository.
func NewRegisterRepository(pool *pgxpool.Pool) *RegisterRepository {
	return &RegisterRepository{pool: pool}
}

// GetForUpdate locks one currency's register row, creating it at zero when
// the currency has never moved.
func (r *RegisterRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO cash_registers (currency, balance) VALUES ($1, 0) ON CONFLICT (currency) DO NOTHING`,
		string(currency),
	)
	if err != nil {
		return decimal.Zero, err
	}

	var n pgtype.Numeric
	err = pgxTx.QueryRow(ctx,
		`SELECT balance FROM cash_registers WHERE currency = $1 FOR UPDATE`,
		string(currency),
	).Scan(&n)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n), nil
}

// Add applies a signed delta to one currency's accumulator row.
func (r *RegisterRepository) Add(ctx context.Context, tx usecase.Transaction, currency domain.Currency, delta decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO cash_registers (currency, balance)
		VALUES ($1, $2)
		ON CONFLICT (currency) DO UPDATE SET balance = cash_registers.balance + EXCLUDED.balance
	`, string(currency), decimalToNumeric(delta))

	return err
}

// All reads every accumulator row.
func (r *RegisterRepository) All(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `SELECT currency, balance FROM cash_registers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[domain.Currency]decimal.Decimal)
	for rows.Next() {
		var currency string
		var n pgtype.Numeric
		if err := rows.Scan(&currency, &n); err != nil {
			return nil, err
		}
		balances[domain.Currency(currency)] = numericToDecimal(n)
	}

	return balances, rows.Err()
}
