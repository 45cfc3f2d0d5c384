package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avidela/rentas/internal/domain"
)

// PropertyRepository implements usecase.PropertyRepository.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository creates a new PropertyRepository.
func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

const propertyColumns = `
	id, name, building, address, rent, expenses,
	next_update_date, tenant_name, status, notes
`

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		property.ID,
		property.Name,
		property.Building,
		property.Address,
		decimalToNumeric(property.Rent),
		decimalToNumeric(property.Expenses),
		timeToPgTimestamptz(property.NextUpdateDate),
		property.Tenant,
		string(property.Status),
		property.Notes,
	)

	return err
}

// GetByID retrieves a property by ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByName retrieves a property by its denormalized name.
func (r *PropertyRepository) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE name = $1`
	return r.getOne(ctx, query, name)
}

// UpdateOccupancy flips a property's occupant and status together.
func (r *PropertyRepository) UpdateOccupancy(ctx context.Context, id string, tenantName string, status domain.PropertyStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET tenant_name = $2, status = $3 WHERE id = $1`,
		id, tenantName, string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}

	return nil
}

// List retrieves all properties ordered by building, then name.
func (r *PropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY building, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	return properties, rows.Err()
}

func (r *PropertyRepository) getOne(ctx context.Context, query string, arg any) (*domain.Property, error) {
	property, err := scanProperty(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}

		return nil, err
	}

	return property, nil
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var (
		property   domain.Property
		rent       pgtype.Numeric
		expenses   pgtype.Numeric
		nextUpdate pgtype.Timestamptz
		status     string
	)

	err := row.Scan(
		&property.ID,
		&property.Name,
		&property.Building,
		&property.Address,
		&rent,
		&expenses,
		&nextUpdate,
		&property.Tenant,
		&status,
		&property.Notes,
	)
	if err != nil {
		return nil, err
	}

	property.Rent = numericToDecimal(rent)
	property.Expenses = numericToDecimal(expenses)
	property.NextUpdateDate = pgTimestamptzToTime(nextUpdate)
	property.Status = domain.PropertyStatus(status)

	return &property, nil
}
