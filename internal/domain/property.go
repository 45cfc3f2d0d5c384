package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyStatus is the occupancy state of a property.
type PropertyStatus string

const (
	PropertyOccupied    PropertyStatus = "ocupado"
	PropertyAvailable   PropertyStatus = "disponible"
	PropertyMaintenance PropertyStatus = "mantenimiento"
)

// Property is a rentable unit. Building is the grouping key the monthly
// report uses; Tenant is a denormalized back-reference kept by assignment.
type Property struct {
	ID             string
	Name           string
	Building       string
	Address        string
	Rent           decimal.Decimal
	Expenses       decimal.Decimal
	NextUpdateDate time.Time
	Tenant         string
	Status         PropertyStatus
	Notes          string
}

// UpdateDue reports whether the tariff-review reminder should fire.
func (p *Property) UpdateDue(now time.Time) bool {
	if p.NextUpdateDate.IsZero() {
		return false
	}
	return !p.NextUpdateDate.After(truncateToDay(now))
}
