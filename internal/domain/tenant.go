package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantStatus is the contractual standing of a tenant.
type TenantStatus string

const (
	TenantActive  TenantStatus = "activo"
	TenantExpired TenantStatus = "vencido"
	TenantPending TenantStatus = "pendiente"
)

// Guarantor backs a tenant's contract.
type Guarantor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Tenant is a renter. Balance is a cached receivable total: it must always
// equal the statement's final balance, but the statement is the authority
// and the cache is advisory only.
type Tenant struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PropertyID    *string
	Property      string
	ContractStart time.Time
	ContractEnd   time.Time
	Deposit       decimal.Decimal
	Guarantor     Guarantor
	Balance       decimal.Decimal
	Status        TenantStatus
}

// ReduceBalance applies a payment to the cached balance, floored at zero.
func (t *Tenant) ReduceBalance(amount decimal.Decimal) decimal.Decimal {
	next := t.Balance.Sub(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	return next
}
