package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is one of the two currencies the register handles.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// PaymentMethod is the instrument an income arrived through.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "efectivo"
	MethodTransfer PaymentMethod = "transferencia"
	MethodDollars  PaymentMethod = "dolares"
)

// MovementType distinguishes money entering from money leaving the register.
type MovementType string

const (
	MovementIncome   MovementType = "income"
	MovementDelivery MovementType = "delivery"
)

// DeliveryType classifies a draw-down.
type DeliveryType string

const (
	DeliveryOwner      DeliveryType = "propietario"
	DeliveryCommission DeliveryType = "comision"
	DeliveryExpense    DeliveryType = "gasto"
)

// CashMovement is an immutable register event. Corrections are new
// movements, never edits.
type CashMovement struct {
	ID            string
	Type          MovementType
	Description   string
	Amount        decimal.Decimal
	Currency      Currency
	Date          time.Time
	Tenant        string
	Property      string
	PaymentMethod PaymentMethod
	DeliveryType  DeliveryType
}

// DefaultDeliveryDescription is used when a delivery has no description.
func DefaultDeliveryDescription(dt DeliveryType) string {
	switch dt {
	case DeliveryOwner:
		return "Entrega al propietario"
	case DeliveryCommission:
		return "Pago de comisión"
	case DeliveryExpense:
		return "Pago de gasto"
	default:
		return "Entrega"
	}
}

// MethodLabel is the human label used in income descriptions.
func MethodLabel(m PaymentMethod) string {
	switch m {
	case MethodCash:
		return "Efectivo"
	case MethodTransfer:
		return "Transferencia"
	case MethodDollars:
		return "Dólares"
	default:
		return string(m)
	}
}

// MovementFilter narrows register views. Zero values mean "no filter".
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Type   MovementType
	Method PaymentMethod
	Limit  int
	Offset int
}

// Matches reports whether a movement passes the filter.
func (f MovementFilter) Matches(m *CashMovement) bool {
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Method != "" && m.PaymentMethod != f.Method {
		return false
	}
	return true
}
