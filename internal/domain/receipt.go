package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus is the lifecycle state of a receipt.
type ReceiptStatus string

const (
	StatusDraft       ReceiptStatus = "borrador"
	StatusUnconfirmed ReceiptStatus = "pendiente_confirmacion"
	StatusPending     ReceiptStatus = "pendiente"
	StatusOverdue     ReceiptStatus = "vencido"
	StatusPaid        ReceiptStatus = "pagado"
	// StatusConfirmed exists only in legacy data. It behaves like a settled
	// receipt in the ledger and like a pending one for editing.
	StatusConfirmed ReceiptStatus = "confirmado"
)

// Charge is an extra line item on a receipt.
type Charge struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Receipt is the receivable unit: one tenant, one property, one period.
type Receipt struct {
	ID               string
	Number           string
	Tenant           string
	Property         string
	Building         string
	Month            time.Month
	Year             int
	Rent             decimal.Decimal
	Expenses         decimal.Decimal
	OtherCharges     []Charge
	PreviousBalance  decimal.Decimal
	Total            decimal.Decimal
	PaidAmount       decimal.Decimal
	RemainingBalance decimal.Decimal
	Currency         Currency
	PaymentMethod    PaymentMethod
	Status           ReceiptStatus
	DueDate          time.Time
	CreatedDate      time.Time
}

// ComputeTotal returns rent + expenses + previousBalance + sum of other charges.
func ComputeTotal(rent, expenses, previousBalance decimal.Decimal, charges []Charge) decimal.Decimal {
	total := rent.Add(expenses).Add(previousBalance)
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}

// Due is the amount the ledger charges for this receipt's period.
// Other charges and the previous-balance snapshot are excluded: carried debt
// is derived from the statement fold, never from the snapshot.
func (r *Receipt) Due() decimal.Decimal {
	return r.Rent.Add(r.Expenses)
}

// Settled reports whether the receipt counts as paid in the ledger.
func (r *Receipt) Settled() bool {
	return r.Status == StatusPaid || r.Status == StatusConfirmed
}

// Editable reports whether the receipt may still be modified.
// A paid receipt is frozen; corrections go through payment channels.
func (r *Receipt) Editable() bool {
	return r.Status != StatusPaid
}

// Payable reports whether the payment engine may apply money to the receipt.
func (r *Receipt) Payable() bool {
	switch r.Status {
	case StatusPending, StatusConfirmed:
		return true
	default:
		return false
	}
}

// Confirm moves the receipt from pendiente_confirmacion to pendiente.
// It is a pure status change with no financial side effect.
func (r *Receipt) Confirm() error {
	if r.Status != StatusUnconfirmed {
		return ErrReceiptNotConfirmable
	}
	r.Status = StatusPending
	return nil
}

// EffectiveStatus projects vencido at read time. Overdue is derived from the
// due date against now, never persisted.
func (r *Receipt) EffectiveStatus(now time.Time) ReceiptStatus {
	if r.Status == StatusPending || r.Status == StatusConfirmed {
		if r.RemainingBalance.IsPositive() && r.DueDate.Before(truncateToDay(now)) {
			return StatusOverdue
		}
	}
	return r.Status
}

// CheckBalanceInvariant verifies remainingBalance == max(0, total - paidAmount).
func (r *Receipt) CheckBalanceInvariant() bool {
	want := r.Total.Sub(r.PaidAmount)
	if want.IsNegative() {
		want = decimal.Zero
	}
	return r.RemainingBalance.Equal(want)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
