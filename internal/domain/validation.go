package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxChargeAmount bounds any single amount entering the system.
const MaxChargeAmount = "1000000000000"

// ValidateCurrency checks the currency is one of the two the system handles.
func ValidateCurrency(c Currency) error {
	switch c {
	case CurrencyARS, CurrencyUSD:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCurrency, c)
}

// ValidatePaymentMethod checks the instrument is known.
func ValidatePaymentMethod(m PaymentMethod) error {
	switch m {
	case MethodCash, MethodTransfer, MethodDollars:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMethod, m)
}

// ValidateDeliveryType checks the draw-down classification is known.
func ValidateDeliveryType(dt DeliveryType) error {
	switch dt {
	case DeliveryOwner, DeliveryCommission, DeliveryExpense:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMethod, dt)
}

// ValidatePeriod checks a billing period.
func ValidatePeriod(month time.Month, year int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	return nil
}

// ValidateAmount checks a non-negative bounded amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeInstrument
	}
	max, _ := decimal.NewFromString(MaxChargeAmount)
	if amount.GreaterThan(max) {
		return fmt.Errorf("%w: maximum is %s", ErrInvalidPaymentAmount, MaxChargeAmount)
	}
	return nil
}

// ValidateReceiptStatus checks a stored status value. The overdue state is
// derived at read time and is not accepted as a stored status.
func ValidateReceiptStatus(s ReceiptStatus) error {
	switch s {
	case StatusDraft, StatusUnconfirmed, StatusPending, StatusPaid, StatusConfirmed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
