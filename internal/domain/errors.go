package domain

import "errors"

var (
	// Receipt errors
	ErrReceiptNotFound       = errors.New("receipt not found")
	ErrReceiptNotEditable    = errors.New("paid receipts cannot be edited")
	ErrReceiptNotConfirmable = errors.New("only unconfirmed receipts can be confirmed")
	ErrReceiptNotPayable     = errors.New("receipt is not in a payable state")

	// Payment errors
	ErrInvalidPaymentAmount  = errors.New("payment total must be positive")
	ErrNegativeInstrument    = errors.New("instrument amounts cannot be negative")
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining balance")

	// Cash register errors
	ErrInvalidDeliveryAmount = errors.New("delivery amount must be positive")
	ErrInsufficientCash      = errors.New("delivery exceeds available balance")
	ErrEmptyRegister         = errors.New("register balance is not positive")

	// Store errors
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrPropertyNotFound = errors.New("property not found")

	// Import errors
	ErrImportRead    = errors.New("import file could not be read")
	ErrImportInvalid = errors.New("import file is missing required data")

	// Validation errors
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidMethod   = errors.New("invalid payment method")
	ErrInvalidPeriod   = errors.New("invalid billing period")
	ErrInvalidStatus   = errors.New("invalid receipt status")
)
