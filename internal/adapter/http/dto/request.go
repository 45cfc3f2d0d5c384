package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// CreateReceiptRequest represents a request to create a receipt.
type CreateReceiptRequest struct {
	TenantName   string          `json:"tenant_name"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Rent         decimal.Decimal `json:"rent"`
	Expenses     decimal.Decimal `json:"expenses"`
	OtherCharges []domain.Charge `json:"other_charges,omitempty"`
	Currency     string          `json:"currency"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReceiptRequest) ToUseCaseInput() usecase.CreateReceiptInput {
	return usecase.CreateReceiptInput{
		TenantName:   r.TenantName,
		Month:        time.Month(r.Month),
		Year:         r.Year,
		Rent:         r.Rent,
		Expenses:     r.Expenses,
		OtherCharges: r.OtherCharges,
		Currency:     domain.Currency(r.Currency),
		DueDate:      r.DueDate,
	}
}

// UpdateReceiptRequest represents a request to edit an unpaid receipt.
type UpdateReceiptRequest struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Rent         decimal.Decimal `json:"rent"`
	Expenses     decimal.Decimal `json:"expenses"`
	OtherCharges []domain.Charge `json:"other_charges,omitempty"`
	Currency     string          `json:"currency"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateReceiptRequest) ToUseCaseInput() usecase.UpdateReceiptInput {
	return usecase.UpdateReceiptInput{
		Month:        time.Month(r.Month),
		Year:         r.Year,
		Rent:         r.Rent,
		Expenses:     r.Expenses,
		OtherCharges: r.OtherCharges,
		Currency:     domain.Currency(r.Currency),
		DueDate:      r.DueDate,
	}
}

// ApplyPaymentRequest represents one payment against a receipt, split
// across instruments. Cash and transfer are in pesos, dollars in USD.
type ApplyPaymentRequest struct {
	Cash     decimal.Decimal `json:"cash"`
	Transfer decimal.Decimal `json:"transfer"`
	Dollars  decimal.Decimal `json:"dollars"`
}

// ToUseCaseInput converts to use case input for the given receipt.
func (r *ApplyPaymentRequest) ToUseCaseInput(receiptID string) usecase.ApplyPaymentInput {
	return usecase.ApplyPaymentInput{
		ReceiptID: receiptID,
		Cash:      r.Cash,
		Transfer:  r.Transfer,
		Dollars:   r.Dollars,
	}
}

// DeliveryRequest represents a draw-down from the register.
type DeliveryRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DeliveryType string          `json:"delivery_type"`
	Description  string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DeliveryRequest) ToUseCaseInput() usecase.DeliverInput {
	return usecase.DeliverInput{
		Amount:       r.Amount,
		Currency:     domain.Currency(r.Currency),
		DeliveryType: domain.DeliveryType(r.DeliveryType),
		Description:  r.Description,
	}
}

// DeliverAllRequest represents a full draw-down of one currency.
type DeliverAllRequest struct {
	Currency string `json:"currency"`
}

// CreateTenantRequest represents a request to register a tenant.
type CreateTenantRequest struct {
	Name          string           `json:"name"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	ContractStart *time.Time       `json:"contract_start,omitempty"`
	ContractEnd   *time.Time       `json:"contract_end,omitempty"`
	Deposit       decimal.Decimal  `json:"deposit"`
	Guarantor     domain.Guarantor `json:"guarantor"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTenantRequest) ToUseCaseInput() usecase.CreateTenantInput {
	input := usecase.CreateTenantInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Deposit:   r.Deposit,
		Guarantor: r.Guarantor,
	}
	if r.ContractStart != nil {
		input.ContractStart = *r.ContractStart
	}
	if r.ContractEnd != nil {
		input.ContractEnd = *r.ContractEnd
	}
	return input
}

// AssignPropertyRequest links a tenant to a property.
type AssignPropertyRequest struct {
	PropertyID string `json:"property_id"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
