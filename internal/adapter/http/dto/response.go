package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	TenantName       string          `json:"tenant_name"`
	PropertyName     string          `json:"property_name"`
	Building         string          `json:"building,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Rent             decimal.Decimal `json:"rent"`
	Expenses         decimal.Decimal `json:"expenses"`
	OtherCharges     []domain.Charge `json:"other_charges,omitempty"`
	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	Total            decimal.Decimal `json:"total"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	Status           string          `json:"status"`
	DueDate          time.Time       `json:"due_date"`
	CreatedDate      time.Time       `json:"created_date"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:               r.ID,
		Number:           r.Number,
		TenantName:       r.Tenant,
		PropertyName:     r.Property,
		Building:         r.Building,
		Month:            int(r.Month),
		Year:             r.Year,
		Rent:             r.Rent,
		Expenses:         r.Expenses,
		OtherCharges:     r.OtherCharges,
		PreviousBalance:  r.PreviousBalance,
		Total:            r.Total,
		PaidAmount:       r.PaidAmount,
		RemainingBalance: r.RemainingBalance,
		Currency:         string(r.Currency),
		PaymentMethod:    string(r.PaymentMethod),
		Status:           string(r.Status),
		DueDate:          r.DueDate,
		CreatedDate:      r.CreatedDate,
	}
}

// ReceiptsFromDomain converts domain receipts to responses.
func ReceiptsFromDomain(receipts []*domain.Receipt) []*ReceiptResponse {
	result := make([]*ReceiptResponse, len(receipts))
	for i, r := range receipts {
		result[i] = ReceiptFromDomain(r)
	}
	return result
}

// ListReceiptsResponse wraps a receipt listing.
type ListReceiptsResponse struct {
	Receipts []*ReceiptResponse `json:"receipts"`
	Total    int64              `json:"total"`
}

// CreateReceiptResponse carries the created receipt plus the tariff-review
// reminder for the property.
type CreateReceiptResponse struct {
	Receipt        *ReceiptResponse `json:"receipt"`
	UpdateDue      bool             `json:"update_due"`
	NextUpdateDate *time.Time       `json:"next_update_date,omitempty"`
}

// MovementResponse represents a cash movement in API responses.
type MovementResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	TenantName    string          `json:"tenant_name,omitempty"`
	PropertyName  string          `json:"property_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	DeliveryType  string          `json:"delivery_type,omitempty"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.CashMovement) *MovementResponse {
	return &MovementResponse{
		ID:            m.ID,
		Type:          string(m.Type),
		Description:   m.Description,
		Amount:        m.Amount,
		Currency:      string(m.Currency),
		Date:          m.Date,
		TenantName:    m.Tenant,
		PropertyName:  m.Property,
		PaymentMethod: string(m.PaymentMethod),
		DeliveryType:  string(m.DeliveryType),
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.CashMovement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ListMovementsResponse wraps a movement listing.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int64               `json:"total"`
}

// PaymentResponse carries the mutated receipt and the movements the
// payment produced.
type PaymentResponse struct {
	Receipt   *ReceiptResponse    `json:"receipt"`
	Movements []*MovementResponse `json:"movements"`
}

// RegisterBalancesResponse is the register position across currencies.
type RegisterBalancesResponse struct {
	ARS         decimal.Decimal `json:"ars"`
	USD         decimal.Decimal `json:"usd"`
	TransferARS decimal.Decimal `json:"transfer_ars"`
}

// DailyIncomeResponse is today's income per currency.
type DailyIncomeResponse struct {
	Date   string                     `json:"date"`
	Income map[string]decimal.Decimal `json:"income"`
}

// TenantResponse represents a tenant in API responses.
type TenantResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	PropertyID    *string          `json:"property_id"`
	PropertyName  string           `json:"property_name,omitempty"`
	ContractStart time.Time        `json:"contract_start,omitzero"`
	ContractEnd   time.Time        `json:"contract_end,omitzero"`
	Deposit       decimal.Decimal  `json:"deposit"`
	Guarantor     domain.Guarantor `json:"guarantor"`
	Balance       decimal.Decimal  `json:"balance"`
	Status        string           `json:"status"`
}

// TenantFromDomain converts a domain tenant to a response.
func TenantFromDomain(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:            t.ID,
		Name:          t.Name,
		Email:         t.Email,
		Phone:         t.Phone,
		PropertyID:    t.PropertyID,
		PropertyName:  t.Property,
		ContractStart: t.ContractStart,
		ContractEnd:   t.ContractEnd,
		Deposit:       t.Deposit,
		Guarantor:     t.Guarantor,
		Balance:       t.Balance,
		Status:        string(t.Status),
	}
}

// TenantsFromDomain converts domain tenants to responses.
func TenantsFromDomain(tenants []*domain.Tenant) []*TenantResponse {
	result := make([]*TenantResponse, len(tenants))
	for i, t := range tenants {
		result[i] = TenantFromDomain(t)
	}
	return result
}

// BalanceResponse is a tenant's current balance.
type BalanceResponse struct {
	TenantID string          `json:"tenant_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// StatementRowResponse is one receipt's line in a tenant statement.
type StatementRowResponse struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Period          string          `json:"period"`
	Rent            decimal.Decimal `json:"rent"`
	Expenses        decimal.Decimal `json:"expenses"`
	Due             decimal.Decimal `json:"due"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	Payment         decimal.Decimal `json:"payment"`
	Balance         decimal.Decimal `json:"balance"`
	Settled         bool            `json:"settled"`
	Status          string          `json:"status"`
}

// StatementResponse is a tenant's recomputed account.
type StatementResponse struct {
	Tenant       string                 `json:"tenant"`
	Rows         []StatementRowResponse `json:"rows"`
	TotalPaid    decimal.Decimal        `json:"total_paid"`
	TotalPending decimal.Decimal        `json:"total_pending"`
	FinalBalance decimal.Decimal        `json:"final_balance"`
}

// StatementFromUseCase converts a statement to a response.
func StatementFromUseCase(s *usecase.Statement) *StatementResponse {
	rows := make([]StatementRowResponse, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = StatementRowResponse{
			Month:           int(r.Month),
			Year:            r.Year,
			Period:          r.PeriodLabel,
			Rent:            r.Rent,
			Expenses:        r.Expenses,
			Due:             r.Due,
			PreviousBalance: r.PreviousBalance,
			Payment:         r.Payment,
			Balance:         r.Balance,
			Settled:         r.Settled,
			Status:          string(r.Status),
		}
	}
	return &StatementResponse{
		Tenant:       s.Tenant,
		Rows:         rows,
		TotalPaid:    s.TotalPaid,
		TotalPending: s.TotalPending,
		FinalBalance: s.FinalBalance,
	}
}

// ReportRowResponse is one property's line in the monthly report.
type ReportRowResponse struct {
	Building   string          `json:"building"`
	Property   string          `json:"property"`
	Tenant     string          `json:"tenant"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Debt       decimal.Decimal `json:"debt"`
}

// BuildingGroupResponse is one building's rows plus subtotals.
type BuildingGroupResponse struct {
	Building  string              `json:"building"`
	Rows      []ReportRowResponse `json:"rows"`
	TotalPaid decimal.Decimal     `json:"total_paid"`
	TotalDebt decimal.Decimal     `json:"total_debt"`
}

// MonthlyReportResponse is the full matrix for one period.
type MonthlyReportResponse struct {
	Month     int                     `json:"month"`
	Year      int                     `json:"year"`
	Period    string                  `json:"period"`
	Groups    []BuildingGroupResponse `json:"groups"`
	TotalPaid decimal.Decimal         `json:"total_paid"`
	TotalDebt decimal.Decimal         `json:"total_debt"`
}

// MonthlyReportFromUseCase converts a monthly report to a response.
func MonthlyReportFromUseCase(r *usecase.MonthlyReport) *MonthlyReportResponse {
	groups := make([]BuildingGroupResponse, len(r.Groups))
	for i, g := range r.Groups {
		rows := make([]ReportRowResponse, len(g.Rows))
		for j, row := range g.Rows {
			rows[j] = ReportRowResponse{
				Building:   row.Building,
				Property:   row.Property,
				Tenant:     row.Tenant,
				PaidAmount: row.PaidAmount,
				Debt:       row.Debt,
			}
		}
		groups[i] = BuildingGroupResponse{
			Building:  g.Building,
			Rows:      rows,
			TotalPaid: g.TotalPaid,
			TotalDebt: g.TotalDebt,
		}
	}
	return &MonthlyReportResponse{
		Month:     int(r.Month),
		Year:      r.Year,
		Period:    usecase.PeriodLabel(r.Month, r.Year),
		Groups:    groups,
		TotalPaid: r.TotalPaid,
		TotalDebt: r.TotalDebt,
	}
}

// TenantDiscrepancyResponse is one tenant balance drift.
type TenantDiscrepancyResponse struct {
	TenantID        string          `json:"tenant_id"`
	TenantName      string          `json:"tenant_name"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

// RegisterDiscrepancyResponse is one register accumulator drift.
type RegisterDiscrepancyResponse struct {
	Currency        string          `json:"currency"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ReconciliationResponse is the result of one reconciliation pass.
type ReconciliationResponse struct {
	Clean                 bool                          `json:"clean"`
	TenantsChecked        int                           `json:"tenants_checked"`
	RegistersChecked      int                           `json:"registers_checked"`
	TenantDiscrepancies   []TenantDiscrepancyResponse   `json:"tenant_discrepancies"`
	RegisterDiscrepancies []RegisterDiscrepancyResponse `json:"register_discrepancies"`
}

// ReconciliationFromUseCase converts a reconciliation report to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationReport) *ReconciliationResponse {
	tenants := make([]TenantDiscrepancyResponse, len(r.TenantDiscrepancies))
	for i, d := range r.TenantDiscrepancies {
		tenants[i] = TenantDiscrepancyResponse{
			TenantID:        d.TenantID,
			TenantName:      d.TenantName,
			StoredBalance:   d.StoredBalance,
			ComputedBalance: d.ComputedBalance,
			Difference:      d.Difference,
		}
	}
	registers := make([]RegisterDiscrepancyResponse, len(r.RegisterDiscrepancies))
	for i, d := range r.RegisterDiscrepancies {
		registers[i] = RegisterDiscrepancyResponse{
			Currency:        string(d.Currency),
			StoredBalance:   d.StoredBalance,
			ComputedBalance: d.ComputedBalance,
			Difference:      d.Difference,
		}
	}
	return &ReconciliationResponse{
		Clean:                 r.Clean(),
		TenantsChecked:        r.TenantsChecked,
		RegistersChecked:      r.RegistersChecked,
		TenantDiscrepancies:   tenants,
		RegisterDiscrepancies: registers,
	}
}

// ImportResponse reports what an import loaded.
type ImportResponse struct {
	Properties    int `json:"properties"`
	Tenants       int `json:"tenants"`
	Receipts      int `json:"receipts"`
	CashMovements int `json:"cash_movements"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
