package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
)

// PortabilityUseCase exports and imports the whole store as one JSON
// document. Import is replace-all only; partial merges are refused by
// construction.
type PortabilityUseCase struct {
	snapshotRepo SnapshotRepository
	clock        Clock
}

// NewPortabilityUseCase creates a new PortabilityUseCase.
func NewPortabilityUseCase(snapshotRepo SnapshotRepository, clock Clock) *PortabilityUseCase {
	return &PortabilityUseCase{snapshotRepo: snapshotRepo, clock: clock}
}

// ExportDocument is the persisted backup schema.
type ExportDocument struct {
	Version       string           `json:"version"`
	ExportDate    time.Time        `json:"exportDate"`
	Properties    []PropertyRecord `json:"properties"`
	Tenants       []TenantRecord   `json:"tenants"`
	Receipts      []ReceiptRecord  `json:"receipts"`
	CashMovements []MovementRecord `json:"cashMovements"`
}

// importProbe checks key presence without committing to field types, so a
// missing key is distinguishable from an empty array.
type importProbe struct {
	Version    *string          `json:"version"`
	Properties *json.RawMessage `json:"properties"`
	Tenants    *json.RawMessage `json:"tenants"`
}

// PropertyRecord is the portable shape of a property.
type PropertyRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Building       string          `json:"building"`
	Address        string          `json:"address,omitempty"`
	Rent           decimal.Decimal `json:"rent"`
	Expenses       decimal.Decimal `json:"expenses"`
	NextUpdateDate string          `json:"nextUpdateDate,omitempty"`
	Tenant         string          `json:"tenant,omitempty"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
}

// TenantRecord is the portable shape of a tenant.
type TenantRecord struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	PropertyID    *string          `json:"propertyId"`
	Property      string           `json:"property,omitempty"`
	ContractStart string           `json:"contractStart,omitempty"`
	ContractEnd   string           `json:"contractEnd,omitempty"`
	Deposit       decimal.Decimal  `json:"deposit"`
	Guarantor     domain.Guarantor `json:"guarantor"`
	Balance       decimal.Decimal  `json:"balance"`
	Status        string           `json:"status"`
}

// ReceiptRecord is the portable shape of a receipt.
type ReceiptRecord struct {
	ID               string          `json:"id"`
	Number           string          `json:"receiptNumber"`
	Tenant           string          `json:"tenant"`
	Property         string          `json:"property"`
	Building         string          `json:"building,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Rent             decimal.Decimal `json:"rent"`
	Expenses         decimal.Decimal `json:"expenses"`
	OtherCharges     []domain.Charge `json:"otherCharges"`
	PreviousBalance  decimal.Decimal `json:"previousBalance"`
	Total            decimal.Decimal `json:"total"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"paymentMethod"`
	Status           string          `json:"status"`
	DueDate          string          `json:"dueDate"`
	CreatedDate      string          `json:"createdDate"`
}

// MovementRecord is the portable shape of a cash movement.
type MovementRecord struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          string          `json:"date"`
	Tenant        string          `json:"tenant,omitempty"`
	Property      string          `json:"property,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	DeliveryType  string          `json:"deliveryType,omitempty"`
}

const dateLayout = "2006-01-02"

// Export serializes the whole store into the backup document.
func (uc *PortabilityUseCase) Export(ctx context.Context) (*ExportDocument, error) {
	snapshot, err := uc.snapshotRepo.Export(ctx)
	if err != nil {
		return nil, err
	}

	doc := &ExportDocument{
		Version:       ExportVersion,
		ExportDate:    uc.clock.Now(),
		Properties:    make([]PropertyRecord, 0, len(snapshot.Properties)),
		Tenants:       make([]TenantRecord, 0, len(snapshot.Tenants)),
		Receipts:      make([]ReceiptRecord, 0, len(snapshot.Receipts)),
		CashMovements: make([]MovementRecord, 0, len(snapshot.CashMovements)),
	}

	for _, p := range snapshot.Properties {
		doc.Properties = append(doc.Properties, propertyToRecord(p))
	}
	for _, t := range snapshot.Tenants {
		doc.Tenants = append(doc.Tenants, tenantToRecord(t))
	}
	for _, r := range snapshot.Receipts {
		doc.Receipts = append(doc.Receipts, receiptToRecord(r))
	}
	for _, m := range snapshot.CashMovements {
		doc.CashMovements = append(doc.CashMovements, movementToRecord(m))
	}

	return doc, nil
}

// ImportStats summarizes what an import loaded.
type ImportStats struct {
	Properties    int
	Tenants       int
	Receipts      int
	CashMovements int
}

// Import parses and validates a backup document, then replaces the entire
// store. Read failures, parse failures and content-validation failures are
// reported distinctly; no state changes unless every record is valid.
func (uc *PortabilityUseCase) Import(ctx context.Context, r io.Reader) (*ImportStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportRead, err)
	}

	var probe importProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportInvalid, err)
	}
	if probe.Version == nil || probe.Properties == nil || probe.Tenants == nil {
		return nil, fmt.Errorf("%w: version, properties and tenants are required", domain.ErrImportInvalid)
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportInvalid, err)
	}

	snapshot, err := documentToSnapshot(&doc)
	if err != nil {
		return nil, err
	}

	if err := uc.snapshotRepo.ReplaceAll(ctx, snapshot); err != nil {
		return nil, err
	}

	return &ImportStats{
		Properties:    len(snapshot.Properties),
		Tenants:       len(snapshot.Tenants),
		Receipts:      len(snapshot.Receipts),
		CashMovements: len(snapshot.CashMovements),
	}, nil
}

func documentToSnapshot(doc *ExportDocument) (*Snapshot, error) {
	snapshot := &Snapshot{}

	for i := range doc.Properties {
		p, err := recordToProperty(&doc.Properties[i])
		if err != nil {
			return nil, fmt.Errorf("%w: property %d: %v", domain.ErrImportInvalid, i, err)
		}
		snapshot.Properties = append(snapshot.Properties, p)
	}

	for i := range doc.Tenants {
		t, err := recordToTenant(&doc.Tenants[i])
		if err != nil {
			return nil, fmt.Errorf("%w: tenant %d: %v", domain.ErrImportInvalid, i, err)
		}
		snapshot.Tenants = append(snapshot.Tenants, t)
	}

	for i := range doc.Receipts {
		r, err := recordToReceipt(&doc.Receipts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: receipt %d: %v", domain.ErrImportInvalid, i, err)
		}
		snapshot.Receipts = append(snapshot.Receipts, r)
	}

	for i := range doc.CashMovements {
		m, err := recordToMovement(&doc.CashMovements[i])
		if err != nil {
			return nil, fmt.Errorf("%w: cash movement %d: %v", domain.ErrImportInvalid, i, err)
		}
		snapshot.CashMovements = append(snapshot.CashMovements, m)
	}

	return snapshot, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func propertyToRecord(p *domain.Property) PropertyRecord {
	return PropertyRecord{
		ID:             p.ID,
		Name:           p.Name,
		Building:       p.Building,
		Address:        p.Address,
		Rent:           p.Rent,
		Expenses:       p.Expenses,
		NextUpdateDate: formatDate(p.NextUpdateDate),
		Tenant:         p.Tenant,
		Status:         string(p.Status),
		Notes:          p.Notes,
	}
}

func recordToProperty(rec *PropertyRecord) (*domain.Property, error) {
	nextUpdate, err := parseDate(rec.NextUpdateDate)
	if err != nil {
		return nil, err
	}

	return &domain.Property{
		ID:             rec.ID,
		Name:           rec.Name,
		Building:       rec.Building,
		Address:        rec.Address,
		Rent:           rec.Rent,
		Expenses:       rec.Expenses,
		NextUpdateDate: nextUpdate,
		Tenant:         rec.Tenant,
		Status:         domain.PropertyStatus(rec.Status),
		Notes:          rec.Notes,
	}, nil
}

func tenantToRecord(t *domain.Tenant) TenantRecord {
	return TenantRecord{
		ID:            t.ID,
		Name:          t.Name,
		Email:         t.Email,
		Phone:         t.Phone,
		PropertyID:    t.PropertyID,
		Property:      t.Property,
		ContractStart: formatDate(t.ContractStart),
		ContractEnd:   formatDate(t.ContractEnd),
		Deposit:       t.Deposit,
		Guarantor:     t.Guarantor,
		Balance:       t.Balance,
		Status:        string(t.Status),
	}
}

func recordToTenant(rec *TenantRecord) (*domain.Tenant, error) {
	contractStart, err := parseDate(rec.ContractStart)
	if err != nil {
		return nil, err
	}
	contractEnd, err := parseDate(rec.ContractEnd)
	if err != nil {
		return nil, err
	}

	return &domain.Tenant{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		PropertyID:    rec.PropertyID,
		Property:      rec.Property,
		ContractStart: contractStart,
		ContractEnd:   contractEnd,
		Deposit:       rec.Deposit,
		Guarantor:     rec.Guarantor,
		Balance:       rec.Balance,
		Status:        domain.TenantStatus(rec.Status),
	}, nil
}

func receiptToRecord(r *domain.Receipt) ReceiptRecord {
	return ReceiptRecord{
		ID:               r.ID,
		Number:           r.Number,
		Tenant:           r.Tenant,
		Property:         r.Property,
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
		DueDate:          formatDate(r.DueDate),
		CreatedDate:      formatDate(r.CreatedDate),
	}
}

func recordToReceipt(rec *ReceiptRecord) (*domain.Receipt, error) {
	if err := domain.ValidatePeriod(time.Month(rec.Month), rec.Year); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(domain.Currency(rec.Currency)); err != nil {
		return nil, err
	}
	if err := domain.ValidateReceiptStatus(domain.ReceiptStatus(rec.Status)); err != nil {
		return nil, err
	}

	dueDate, err := parseDate(rec.DueDate)
	if err != nil {
		return nil, err
	}
	createdDate, err := parseDate(rec.CreatedDate)
	if err != nil {
		return nil, err
	}

	return &domain.Receipt{
		ID:               rec.ID,
		Number:           rec.Number,
		Tenant:           rec.Tenant,
		Property:         rec.Property,
		Building:         rec.Building,
		Month:            time.Month(rec.Month),
		Year:             rec.Year,
		Rent:             rec.Rent,
		Expenses:         rec.Expenses,
		OtherCharges:     rec.OtherCharges,
		PreviousBalance:  rec.PreviousBalance,
		Total:            rec.Total,
		PaidAmount:       rec.PaidAmount,
		RemainingBalance: rec.RemainingBalance,
		Currency:         domain.Currency(rec.Currency),
		PaymentMethod:    domain.PaymentMethod(rec.PaymentMethod),
		Status:           domain.ReceiptStatus(rec.Status),
		DueDate:          dueDate,
		CreatedDate:      createdDate,
	}, nil
}

func movementToRecord(m *domain.CashMovement) MovementRecord {
	return MovementRecord{
		ID:            m.ID,
		Type:          string(m.Type),
		Description:   m.Description,
		Amount:        m.Amount,
		Currency:      string(m.Currency),
		Date:          formatDate(m.Date),
		Tenant:        m.Tenant,
		Property:      m.Property,
		PaymentMethod: string(m.PaymentMethod),
		DeliveryType:  string(m.DeliveryType),
	}
}

func recordToMovement(rec *MovementRecord) (*domain.CashMovement, error) {
	if err := domain.ValidateCurrency(domain.Currency(rec.Currency)); err != nil {
		return nil, err
	}

	date, err := parseDate(rec.Date)
	if err != nil {
		return nil, err
	}

	return &domain.CashMovement{
		ID:            rec.ID,
		Type:          domain.MovementType(rec.Type),
		Description:   rec.Description,
		Amount:        rec.Amount,
		Currency:      domain.Currency(rec.Currency),
		Date:          date,
		Tenant:        rec.Tenant,
		Property:      rec.Property,
		PaymentMethod: domain.PaymentMethod(rec.PaymentMethod),
		DeliveryType:  domain.DeliveryType(rec.DeliveryType),
	}, nil
}
