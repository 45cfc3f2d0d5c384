package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidela/rentas/internal/domain"
	"github.com/avidela/rentas/internal/usecase"
)

// MockReceiptRepository is a mock implementation of ReceiptRepository.
type MockReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string]*domain.Receipt

	CreateFunc           func(ctx context.Context, receipt *domain.Receipt) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Receipt, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Receipt, error)
	UpdateFunc           func(ctx context.Context, receipt *domain.Receipt) error
	UpdateTxFunc         func(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
	ListByTenantFunc     func(ctx context.Context, tenantName string) ([]*domain.Receipt, error)
	ListByPeriodFunc     func(ctx context.Context, month time.Month, year int) ([]*domain.Receipt, error)
	CountByYearFunc      func(ctx context.Context, year int) (int, error)
}

func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{
		receipts: make(map[string]*domain.Receipt),
	}
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, receipt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[receipt.ID] = receipt
	return nil
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.receipts[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReceiptNotFound
}

func (m *MockReceiptRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Receipt, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockReceiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, receipt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.receipts[receipt.ID]; !ok {
		return domain.ErrReceiptNotFound
	}
	m.receipts[receipt.ID] = receipt
	return nil
}

func (m *MockReceiptRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, receipt)
	}
	return m.Update(ctx, receipt)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.receipts[id]; !ok {
		return domain.ErrReceiptNotFound
	}
	delete(m.receipts, id)
	return nil
}

func (m *MockReceiptRepository) List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var receipts []*domain.Receipt
	for _, r := range m.receipts {
		receipts = append(receipts, r)
	}
	return receipts, nil
}

func (m *MockReceiptRepository) ListByTenant(ctx context.Context, tenantName string) ([]*domain.Receipt, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantName)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var receipts []*domain.Receipt
	for _, r := range m.receipts {
		if r.Tenant == tenantName {
			receipts = append(receipts, r)
		}
	}
	return receipts, nil
}

func (m *MockReceiptRepository) ListByPeriod(ctx context.Context, month time.Month, year int) ([]*domain.Receipt, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var receipts []*domain.Receipt
	for _, r := range m.receipts {
		if r.Month == month && r.Year == year {
			receipts = append(receipts, r)
		}
	}
	return receipts, nil
}

func (m *MockReceiptRepository) CountByYear(ctx context.Context, year int) (int, error) {
	if m.CountByYearFunc != nil {
		return m.CountByYearFunc(ctx, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, r := range m.receipts {
		if r.Year == year {
			count++
		}
	}
	return count, nil
}

// MockTenantRepository is a mock implementation of TenantRepository.
type MockTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant

	CreateFunc             func(ctx context.Context, tenant *domain.Tenant) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Tenant, error)
	GetByNameFunc          func(ctx context.Context, name string) (*domain.Tenant, error)
	GetByNameForUpdateFunc func(ctx context.Context, tx usecase.Transaction, name string) (*domain.Tenant, error)
	UpdateFunc             func(ctx context.Context, tenant *domain.Tenant) error
	UpdateBalanceFunc      func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error
	ListFunc               func(ctx context.Context) ([]*domain.Tenant, error)
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{
		tenants: make(map[string]*domain.Tenant),
	}
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tenant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[tenant.ID] = tenant
	return nil
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tenants[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) GetByName(ctx context.Context, name string) (*domain.Tenant, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) GetByNameForUpdate(ctx context.Context, tx usecase.Transaction, name string) (*domain.Tenant, error) {
	if m.GetByNameForUpdateFunc != nil {
		return m.GetByNameForUpdateFunc(ctx, tx, name)
	}
	return m.GetByName(ctx, name)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tenant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[tenant.ID]; !ok {
		return domain.ErrTenantNotFound
	}
	m.tenants[tenant.ID] = tenant
	return nil
}

func (m *MockTenantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tenants[id]; ok {
		t.Balance = balance
	}
	return nil
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tenants []*domain.Tenant
	for _, t := range m.tenants {
		tenants = append(tenants, t)
	}
	return tenants, nil
}

// MockPropertyRepository is a mock implementation of PropertyRepository.
type MockPropertyRepository struct {
	mu         sync.RWMutex
	properties map[string]*domain.Property

	CreateFunc          func(ctx context.Context, property *domain.Property) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Property, error)
	GetByNameFunc       func(ctx context.Context, name string) (*domain.Property, error)
	UpdateOccupancyFunc func(ctx context.Context, id string, tenantName string, status domain.PropertyStatus) error
	ListFunc            func(ctx context.Context) ([]*domain.Property, error)
}

func NewMockPropertyRepository() *MockPropertyRepository {
	return &MockPropertyRepository{
		properties: make(map[string]*domain.Property),
	}
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, property)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[property.ID] = property
	return nil
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.properties[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPropertyNotFound
}

func (m *MockPropertyRepository) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.properties {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrPropertyNotFound
}

func (m *MockPropertyRepository) UpdateOccupancy(ctx context.Context, id string, tenantName string, status domain.PropertyStatus) error {
	if m.UpdateOccupancyFunc != nil {
		return m.UpdateOccupancyFunc(ctx, id, tenantName, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.properties[id]; ok {
		p.Tenant = tenantName
		p.Status = status
		return nil
	}
	return domain.ErrPropertyNotFound
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var properties []*domain.Property
	for _, p := range m.properties {
		properties = append(properties, p)
	}
	return properties, nil
}

// MockMovementRepository is a mock implementation of MovementRepository. The
// fallback derives every balance from the stored movements, mirroring the
// real repository's sum queries.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements []*domain.CashMovement

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error
	ListFunc            func(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error)
	BalanceFunc         func(ctx context.Context, currency domain.Currency) (decimal.Decimal, error)
	BalanceTxFunc       func(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error)
	BalanceByMethodFunc func(ctx context.Context, currency domain.Currency, method domain.PaymentMethod) (decimal.Decimal, error)
	IncomeByDateFunc    func(ctx context.Context, day time.Time) (map[domain.Currency]decimal.Decimal, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, movement)
	return nil
}

func (m *MockMovementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]*domain.CashMovement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.CashMovement
	for _, mv := range m.movements {
		if filter.Matches(mv) {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockMovementRepository) Balance(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, currency)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sumLocked(currency), nil
}

func (m *MockMovementRepository) BalanceTx(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error) {
	if m.BalanceTxFunc != nil {
		return m.BalanceTxFunc(ctx, tx, currency)
	}
	return m.Balance(ctx, currency)
}

func (m *MockMovementRepository) BalanceByMethod(ctx context.Context, currency domain.Currency, method domain.PaymentMethod) (decimal.Decimal, error) {
	if m.BalanceByMethodFunc != nil {
		return m.BalanceByMethodFunc(ctx, currency, method)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, mv := range m.movements {
		if mv.Currency != currency || mv.PaymentMethod != method {
			continue
		}
		if mv.Type == domain.MovementIncome {
			total = total.Add(mv.Amount)
		} else {
			total = total.Sub(mv.Amount)
		}
	}
	return total, nil
}

func (m *MockMovementRepository) IncomeByDate(ctx context.Context, day time.Time) (map[domain.Currency]decimal.Decimal, error) {
	if m.IncomeByDateFunc != nil {
		return m.IncomeByDateFunc(ctx, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	income := make(map[domain.Currency]decimal.Decimal)
	for _, mv := range m.movements {
		if mv.Type != domain.MovementIncome || !mv.Date.Equal(day) {
			continue
		}
		income[mv.Currency] = income[mv.Currency].Add(mv.Amount)
	}
	return income, nil
}

func (m *MockMovementRepository) sumLocked(currency domain.Currency) decimal.Decimal {
	total := decimal.Zero
	for _, mv := range m.movements {
		if mv.Currency != currency {
			continue
		}
		if mv.Type == domain.MovementIncome {
			total = total.Add(mv.Amount)
		} else {
			total = total.Sub(mv.Amount)
		}
	}
	return total
}

// Movements returns a copy of everything recorded so far.
func (m *MockMovementRepository) Movements() []*domain.CashMovement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.CashMovement, len(m.movements))
	copy(out, m.movements)
	return out
}

// MockRegisterRepository is a mock implementation of RegisterRepository.
type MockRegisterRepository struct {
	mu       sync.RWMutex
	balances map[domain.Currency]decimal.Decimal

	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error)
	AddFunc          func(ctx context.Context, tx usecase.Transaction, currency domain.Currency, delta decimal.Decimal) error
	AllFunc          func(ctx context.Context) (map[domain.Currency]decimal.Decimal, error)
}

func NewMockRegisterRepository() *MockRegisterRepository {
	return &MockRegisterRepository{
		balances: make(map[domain.Currency]decimal.Decimal),
	}
}

func (m *MockRegisterRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, currency domain.Currency) (decimal.Decimal, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, currency)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[currency], nil
}

func (m *MockRegisterRepository) Add(ctx context.Context, tx usecase.Transaction, currency domain.Currency, delta decimal.Decimal) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, tx, currency, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[currency] = m.balances[currency].Add(delta)
	return nil
}

func (m *MockRegisterRepository) All(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.Currency]decimal.Decimal, len(m.balances))
	for c, b := range m.balances {
		out[c] = b
	}
	return out, nil
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository.
type MockSnapshotRepository struct {
	mu       sync.RWMutex
	snapshot *usecase.Snapshot

	ExportFunc     func(ctx context.Context) (*usecase.Snapshot, error)
	ReplaceAllFunc func(ctx context.Context, snapshot *usecase.Snapshot) error
}

func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{snapshot: &usecase.Snapshot{}}
}

func (m *MockSnapshotRepository) Export(ctx context.Context) (*usecase.Snapshot, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, nil
}

func (m *MockSnapshotRepository) ReplaceAll(ctx context.Context, snapshot *usecase.Snapshot) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, snapshot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockBalanceCache is a mock implementation of BalanceCache.
type MockBalanceCache struct {
	mu   sync.RWMutex
	data map[string]decimal.Decimal

	GetFunc    func(ctx context.Context, tenantID string) (decimal.Decimal, bool, error)
	SetFunc    func(ctx context.Context, tenantID string, balance decimal.Decimal, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, tenantID string) error
}

func NewMockBalanceCache() *MockBalanceCache {
	return &MockBalanceCache{
		data: make(map[string]decimal.Decimal),
	}
}

func (m *MockBalanceCache) Get(ctx context.Context, tenantID string) (decimal.Decimal, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tenantID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.data[tenantID]; ok {
		return b, true, nil
	}
	return decimal.Zero, false, nil
}

func (m *MockBalanceCache) Set(ctx context.Context, tenantID string, balance decimal.Decimal, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, tenantID, balance, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[tenantID] = balance
	return nil
}

func (m *MockBalanceCache) Delete(ctx context.Context, tenantID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tenantID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, tenantID)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// FixedClock is a Clock pinned to one instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }
