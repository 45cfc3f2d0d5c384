package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name            string
		rent            decimal.Decimal
		expenses        decimal.Decimal
		previousBalance decimal.Decimal
		charges         []Charge
		expected        decimal.Decimal
	}{
		{
			name:     "rent and expenses only",
			rent:     d(50000),
			expenses: d(5000),
			expected: d(55000),
		},
		{
			name:            "carried balance included",
			rent:            d(50000),
			expenses:        d(5000),
			previousBalance: d(20000),
			expected:        d(75000),
		},
		{
			name:     "other charges included",
			rent:     d(50000),
			expenses: d(5000),
			charges: []Charge{
				{Description: "Reparación", Amount: d(3000)},
				{Description: "Agua", Amount: d(1500)},
			},
			expected: d(59500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.rent, tt.expenses, tt.previousBalance, tt.charges)
			if !got.Equal(tt.expected) {
				t.Errorf("expected total %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestReceipt_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		status      ReceiptStatus
		expectError bool
		wantStatus  ReceiptStatus
	}{
		{name: "unconfirmed becomes pending", status: StatusUnconfirmed, wantStatus: StatusPending},
		{name: "pending cannot be confirmed again", status: StatusPending, expectError: true},
		{name: "paid cannot be confirmed", status: StatusPaid, expectError: true},
		{name: "draft cannot be confirmed", status: StatusDraft, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Receipt{Status: tt.status}
			err := r.Confirm()

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if r.Status != tt.status {
					t.Errorf("status changed on rejected confirm: %s", r.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, r.Status)
			}
		})
	}
}

func TestReceipt_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    ReceiptStatus
		dueDate   time.Time
		remaining decimal.Decimal
		expected  ReceiptStatus
	}{
		{
			name:      "pending past due with balance is overdue",
			status:    StatusPending,
			dueDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			remaining: d(55000),
			expected:  StatusOverdue,
		},
		{
			name:      "pending due today is not overdue",
			status:    StatusPending,
			dueDate:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			remaining: d(55000),
			expected:  StatusPending,
		},
		{
			name:      "pending before due date stays pending",
			status:    StatusPending,
			dueDate:   time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
			remaining: d(55000),
			expected:  StatusPending,
		},
		{
			name:      "paid never projects overdue",
			status:    StatusPaid,
			dueDate:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			remaining: decimal.Zero,
			expected:  StatusPaid,
		},
		{
			name:      "unconfirmed never projects overdue",
			status:    StatusUnconfirmed,
			dueDate:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			remaining: d(55000),
			expected:  StatusUnconfirmed,
		},
		{
			name:      "legacy confirmado with balance past due is overdue",
			status:    StatusConfirmed,
			dueDate:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			remaining: d(1000),
			expected:  StatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Receipt{Status: tt.status, DueDate: tt.dueDate, RemainingBalance: tt.remaining}
			if got := r.EffectiveStatus(now); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestReceipt_Editable(t *testing.T) {
	for _, status := range []ReceiptStatus{StatusDraft, StatusUnconfirmed, StatusPending, StatusConfirmed} {
		r := &Receipt{Status: status}
		if !r.Editable() {
			t.Errorf("expected %s to be editable", status)
		}
	}

	r := &Receipt{Status: StatusPaid}
	if r.Editable() {
		t.Error("paid receipt must not be editable")
	}
}

func TestReceipt_CheckBalanceInvariant(t *testing.T) {
	tests := []struct {
		name      string
		total     decimal.Decimal
		paid      decimal.Decimal
		remaining decimal.Decimal
		ok        bool
	}{
		{name: "unpaid", total: d(55000), paid: d(0), remaining: d(55000), ok: true},
		{name: "partially paid", total: d(55000), paid: d(30000), remaining: d(25000), ok: true},
		{name: "fully paid", total: d(55000), paid: d(55000), remaining: d(0), ok: true},
		{name: "overpaid floors at zero", total: d(55000), paid: d(60000), remaining: d(0), ok: true},
		{name: "drifted remaining", total: d(55000), paid: d(30000), remaining: d(20000), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Receipt{Total: tt.total, PaidAmount: tt.paid, RemainingBalance: tt.remaining}
			if got := r.CheckBalanceInvariant(); got != tt.ok {
				t.Errorf("expected %v, got %v", tt.ok, got)
			}
		})
	}
}
