package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/health", "/health"},
		{"/api/v1/receipts", "/api/v1/receipts"},
		{"/api/v1/receipts/01ABC123", "/api/v1/receipts/:id"},
		{"/api/v1/receipts/01ABC123/payments", "/api/v1/receipts/:id/payments"},
		{"/api/v1/receipts/01ABC123/confirm", "/api/v1/receipts/:id/confirm"},
		{"/api/v1/tenants/01XYZ789/statement", "/api/v1/tenants/:id/statement"},
		{"/api/v1/tenants/01XYZ789/balance", "/api/v1/tenants/:id/balance"},
		{"/api/v1/cash/balance", "/api/v1/cash/balance"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.expected {
			t.Fatalf("normalizePath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cash/balance", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped handler status to pass through, got %d", rec.Code)
	}
}
