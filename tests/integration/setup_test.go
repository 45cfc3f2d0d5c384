package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	adaptershttp "github.com/avidela/rentas/internal/adapter/http"
	"github.com/avidela/rentas/internal/adapter/http/handler"
	"github.com/avidela/rentas/internal/adapter/repository/postgres"
	redisrepo "github.com/avidela/rentas/internal/adapter/repository/redis"
	infraredis "github.com/avidela/rentas/internal/infrastructure/redis"
	"github.com/avidela/rentas/internal/usecase"
	"github.com/avidela/rentas/tests/testutil"
)

// newTestServer wires the full stack against the test database and redis.
func newTestServer(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	registerRepo := postgres.NewRegisterRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	balanceCache := redisrepo.NewBalanceCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	idGen := postgres.NewULIDGenerator()
	clock := usecase.SystemClock{}

	receiptUC := usecase.NewReceiptUseCase(receiptRepo, tenantRepo, propertyRepo, idGen, clock)
	paymentUC := usecase.NewPaymentUseCase(txManager, receiptRepo, tenantRepo, movementRepo, registerRepo, balanceCache, idGen, clock)
	cashUC := usecase.NewCashRegisterUseCase(txManager, movementRepo, registerRepo, idGen, clock)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, propertyRepo, receiptRepo, balanceCache, idGen, 5*time.Minute)
	statementUC := usecase.NewStatementUseCase(receiptRepo, tenantRepo)
	reportUC := usecase.NewReportUseCase(propertyRepo, tenantRepo, receiptRepo)
	portabilityUC := usecase.NewPortabilityUseCase(snapshotRepo, clock)
	reconciliationUC := usecase.NewReconciliationUseCase(tenantRepo, receiptRepo, movementRepo, registerRepo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ReceiptHandler:        handler.NewReceiptHandler(receiptUC, paymentUC),
		TenantHandler:         handler.NewTenantHandler(tenantUC, statementUC),
		CashHandler:           handler.NewCashHandler(cashUC),
		ReportHandler:         handler.NewReportHandler(reportUC),
		PortabilityHandler:    handler.NewPortabilityHandler(portabilityUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
	})
}

// doJSON performs one request against the handler and decodes the response.
func doJSON(t *testing.T, h http.Handler, method, path string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
	}

	return rec.Code
}

// decodeBody decodes a recorded response body.
func decodeBody(rec *httptest.ResponseRecorder, out any) error {
	return json.NewDecoder(rec.Body).Decode(out)
}
