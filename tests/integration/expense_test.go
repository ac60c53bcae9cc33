package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/iho/tripledger/internal/adapter/http"
	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/tripledger/internal/adapter/repository/redis"
	"github.com/iho/tripledger/internal/infrastructure/gateway"
	infraredis "github.com/iho/tripledger/internal/infrastructure/redis"
	"github.com/iho/tripledger/internal/usecase"
	"github.com/iho/tripledger/tests/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// testServerKey signs gateway notifications in integration tests.
const testServerKey = "test-server-key"

// newTestRouter wires the full stack against the test database.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	txManager := postgres.NewTxManager(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	contribRepo := postgres.NewContributionRepository(pool)
	eventRepo := postgres.NewPaymentEventRepository(pool)
	orderRepo := postgres.NewPaymentOrderRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	verifier := gateway.NewVerifier(testServerKey)

	ledgerUC := usecase.NewLedgerUseCase(txManager, contribRepo, participantRepo, eventRepo, idGen, cache)
	splitUC := usecase.NewSplitUseCase(txManager, expenseRepo, participantRepo, contribRepo, ledgerUC, idGen, cache)
	rosterUC := usecase.NewRosterUseCase(txManager, participantRepo, contribRepo, splitUC, idGen, retrier, cache)
	checkoutUC := usecase.NewCheckoutUseCase(txManager, contribRepo, expenseRepo, orderRepo, idGen, usecase.FeePolicy{
		Percent:      decimal.NewFromFloat(0.02),
		FixedFee:     1000,
		RoundingUnit: 100,
	}, nil)
	reconcileUC := usecase.NewReconcileUseCase(txManager, orderRepo, contribRepo, ledgerUC, verifier, retrier, cache, nil)
	consistencyUC := usecase.NewConsistencyUseCase(expenseRepo, contribRepo, eventRepo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ExpenseHandler:     handler.NewExpenseHandler(splitUC),
		ParticipantHandler: handler.NewParticipantHandler(rosterUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		PaymentHandler:     handler.NewPaymentHandler(ledgerUC),
		CheckoutHandler:    handler.NewCheckoutHandler(checkoutUC),
		WebhookHandler:     handler.NewWebhookHandler(reconcileUC),
		ConsistencyHandler: handler.NewConsistencyHandler(consistencyUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
	})
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func getJSON(t *testing.T, router http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}

	return rec
}

func TestExpenseLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	planID := "plan-bali"
	p1 := testDB.CreateTestParticipant(ctx, planID, "Ayu")
	p2 := testDB.CreateTestParticipant(ctx, planID, "Budi")
	p3 := testDB.CreateTestParticipant(ctx, planID, "Citra")

	var created dto.ExpenseWithContributionsResponse

	t.Run("create expense splits evenly with remainder on last", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/expenses/", dto.CreateExpenseRequest{
			PlanID:         planID,
			Name:           "villa",
			Total:          1000000,
			ParticipantIDs: []string{p1.ID, p2.ID, p3.ID},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if len(created.Contributions) != 3 {
			t.Fatalf("expected 3 contributions, got %d", len(created.Contributions))
		}

		// 1000000 over 3 at rounding unit 100: 333300, 333300, 333400.
		var sum int64
		for _, c := range created.Contributions {
			sum += c.AmountDue
		}
		if sum != 1000000 {
			t.Fatalf("expected dues to sum to total, got %d", sum)
		}

		last := created.Contributions[len(created.Contributions)-1]
		if last.AmountDue != 333400 {
			t.Fatalf("expected remainder on last contribution, got %d", last.AmountDue)
		}
	})

	t.Run("update total re-splits dues", func(t *testing.T) {
		body, _ := json.Marshal(dto.UpdateExpenseTotalRequest{Total: 900000})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/expenses/"+created.Expense.ID+"/total", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var after dto.ExpenseWithContributionsResponse
		getJSON(t, router, "/api/v1/expenses/"+created.Expense.ID, &after)

		for _, c := range after.Contributions {
			if c.AmountDue != 300000 {
				t.Fatalf("expected 300000 due after re-split, got %d", c.AmountDue)
			}
		}
	})

	t.Run("removing participant re-splits remaining dues", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/participants/"+p3.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}

		var after dto.ExpenseWithContributionsResponse
		getJSON(t, router, "/api/v1/expenses/"+created.Expense.ID, &after)

		if len(after.Contributions) != 2 {
			t.Fatalf("expected 2 contributions after removal, got %d", len(after.Contributions))
		}

		var sum int64
		for _, c := range after.Contributions {
			sum += c.AmountDue
		}
		if sum != 900000 {
			t.Fatalf("expected dues to still sum to total, got %d", sum)
		}
	})

	t.Run("delete expense removes contributions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/"+created.Expense.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = getJSON(t, router, "/api/v1/expenses/"+created.Expense.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
	})
}

func TestManualPaymentAndConsistency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	planID := "plan-lombok"
	p1 := testDB.CreateTestParticipant(ctx, planID, "Ayu")
	p2 := testDB.CreateTestParticipant(ctx, planID, "Budi")

	var created dto.ExpenseWithContributionsResponse
	rec := postJSON(t, router, "/api/v1/expenses/", dto.CreateExpenseRequest{
		PlanID:         planID,
		Name:           "boat",
		Total:          500000,
		ParticipantIDs: []string{p1.ID, p2.ID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	target := created.Contributions[0]

	t.Run("record manual payment", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/contributions/"+target.ID+"/payments", dto.RecordPaymentRequest{Amount: 100000})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var after dto.ContributionResponse
		getJSON(t, router, "/api/v1/contributions/"+target.ID, &after)

		if after.AmountPaid != 100000 {
			t.Fatalf("expected 100000 paid, got %d", after.AmountPaid)
		}
		if after.Remaining != 150000 {
			t.Fatalf("expected 150000 remaining, got %d", after.Remaining)
		}
	})

	t.Run("payment appears in event history", func(t *testing.T) {
		var events []*dto.PaymentEventResponse
		getJSON(t, router, "/api/v1/expenses/"+created.Expense.ID+"/events", &events)

		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Delta != 100000 {
			t.Fatalf("expected delta 100000, got %d", events[0].Delta)
		}
	})

	t.Run("outstanding excludes settled", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/contributions/"+target.ID+"/payments", dto.RecordPaymentRequest{Amount: 150000})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var outstanding []*dto.ContributionResponse
		getJSON(t, router, "/api/v1/expenses/"+created.Expense.ID+"/outstanding", &outstanding)

		if len(outstanding) != 1 {
			t.Fatalf("expected 1 outstanding contribution, got %d", len(outstanding))
		}
		if outstanding[0].ID == target.ID {
			t.Fatal("settled contribution still reported outstanding")
		}
	})

	t.Run("ledger consistency holds", func(t *testing.T) {
		var report usecase.ConsistencyReport
		rec := getJSON(t, router, "/api/v1/ledger/consistency", &report)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		if len(report.Discrepancies) != 0 {
			t.Fatalf("expected no discrepancies, got %v", report.Discrepancies)
		}
	})
}
