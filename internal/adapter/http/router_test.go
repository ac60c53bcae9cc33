package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/tripledger/internal/adapter/http/middleware"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"plan_id":"plan-1","display_name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/participants/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /payments/notify",
		"POST /api/v1/expenses/",
		"GET /api/v1/expenses/{id}",
		"PUT /api/v1/expenses/{id}/total",
		"GET /api/v1/expenses/{id}/events",
		"POST /api/v1/participants/",
		"DELETE /api/v1/participants/{id}",
		"GET /api/v1/plans/{id}/snapshot",
		"POST /api/v1/contributions/{id}/payments",
		"POST /api/v1/checkout",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		ExpenseHandler:     handler.NewExpenseHandler(&stubExpenseService{}),
		ParticipantHandler: handler.NewParticipantHandler(&stubParticipantService{}),
		LedgerHandler:      handler.NewLedgerHandler(&stubLedgerService{}),
		PaymentHandler:     handler.NewPaymentHandler(&stubPaymentService{}),
		CheckoutHandler:    handler.NewCheckoutHandler(&stubCheckoutService{}),
		WebhookHandler:     handler.NewWebhookHandler(&stubNotificationService{}),
		ConsistencyHandler: handler.NewConsistencyHandler(&stubConsistencyService{}),
		HealthHandler:      &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubExpenseService struct{}

func (s *stubExpenseService) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, []*domain.Contribution, error) {
	return &domain.Expense{ID: "exp-1"}, nil, nil
}

func (s *stubExpenseService) GetExpense(ctx context.Context, id string) (*domain.Expense, []*domain.Contribution, error) {
	return &domain.Expense{ID: id}, nil, nil
}

func (s *stubExpenseService) UpdateExpenseTotal(ctx context.Context, expenseID string, total int64) (*domain.Expense, error) {
	return &domain.Expense{ID: expenseID, Total: total}, nil
}

func (s *stubExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	return nil
}

type stubParticipantService struct{}

func (s *stubParticipantService) CreateParticipant(ctx context.Context, input usecase.CreateParticipantInput) (*domain.Participant, error) {
	return &domain.Participant{ID: "p1", PlanID: input.PlanID, DisplayName: input.DisplayName}, nil
}

func (s *stubParticipantService) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	return &domain.Participant{ID: id}, nil
}

func (s *stubParticipantService) RemoveParticipant(ctx context.Context, participantID string) error {
	return nil
}

type stubLedgerService struct{}

func (s *stubLedgerService) ListEvents(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error) {
	return nil, nil
}

func (s *stubLedgerService) GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	return nil, nil
}

func (s *stubLedgerService) Snapshot(ctx context.Context, planID string) (*usecase.PlanSnapshot, error) {
	return &usecase.PlanSnapshot{PlanID: planID, GeneratedAt: time.Now()}, nil
}

type stubPaymentService struct{}

func (s *stubPaymentService) GetContribution(ctx context.Context, id string) (*domain.Contribution, error) {
	return &domain.Contribution{ID: id}, nil
}

func (s *stubPaymentService) RecordManualPayment(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error) {
	return &domain.Contribution{ID: contributionID, AmountPaid: amount}, nil
}

func (s *stubPaymentService) SetPaid(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error) {
	return &domain.Contribution{ID: contributionID, AmountPaid: amount}, nil
}

type stubCheckoutService struct{}

func (s *stubCheckoutService) InitiateCheckout(ctx context.Context, input usecase.InitiateCheckoutInput) (*domain.PaymentOrder, error) {
	return &domain.PaymentOrder{ID: "order-1"}, nil
}

func (s *stubCheckoutService) GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	return &domain.PaymentOrder{ID: id}, nil
}

type stubNotificationService struct{}

func (s *stubNotificationService) HandleNotification(ctx context.Context, input usecase.NotificationInput) (*usecase.NotificationResult, error) {
	return &usecase.NotificationResult{Accepted: true, Status: domain.OrderStatusPending}, nil
}

type stubConsistencyService struct{}

func (s *stubConsistencyService) CheckAll(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return &usecase.ConsistencyReport{}, nil
}

func (s *stubConsistencyService) CheckExpense(ctx context.Context, expenseID string) (*usecase.ExpenseConsistencyResult, error) {
	return &usecase.ExpenseConsistencyResult{ExpenseID: expenseID, IsConsistent: true}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
