package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/http/middleware"
	"github.com/iho/tripledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ExpenseHandler     *handler.ExpenseHandler
	ParticipantHandler *handler.ParticipantHandler
	LedgerHandler      *handler.LedgerHandler
	PaymentHandler     *handler.PaymentHandler
	CheckoutHandler    *handler.CheckoutHandler
	WebhookHandler     *handler.WebhookHandler
	ConsistencyHandler *handler.ConsistencyHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Gateway webhook lives outside /api/v1: the gateway signs its own
	// payloads, so idempotency headers and client middleware do not apply.
	r.Post("/payments/notify", cfg.WebhookHandler.Notify)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Put("/{id}/total", cfg.ExpenseHandler.UpdateTotal)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			r.Get("/{id}/events", cfg.LedgerHandler.ListEvents)
			r.Get("/{id}/outstanding", cfg.LedgerHandler.ListOutstanding)
			r.Get("/{id}/consistency", cfg.ConsistencyHandler.CheckExpense)
		})

		// Participants
		r.Route("/participants", func(r chi.Router) {
			r.Post("/", cfg.ParticipantHandler.Create)
			r.Get("/{id}", cfg.ParticipantHandler.Get)
			r.Delete("/{id}", cfg.ParticipantHandler.Remove)
		})

		// Plans
		r.Get("/plans/{id}/snapshot", cfg.LedgerHandler.Snapshot)

		// Contributions
		r.Route("/contributions", func(r chi.Router) {
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Post("/{id}/payments", cfg.PaymentHandler.RecordPayment)
			r.Put("/{id}/paid", cfg.PaymentHandler.SetPaid)
		})

		// Checkout and orders
		r.Post("/checkout", cfg.CheckoutHandler.Create)
		r.Get("/orders/{id}", cfg.CheckoutHandler.GetOrder)

		// Ledger-wide consistency sweep
		r.Get("/ledger/consistency", cfg.ConsistencyHandler.CheckAll)
	})

	return r
}
