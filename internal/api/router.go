package api

import (
	"net/http"
	"time"

	"logistics-crm/internal/api/middleware"
	"logistics-crm/internal/auth"
	"logistics-crm/internal/cache"
	"logistics-crm/internal/config"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// NewRouter wires the request-coordination pipeline. Stage order is the
// whole contract: identity resolution, then the rate-limit gate, then body
// buffering, then the audit recorder; mutating routes add the idempotency
// gate and read routes the response cache.
func NewRouter(
	h *Handlers,
	resolver auth.Resolver,
	recorder middleware.AuditRecorder,
	redisClient *redis.Client,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	idempotency := middleware.Idempotency(redisClient,
		time.Duration(cfg.Idempotency.TTLSeconds)*time.Second)
	responseCache := cache.Middleware(redisClient,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(resolver))
		r.Use(middleware.RateLimit(redisClient, middleware.RateLimitConfig{
			Limit:  cfg.RateLimit.Limit,
			Window: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		}))
		r.Use(middleware.BufferBody)
		r.Use(middleware.Audit(recorder))

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Route("/logistics", func(r chi.Router) {
			r.Use(middleware.RequireIdentity)

			r.With(idempotency).Post("/leads", h.CreateLead)
			r.With(responseCache).Get("/leads", h.ListLeads)
			r.With(responseCache).Get("/leads/{id}", h.GetLead)
			r.With(idempotency).Patch("/leads/{id}", h.UpdateLead)
			r.Delete("/leads/{id}", h.DeleteLead)

			r.With(idempotency).Post("/orders", h.CreateOrder)
			r.With(responseCache).Get("/orders", h.ListOrders)
			r.With(responseCache).Get("/orders/{id}", h.GetOrder)
			r.With(idempotency).Patch("/orders/{id}", h.UpdateOrder)
			r.Delete("/orders/{id}", h.DeleteOrder)

			r.Post("/quote", h.Quote)
			r.With(idempotency).Post("/orders/{id}/reprice", h.Reprice)
		})
	})

	return r
}
