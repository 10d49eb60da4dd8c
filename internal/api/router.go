package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/suicart/escrow-backend/internal/api/handlers"
	"github.com/suicart/escrow-backend/internal/config"
	"github.com/suicart/escrow-backend/internal/metrics"
	"github.com/suicart/escrow-backend/internal/middleware"
	"github.com/suicart/escrow-backend/internal/services"
)

type RouterDeps struct {
	Cfg       config.Config
	Log       *slog.Logger
	TxnSvc    *services.TransactionService
	ProfSvc   *services.ProfileService
	EscrowSvc *services.EscrowService
}

func NewRouter(d RouterDeps) http.Handler {
	metrics.Init()

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logging(d.Log),
		middleware.Recover,
		middleware.HTTPMetrics,
		middleware.RateLimit(d.Cfg.RateRPS),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	txh := handlers.NewTransactionHandler(d.TxnSvc)
	ph := handlers.NewProfileHandler(d.ProfSvc)
	ch := handlers.NewChainHandler(d.EscrowSvc)

	r.Route("/api", func(r chi.Router) {
		// ---------- transaction records ----------
		r.Get("/transactions", txh.List)
		r.Post("/transactions", txh.Create)
		r.Get("/transactions/{id}", txh.Get)
		r.Patch("/transactions/{id}", txh.Update)
		r.Put("/transactions/{id}", txh.Complete)

		// ---------- profiles ----------
		r.Get("/user/{address}", ph.Get)
		r.Patch("/user/{address}", ph.Update)

		// ---------- chain ----------
		r.Post("/escrows", ch.CreateEscrow)
		r.Get("/escrows", ch.Escrows)
		r.Post("/escrows/{id}/deposit", ch.Deposit)
		r.Post("/escrows/{id}/confirm", ch.Confirm)
		r.Post("/escrows/{id}/refund", ch.Refund)
		r.Post("/assets/mint", ch.Mint)
		r.Get("/assets", ch.Assets)
		r.Get("/history", ch.History)
	})

	return r
}
