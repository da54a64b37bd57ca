package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the chi router with all wallet endpoints registered.
func NewRouter(svc LedgerService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestLogger())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/balance/{playerId}", h.GetBalanceHandler)
	r.Post("/bet", h.PlaceBetHandler)
	r.Post("/win", h.WinHandler)
	r.Post("/rollback", h.RollbackHandler)

	return r
}
