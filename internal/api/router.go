package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the portal API on the router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.handleLogin)
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/logout", h.withSession(h.handleLogout))

		r.Get("/accounts", h.withSession(h.handleAccounts))
		r.Get("/accounts/{accountNumber}", h.withSession(h.handleAccount))
		r.Post("/accounts/{accountNumber}/deposit", h.withSession(h.handleDeposit))
		r.Post("/accounts/{accountNumber}/withdraw", h.withSession(h.handleWithdraw))
		r.Get("/accounts/{accountNumber}/transactions", h.withSession(h.handleTransactions))
		r.Get("/accounts/{accountNumber}/statement", h.withSession(h.handleStatement))

		r.Get("/transfer", h.withSession(h.handleTransferState))
		r.Put("/transfer/draft", h.withSession(h.handleDraft))
		r.Post("/transfer/submit", h.withSession(h.handleSubmit))
		r.Post("/transfer/confirm", h.withSession(h.handleConfirm))
		r.Post("/transfer/cancel", h.withSession(h.handleCancel))

		r.Get("/notifications", h.withSession(h.handleNotifications))
	})
}
