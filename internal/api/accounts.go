package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
)

func (h *Handler) handleAccounts(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)

	accounts, err := ps.client.CustomerAccounts(r.Context(), ps.ctx.Customer.ID)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}

	views := make([]*accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountViewOf(a))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleAccount(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	number := chi.URLParam(r, "accountNumber")

	ref, err := ps.client.Lookup(r.Context(), number)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, accountViewOf(ref))
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	number := chi.URLParam(r, "accountNumber")

	var req movementRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "a positive amount is required")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		h.writeError(w, http.StatusBadRequest, "a positive amount is required")
		return
	}

	balance, err := ps.client.Deposit(r.Context(), number, amount, req.Description)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, balanceResponse{AccountNumber: number, Balance: balance})
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	number := chi.URLParam(r, "accountNumber")

	var req movementRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "a positive amount and a 4-digit PIN are required")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		h.writeError(w, http.StatusBadRequest, "a positive amount is required")
		return
	}
	if req.PIN == "" {
		h.writeError(w, http.StatusBadRequest, "a 4-digit PIN is required")
		return
	}

	balance, err := ps.client.Withdraw(r.Context(), number, amount, req.PIN, req.Description)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, balanceResponse{AccountNumber: number, Balance: balance})
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	number := chi.URLParam(r, "accountNumber")

	start, end, ranged, err := dateRangeFrom(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "startDate and endDate must be yyyy-mm-dd")
		return
	}

	var history []restapi.Transaction
	if ranged {
		history, err = ps.client.TransactionsByDateRange(r.Context(), number, start, end)
	} else {
		history, err = ps.client.Transactions(r.Context(), number)
	}
	if err != nil {
		h.writeBackendError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	number := chi.URLParam(r, "accountNumber")

	start, end, ranged, err := dateRangeFrom(r)
	if err != nil || !ranged {
		h.writeError(w, http.StatusBadRequest, "startDate and endDate must be yyyy-mm-dd")
		return
	}

	pdf, err := ps.client.DownloadStatement(r.Context(), number, start, end)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}
	defer pdf.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="statement-`+number+`.pdf"`)
	if _, err := io.Copy(w, pdf); err != nil {
		h.log.Warn("statement stream interrupted", zap.String("account", number), zap.Error(err))
	}
}

// dateRangeFrom parses the optional startDate/endDate query parameters.
// Both must be present for a ranged query.
func dateRangeFrom(r *http.Request) (start, end time.Time, ranged bool, err error) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" && endStr == "" {
		return time.Time{}, time.Time{}, false, nil
	}

	start, err = time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err = time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return start, end, true, nil
}
