package restapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
	port_directory "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/directory"
	port_execution "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/execution"
)

func timeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return restapi.New(srv.URL, srv.Client(), zap.NewNop())
}

func TestLookup(t *testing.T) {
	t.Run("returns the account the backend reports", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/accounts/1000000002", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"accountNumber": "1000000002",
				"holderName": "Lerato Dlamini",
				"accountType": "CURRENT",
				"balance": 1250.75,
				"active": true
			}`))
		})

		ref, err := client.Lookup(context.Background(), "1000000002")

		require.NoError(t, err)
		assert.Equal(t, "1000000002", ref.AccountNumber)
		assert.Equal(t, "Lerato Dlamini", ref.HolderName)
		assert.Equal(t, domain_transfer.AccountCurrent, ref.AccountType)
		assert.True(t, ref.Balance.Equal(decimal.NewFromFloat(1250.75)))
		assert.True(t, ref.Active)
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "Account not found"}`))
		})

		_, err := client.Lookup(context.Background(), "9999999999")

		assert.ErrorIs(t, err, port_directory.ErrNotFound)
	})

	t.Run("a cancelled caller does not poison the shared flight", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accountNumber": "1000000002", "active": true}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ref, err := client.Lookup(ctx, "1000000002")

		require.NoError(t, err)
		assert.Equal(t, "1000000002", ref.AccountNumber)
	})

	t.Run("surfaces transport failures as-is", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // connection refused from here on
		client := restapi.New(srv.URL, nil, zap.NewNop())

		_, err := client.Lookup(context.Background(), "1000000002")

		require.Error(t, err)
		assert.NotErrorIs(t, err, port_directory.ErrNotFound)
	})
}

func TestForCustomer(t *testing.T) {
	t.Run("stamps the customer identity header", func(t *testing.T) {
		var gotHeader string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("X-Customer-ID")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accountNumber": "1000000002", "active": true}`))
		})

		_, err := client.ForCustomer("cust-7").Lookup(context.Background(), "1000000002")

		require.NoError(t, err)
		assert.Equal(t, "cust-7", gotHeader)
	})
}

func TestCommit(t *testing.T) {
	order := port_execution.Order{
		FromAccount: "1000000001",
		ToAccount:   "1000000002",
		Amount:      decimal.NewFromInt(500),
		PIN:         "1234",
		Description: "Groceries",
		Reference:   "intent-1",
	}

	t.Run("returns a receipt on success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transactions/transfer", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"success": true,
				"fromAccountBalance": 500.00,
				"fromTransactionId": "TXN-42",
				"recipientName": "Lerato Dlamini",
				"internalTransfer": false
			}`))
		})

		receipt, err := client.Commit(context.Background(), order)

		require.NoError(t, err)
		assert.Equal(t, "TXN-42", receipt.TransactionID)
		assert.True(t, receipt.FromAccountBalance.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, "Lerato Dlamini", receipt.RecipientName)
	})

	t.Run("maps a 400 to a rejection with the server reason", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "Invalid PIN"}`))
		})

		_, err := client.Commit(context.Background(), order)

		var rej *domain_transfer.Rejection
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, domain_transfer.CodeCommitRejected, rej.Code)
		assert.Equal(t, "Invalid PIN", rej.Message)
	})

	t.Run("treats success=false as a rejection", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": false, "error": "Insufficient funds"}`))
		})

		_, err := client.Commit(context.Background(), order)

		var rej *domain_transfer.Rejection
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, "Insufficient funds", rej.Message)
	})

	t.Run("passes transport failures through unclassified", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := restapi.New(srv.URL, nil, zap.NewNop())

		_, err := client.Commit(context.Background(), order)

		require.Error(t, err)
		var rej *domain_transfer.Rejection
		assert.False(t, errors.As(err, &rej), "transport failure must not read as a server rejection")
	})

	t.Run("treats a 500 as transport failure not rejection", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "boom"}`))
		})

		_, err := client.Commit(context.Background(), order)

		require.Error(t, err)
		var rej *domain_transfer.Rejection
		assert.False(t, errors.As(err, &rej))
		var apiErr *restapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns the customer record", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "cust-7", "fullName": "Thabo Mahlangu", "email": "thabo@example.com"}`))
		})

		customer, err := client.Login(context.Background(), "thabo@example.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, "cust-7", customer.ID)
		assert.Equal(t, "Thabo Mahlangu", customer.FullName)
	})

	t.Run("maps a 401 to an api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
		})

		_, err := client.Login(context.Background(), "thabo@example.com", "wrong")

		var apiErr *restapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	})
}

func TestTransactions(t *testing.T) {
	t.Run("requests the date range endpoint with formatted dates", func(t *testing.T) {
		var gotPath, gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"transactionId": "TXN-1", "type": "TRANSFER_OUT", "amount": 50}]`))
		})

		start := timeDate(2026, 8, 1)
		end := timeDate(2026, 8, 30)
		history, err := client.TransactionsByDateRange(context.Background(), "1000000001", start, end)

		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "TXN-1", history[0].TransactionID)
		assert.Equal(t, "/transactions/account/1000000001/daterange", gotPath)
		assert.Equal(t, "startDate=2026-08-01&endDate=2026-08-30", gotQuery)
	})
}
